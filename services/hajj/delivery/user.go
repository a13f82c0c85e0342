package delivery

import (
	"hajjapply/config"
	"hajjapply/domain"
	"hajjapply/middleware"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

type userHandler struct {
	uc domain.UserUseCase
}

func NewUserHandler(app *fiber.App, uc domain.UserUseCase) {
	handler := &userHandler{
		uc: uc,
	}

	group := app.Group("/user", middleware.AuthRequired(), middleware.RoleRequired("admin"))
	group.Post("/create-staff", handler.CreateStaff)
}

func (uh *userHandler) CreateStaff(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	var payload domain.User
	if err := c.BodyParser(&payload); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateStaff")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(&payload); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "CreateStaff")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	created, err := uh.uc.CreateStaff(c.Context(), &payload)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "CreateStaff")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create staff login",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "CreateStaff")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Staff login created successfully",
		"data":    created,
	})
}
