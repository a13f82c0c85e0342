package delivery

import (
	"errors"
	"io"

	"hajjapply/config"
	"hajjapply/domain"
	"hajjapply/imagehost"
	"hajjapply/middleware"

	"github.com/gofiber/fiber/v2"
)

type applicantHandler struct {
	uc       domain.ApplicantUseCase
	uploader *imagehost.Client
}

func NewApplicantHandler(app *fiber.App, uc domain.ApplicantUseCase, uploader *imagehost.Client) {
	handler := &applicantHandler{
		uc:       uc,
		uploader: uploader,
	}

	group := app.Group("/applicants", middleware.AuthRequired())

	group.Post("/insert", handler.InsertApplicant)
	group.Get("/get-all", handler.GetAllApplicants)
	group.Get("/details/:id", handler.GetApplicantDetails)
	group.Put("/modify/:id", handler.ModifyApplicant)
	group.Delete("/rm/:id", middleware.RoleRequired("admin"), handler.DeleteApplicant)
	group.Get("/print/:id", handler.PrintApplicant)
	group.Post("/photo/:slot", handler.UploadPhoto)
}

func (ah *applicantHandler) InsertApplicant(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	rec := domain.NewDraft()
	if err := c.BodyParser(rec); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertApplicant")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	rec.ID = 0

	if err := ah.uc.SubmitApplicant(c.Context(), rec); err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "InsertApplicant")

			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": vErr.Error(),
				"missing": vErr.Missing,
			})
		}

		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "InsertApplicant")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to save applicant",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusCreated, "InsertApplicant")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Applicant saved successfully",
		"data":    rec,
	})
}

func (ah *applicantHandler) GetAllApplicants(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	records, err := ah.uc.GetAllApplicants(c.Context())
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetAllApplicants")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to get all applicants",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetAllApplicants")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Successfully retrieved all applicants",
		"data":    records,
	})
}

func (ah *applicantHandler) GetApplicantDetails(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "GetApplicantDetails")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid applicant id",
		})
	}

	record, err := ah.uc.GetApplicantDetail(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrApplicantNotFound) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusNotFound, "GetApplicantDetails")

			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Applicant not found",
			})
		}

		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetApplicantDetails")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to get applicant details",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetApplicantDetails")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Successfully retrieved applicant details",
		"data":    record,
	})
}

func (ah *applicantHandler) ModifyApplicant(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyApplicant")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid applicant id",
		})
	}

	rec := domain.NewDraft()
	if err := c.BodyParser(rec); err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyApplicant")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	rec.ID = id

	if err := ah.uc.SubmitApplicant(c.Context(), rec); err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "ModifyApplicant")

			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": vErr.Error(),
				"missing": vErr.Missing,
			})
		case errors.Is(err, domain.ErrApplicantNotFound):
			config.PrintLogInfo(&userToken.Username, fiber.StatusNotFound, "ModifyApplicant")

			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Applicant not found",
			})
		case errors.Is(err, domain.ErrVersionConflict):
			config.PrintLogInfo(&userToken.Username, fiber.StatusConflict, "ModifyApplicant")

			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Record was modified by another session, please reload",
			})
		}

		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "ModifyApplicant")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update applicant",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "ModifyApplicant")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Applicant updated successfully",
		"data":    rec,
	})
}

type deleteRequest struct {
	Confirm bool `json:"confirm"`
}

func (ah *applicantHandler) DeleteApplicant(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "DeleteApplicant")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid applicant id",
		})
	}

	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		req.Confirm = false
	}
	secret := c.Get("X-Delete-Password")

	if err := ah.uc.DeleteApplicant(c.Context(), id, secret, req.Confirm); err != nil {
		switch {
		case errors.Is(err, domain.ErrDeleteSecretMismatch):
			config.PrintLogInfo(&userToken.Username, fiber.StatusForbidden, "DeleteApplicant")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		case errors.Is(err, domain.ErrDeleteNotConfirmed):
			config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "DeleteApplicant")

			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		case errors.Is(err, domain.ErrApplicantNotFound):
			config.PrintLogInfo(&userToken.Username, fiber.StatusNotFound, "DeleteApplicant")

			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Applicant not found",
			})
		}

		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "DeleteApplicant")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete applicant",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DeleteApplicant")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Applicant deleted successfully",
	})
}

func (ah *applicantHandler) UploadPhoto(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	slot := c.Params("slot")
	if slot != "pilgrim" && slot != "passport" {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "UploadPhoto")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unknown photo slot, expected pilgrim or passport",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "UploadPhoto")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Missing file field",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "UploadPhoto")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "UploadPhoto")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to read uploaded file",
		})
	}

	url, err := ah.uploader.Upload(c.Context(), fileHeader.Filename, data, nil)
	if err != nil {
		var upErr *domain.UploadError
		if errors.As(err, &upErr) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "UploadPhoto")

			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": upErr.Error(),
			})
		}

		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "UploadPhoto")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to upload photo",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "UploadPhoto")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Photo uploaded successfully",
		"data": fiber.Map{
			"slot": slot,
			"url":  url,
		},
	})
}

func (ah *applicantHandler) PrintApplicant(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusBadRequest, "PrintApplicant")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid applicant id",
		})
	}

	record, err := ah.uc.GetApplicantDetail(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrApplicantNotFound) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusNotFound, "PrintApplicant")

			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Applicant not found",
			})
		}

		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "PrintApplicant")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to get applicant details",
		})
	}

	page, err := RenderPrintView(record)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "PrintApplicant")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to render print view",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "PrintApplicant")
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(page)
}
