package delivery

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"hajjapply/config"
	"hajjapply/domain"
	"hajjapply/middleware"

	"github.com/gofiber/fiber/v2"
)

type reportHandler struct {
	uc domain.ReportUseCase
}

func NewReportHandler(app *fiber.App, uc domain.ReportUseCase) {
	handler := &reportHandler{
		uc: uc,
	}

	group := app.Group("/report", middleware.AuthRequired())

	group.Get("/", handler.GetReport)
	group.Get("/csv", handler.DownloadCSV)
	group.Get("/pdf", handler.DownloadPDF)
	group.Get("/stats", handler.GetStats)
}

func reportYear(c *fiber.Ctx) string {
	year := c.Query("year")
	if year == "" {
		year = strconv.Itoa(time.Now().Year())
	}
	return year
}

func (rh *reportHandler) GetReport(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)
	year := reportYear(c)

	records, err := rh.uc.FetchByYear(c.Context(), year)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetReport")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build report",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetReport")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Successfully built report for %s", year),
		"data":    records,
		"total":   len(*records),
	})
}

func (rh *reportHandler) DownloadCSV(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)
	year := reportYear(c)

	records, err := rh.uc.FetchByYear(c.Context(), year)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "DownloadCSV")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build report",
		})
	}

	payload, err := rh.uc.BuildCSV(*records, year)
	if err != nil {
		if errors.Is(err, domain.ErrNoApplicants) {
			config.PrintLogInfo(&userToken.Username, fiber.StatusNotFound, "DownloadCSV")

			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "DownloadCSV")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build CSV",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DownloadCSV")
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, domain.CSVFileName(year)))
	return c.Status(fiber.StatusOK).Send(payload)
}

func (rh *reportHandler) DownloadPDF(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)
	year := reportYear(c)

	records, err := rh.uc.FetchByYear(c.Context(), year)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "DownloadPDF")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build report",
		})
	}

	payload, err := rh.uc.BuildPDF(*records, year)
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "DownloadPDF")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build PDF",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "DownloadPDF")
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, domain.PDFFileName(year)))
	return c.Status(fiber.StatusOK).Send(payload)
}

func (rh *reportHandler) GetStats(c *fiber.Ctx) error {
	userToken := c.Locals("user").(*domain.Claims)

	stats, err := rh.uc.GetStats(c.Context())
	if err != nil {
		config.PrintLogInfo(&userToken.Username, fiber.StatusInternalServerError, "GetStats")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build stats",
		})
	}

	config.PrintLogInfo(&userToken.Username, fiber.StatusOK, "GetStats")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Successfully built stats",
		"data":    stats,
	})
}
