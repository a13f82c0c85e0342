package delivery

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"hajjapply/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportUC struct {
	records []domain.ApplicantRecord
	stats   *domain.ReportStats
}

func (s *stubReportUC) FetchByYear(ctx context.Context, year string) (*[]domain.ApplicantRecord, error) {
	return &s.records, nil
}

func (s *stubReportUC) BuildCSV(records []domain.ApplicantRecord, year string) ([]byte, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoApplicants
	}
	return []byte("SLHS Code\n1\n"), nil
}

func (s *stubReportUC) BuildPDF(records []domain.ApplicantRecord, year string) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

func (s *stubReportUC) GetStats(ctx context.Context) (*domain.ReportStats, error) {
	return s.stats, nil
}

func newReportApp(t *testing.T, uc domain.ReportUseCase) *fiber.App {
	t.Helper()
	t.Setenv("BYTE_KEY", "test-signing-key")

	app := fiber.New()
	NewReportHandler(app, uc)
	return app
}

func TestDownloadCSVEndpoint(t *testing.T) {
	t.Run("sets the download headers", func(t *testing.T) {
		uc := &stubReportUC{records: []domain.ApplicantRecord{{Slh6: "1"}}}
		app := newReportApp(t, uc)

		req := httptest.NewRequest("GET", "/report/csv?year=2025", nil)
		req.Header.Set("Authorization", bearerToken(t, "staff"))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "HajjApplicants_Report_2025.csv")
	})

	t.Run("empty year reports the precondition", func(t *testing.T) {
		app := newReportApp(t, &stubReportUC{})

		req := httptest.NewRequest("GET", "/report/csv?year=1999", nil)
		req.Header.Set("Authorization", bearerToken(t, "staff"))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "no applicants found")
	})
}

func TestDownloadPDFEndpoint(t *testing.T) {
	uc := &stubReportUC{records: []domain.ApplicantRecord{{Slh6: "1"}}}
	app := newReportApp(t, uc)

	req := httptest.NewRequest("GET", "/report/pdf?year=2025", nil)
	req.Header.Set("Authorization", bearerToken(t, "staff"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "HajjApplicants_2025.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestGetStatsEndpoint(t *testing.T) {
	uc := &stubReportUC{stats: &domain.ReportStats{
		Total:      3,
		ByDistrict: map[string]int{"Bo": 2, "Kenema": 1},
		ByGender:   map[string]int{"Male": 2, "Female": 1},
		ByMarital:  map[string]int{"Married": 3},
	}}
	app := newReportApp(t, uc)

	req := httptest.NewRequest("GET", "/report/stats", nil)
	req.Header.Set("Authorization", bearerToken(t, "staff"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"total":3`)
	assert.Contains(t, string(body), `"Bo":2`)
}
