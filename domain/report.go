package domain

import (
	"context"
	"fmt"
)

// ReportStats aggregates the listing for the dashboard view.
type ReportStats struct {
	Total      int            `json:"total"`
	ByDistrict map[string]int `json:"district"`
	ByGender   map[string]int `json:"gender"`
	ByMarital  map[string]int `json:"maritalStatus"`
}

// CSVFileName and PDFFileName are the download names the browser sees.
func CSVFileName(year string) string {
	return fmt.Sprintf("HajjApplicants_Report_%s.csv", year)
}

func PDFFileName(year string) string {
	return fmt.Sprintf("HajjApplicants_%s.pdf", year)
}

type ReportUseCase interface {
	FetchByYear(ctx context.Context, year string) (*[]ApplicantRecord, error)
	BuildCSV(records []ApplicantRecord, year string) ([]byte, error)
	BuildPDF(records []ApplicantRecord, year string) ([]byte, error)
	GetStats(ctx context.Context) (*ReportStats, error)
}
