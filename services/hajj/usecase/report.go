package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"hajjapply/domain"

	"github.com/jung-kurt/gofpdf"
)

type reportUC struct {
	applicantRepo domain.ApplicantRepo
	TimeOut       time.Duration
}

func NewReportUseCase(repo domain.ApplicantRepo, timeOut time.Duration) domain.ReportUseCase {
	return &reportUC{
		applicantRepo: repo,
		TimeOut:       timeOut,
	}
}

// sequence-code ranking: numeric codes first by value, then the rest
// lexicographically, records with no code last.
const (
	rankNumeric = iota
	rankText
	rankMissing
)

func sequenceRank(code string) (int, int) {
	if code == "" {
		return rankMissing, 0
	}
	if n, err := strconv.Atoi(code); err == nil {
		return rankNumeric, n
	}
	return rankText, 0
}

// SortBySequenceCode orders records for the report in place. The sort is
// stable, so re-sorting an already ordered slice leaves it untouched.
func SortBySequenceCode(records []domain.ApplicantRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ri, ni := sequenceRank(records[i].Slh6)
		rj, nj := sequenceRank(records[j].Slh6)
		if ri != rj {
			return ri < rj
		}
		switch ri {
		case rankNumeric:
			return ni < nj
		case rankText:
			return records[i].Slh6 < records[j].Slh6
		}
		return false
	})
}

// FormatReportDate renders a stored YYYY-MM-DD date as day/abbreviated
// month/year, e.g. 4/Feb/2025. Absent or unparseable input renders empty.
func FormatReportDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d/%s/%d", t.Day(), t.Month().String()[:3], t.Year())
}

func (rUC *reportUC) FetchByYear(ctx context.Context, year string) (*[]domain.ApplicantRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	if year == "" {
		year = strconv.Itoa(time.Now().Year())
	}

	records, err := rUC.applicantRepo.GetApplicantsByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	SortBySequenceCode(*records)

	return records, nil
}

var csvHeader = []string{
	"SLHS Code", "Last Name", "First Name", "Gender", "Date of Birth",
	"Passport Number", "Issue Date", "Expiry Date", "Phone", "Year",
}

func (rUC *reportUC) BuildCSV(records []domain.ApplicantRecord, year string) ([]byte, error) {
	if len(records) == 0 {
		return nil, domain.ErrNoApplicants
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, rec := range records {
		row := []string{
			rec.Slh6,
			rec.LastName,
			rec.FirstName,
			rec.Gender,
			FormatReportDate(rec.Dob),
			rec.PassportNumber,
			FormatReportDate(rec.PassportIssueDate),
			FormatReportDate(rec.PassportExpiryDate),
			rec.Phone,
			rec.ApplicationYear,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

var pdfColumns = []struct {
	title string
	width float64
}{
	{"SLHS Code", 22},
	{"Last Name", 30},
	{"First Name", 30},
	{"Gender", 18},
	{"Date of Birth", 26},
	{"Passport No.", 30},
	{"Issue Date", 26},
	{"Expiry Date", 26},
}

func (rUC *reportUC) BuildPDF(records []domain.ApplicantRecord, year string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Hajj Applicants %s", year), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Applicants: %d", len(records)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0, 102, 204)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)

	if len(records) == 0 {
		var total float64
		for _, col := range pdfColumns {
			total += col.width
		}
		pdf.CellFormat(total, 8, "No applicants found", "1", 1, "C", false, 0, "")
	}

	for _, rec := range records {
		cells := []string{
			rec.Slh6,
			rec.LastName,
			rec.FirstName,
			rec.Gender,
			FormatReportDate(rec.Dob),
			rec.PassportNumber,
			FormatReportDate(rec.PassportIssueDate),
			FormatReportDate(rec.PassportExpiryDate),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 8, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (rUC *reportUC) GetStats(ctx context.Context) (*domain.ReportStats, error) {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	records, err := rUC.applicantRepo.GetAllApplicants(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.ReportStats{
		Total:      len(*records),
		ByDistrict: make(map[string]int),
		ByGender:   make(map[string]int),
		ByMarital:  make(map[string]int),
	}

	for _, rec := range *records {
		for _, district := range rec.Districts {
			stats.ByDistrict[district]++
		}
		if rec.Gender != "" {
			stats.ByGender[rec.Gender]++
		}
		if rec.MaritalStatus != "" {
			stats.ByMarital[rec.MaritalStatus]++
		}
	}

	return stats, nil
}
