package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"hajjapply/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortBySequenceCode(t *testing.T) {
	records := []domain.ApplicantRecord{
		{Slh6: "10"},
		{Slh6: "2"},
		{Slh6: "abc"},
		{Slh6: ""},
		{Slh6: "1"},
	}

	SortBySequenceCode(records)

	got := make([]string, len(records))
	for i, rec := range records {
		got[i] = rec.Slh6
	}
	assert.Equal(t, []string{"1", "2", "10", "abc", ""}, got)

	t.Run("re-sorting is a no-op", func(t *testing.T) {
		SortBySequenceCode(records)

		again := make([]string, len(records))
		for i, rec := range records {
			again[i] = rec.Slh6
		}
		assert.Equal(t, got, again)
	})
}

func TestFormatReportDate(t *testing.T) {
	assert.Equal(t, "4/Feb/2025", FormatReportDate("2025-02-04"))
	assert.Equal(t, "29/Feb/2024", FormatReportDate("2024-02-29"))
	assert.Equal(t, "", FormatReportDate("04-02-2025"))
	assert.Equal(t, "", FormatReportDate(""))
}

func TestFetchByYear(t *testing.T) {
	repo := &fakeApplicantRepo{
		records: []domain.ApplicantRecord{
			{Slh6: "3", ApplicationYear: "2025"},
			{Slh6: "1", ApplicationYear: "2025"},
			{Slh6: "2", ApplicationYear: "2024"},
		},
	}
	uc := NewReportUseCase(repo, time.Second)

	records, err := uc.FetchByYear(context.Background(), "2025")
	require.NoError(t, err)
	require.Len(t, *records, 2)
	assert.Equal(t, "1", (*records)[0].Slh6)
	assert.Equal(t, "3", (*records)[1].Slh6)
}

func TestBuildCSV(t *testing.T) {
	uc := NewReportUseCase(&fakeApplicantRepo{}, time.Second)

	t.Run("empty set is a precondition failure", func(t *testing.T) {
		_, err := uc.BuildCSV(nil, "2025")
		assert.ErrorIs(t, err, domain.ErrNoApplicants)
	})

	t.Run("rows follow the fixed column layout", func(t *testing.T) {
		records := []domain.ApplicantRecord{
			{
				Slh6:               "12",
				FirstName:          "Amara",
				LastName:           "Kamara",
				Gender:             "Male",
				Dob:                "1980-06-01",
				PassportNumber:     "SL004411",
				PassportIssueDate:  "2023-05-20",
				PassportExpiryDate: "2028-05-20",
				Phone:              "+23276123456",
				ApplicationYear:    "2025",
			},
		}

		payload, err := uc.BuildCSV(records, "2025")
		require.NoError(t, err)

		rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, []string{
			"SLHS Code", "Last Name", "First Name", "Gender", "Date of Birth",
			"Passport Number", "Issue Date", "Expiry Date", "Phone", "Year",
		}, rows[0])
		assert.Equal(t, []string{
			"12", "Kamara", "Amara", "Male", "1/Jun/1980",
			"SL004411", "20/May/2023", "20/May/2028", "+23276123456", "2025",
		}, rows[1])
	})

	t.Run("commas in values survive quoting", func(t *testing.T) {
		records := []domain.ApplicantRecord{
			{Slh6: "1", LastName: "Doe, Jr", FirstName: "Jane", ApplicationYear: "2025"},
		}

		payload, err := uc.BuildCSV(records, "2025")
		require.NoError(t, err)

		rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, "Doe, Jr", rows[1][1])
	})
}

func TestBuildPDF(t *testing.T) {
	uc := NewReportUseCase(&fakeApplicantRepo{}, time.Second)

	t.Run("renders a document with records", func(t *testing.T) {
		records := []domain.ApplicantRecord{
			{Slh6: "1", FirstName: "Amara", LastName: "Kamara", Gender: "Male"},
		}

		payload, err := uc.BuildPDF(records, "2025")
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
	})

	t.Run("empty set still renders", func(t *testing.T) {
		payload, err := uc.BuildPDF(nil, "2025")
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
	})
}

func TestGetStats(t *testing.T) {
	repo := &fakeApplicantRepo{
		records: []domain.ApplicantRecord{
			{Gender: "Male", MaritalStatus: "Married", Districts: pq.StringArray{"Bo"}},
			{Gender: "Female", MaritalStatus: "Married", Districts: pq.StringArray{"Bo"}},
			{Gender: "Male", MaritalStatus: "Single", Districts: pq.StringArray{"Kenema"}},
			{},
		},
	}
	uc := NewReportUseCase(repo, time.Second)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.ByDistrict["Bo"])
	assert.Equal(t, 1, stats.ByDistrict["Kenema"])
	assert.Equal(t, 2, stats.ByGender["Male"])
	assert.Equal(t, 1, stats.ByGender["Female"])
	assert.Equal(t, 2, stats.ByMarital["Married"])
	assert.Equal(t, 1, stats.ByMarital["Single"])
}
