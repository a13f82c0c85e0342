package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hajjapply/config"
	"hajjapply/domain"

	"github.com/asaskevich/govalidator"
	"github.com/lib/pq"
)

type applicantUC struct {
	applicantRepo domain.ApplicantRepo
	TimeOut       time.Duration
}

func NewApplicantUseCase(repo domain.ApplicantRepo, timeOut time.Duration) domain.ApplicantUseCase {
	return &applicantUC{
		applicantRepo: repo,
		TimeOut:       timeOut,
	}
}

// DeriveAge computes whole years between a YYYY-MM-DD date of birth and the
// reference day, decrementing when the birthday has not yet passed this year.
// Unparseable input yields an empty string, never a guess.
func DeriveAge(dob string, today time.Time) string {
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return ""
	}

	age := today.Year() - born.Year()
	if today.Month() < born.Month() ||
		(today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return ""
	}

	return strconv.Itoa(age)
}

// DeriveExpiry adds the five-year passport validity to a YYYY-MM-DD issue
// date. AddDate normalizes the leap-day edge: an issue date of 2024-02-29
// expires 2029-03-01.
func DeriveExpiry(issueDate string) string {
	issued, err := time.Parse("2006-01-02", issueDate)
	if err != nil {
		return ""
	}

	return issued.AddDate(5, 0, 0).Format("2006-01-02")
}

func validateRequired(rec *domain.ApplicantRecord) error {
	var missing []string

	if rec.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if rec.LastName == "" {
		missing = append(missing, "lastName")
	}
	// The intake desk asked for the full strict list to come back once the
	// paper-form backlog is cleared; until then only the names block.
	// if rec.Dob == "" {
	// 	missing = append(missing, "dob")
	// }
	// if rec.PassportNumber == "" {
	// 	missing = append(missing, "passportNumber")
	// }
	// if rec.Phone == "" {
	// 	missing = append(missing, "phone")
	// }

	if len(missing) > 0 {
		return &domain.ValidationError{Missing: missing}
	}

	return nil
}

// SubmitApplicant finalizes a draft: derived fields are recomputed, the
// single district selection folds into the stored list, and the record is
// created when unbound or replaced by ID and version when editing.
func (aUC *applicantUC) SubmitApplicant(ctx context.Context, rec *domain.ApplicantRecord) error {
	ctx, cancel := context.WithTimeout(ctx, aUC.TimeOut)
	defer cancel()

	if err := validateRequired(rec); err != nil {
		return err
	}

	if _, err := govalidator.ValidateStruct(rec); err != nil {
		return &domain.ValidationError{Invalid: strings.Split(err.Error(), ";")}
	}

	if rec.District != "" && !domain.IsValidDistrict(rec.District) {
		return &domain.ValidationError{Invalid: []string{fmt.Sprintf("unknown district: %s", rec.District)}}
	}

	if rec.Dob != "" {
		rec.Age = DeriveAge(rec.Dob, time.Now())
	}
	if rec.PassportIssueDate != "" {
		rec.PassportExpiryDate = DeriveExpiry(rec.PassportIssueDate)
	}

	if rec.District != "" {
		rec.Districts = pq.StringArray{rec.District}
		rec.District = ""
	}

	now := time.Now()
	rec.SubmittedAt = now.Format(time.RFC3339)
	if rec.ApplicationYear == "" {
		rec.ApplicationYear = strconv.Itoa(now.Year())
	}

	if rec.ID == 0 {
		return aUC.applicantRepo.CreateApplicant(ctx, rec)
	}

	return aUC.applicantRepo.UpdateApplicant(ctx, rec.ID, rec)
}

func (aUC *applicantUC) GetAllApplicants(ctx context.Context) (*[]domain.ApplicantRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, aUC.TimeOut)
	defer cancel()

	records, err := aUC.applicantRepo.GetAllApplicants(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (aUC *applicantUC) GetApplicantDetail(ctx context.Context, id int) (*domain.ApplicantRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, aUC.TimeOut)
	defer cancel()

	record, err := aUC.applicantRepo.GetApplicantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteApplicant enforces the two-step guard: the shared secret must match
// and the final confirmation must be explicit before anything is removed.
func (aUC *applicantUC) DeleteApplicant(ctx context.Context, id int, secret string, confirmed bool) error {
	ctx, cancel := context.WithTimeout(ctx, aUC.TimeOut)
	defer cancel()

	if secret != config.GetDeleteSecret() {
		return domain.ErrDeleteSecretMismatch
	}
	if !confirmed {
		return domain.ErrDeleteNotConfirmed
	}

	return aUC.applicantRepo.DeleteApplicant(ctx, id)
}
