package repository

import (
	"context"
	"errors"

	"hajjapply/domain"

	"gorm.io/gorm"
)

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(database *gorm.DB) domain.ApplicantRepo {
	return &applicantRepository{
		db: database,
	}
}

func (ar *applicantRepository) CreateApplicant(ctx context.Context, rec *domain.ApplicantRecord) error {
	rec.ID = 0
	rec.Version = 1

	if err := ar.db.WithContext(ctx).Create(rec).Error; err != nil {
		return &domain.StoreError{Op: "create applicant", Err: err}
	}

	return nil
}

// GetAllApplicants returns the listing newest-first.
func (ar *applicantRepository) GetAllApplicants(ctx context.Context) (*[]domain.ApplicantRecord, error) {
	var records []domain.ApplicantRecord

	err := ar.db.WithContext(ctx).Order("id DESC").Find(&records).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "list applicants", Err: err}
	}

	return &records, nil
}

func (ar *applicantRepository) GetApplicantByID(ctx context.Context, id int) (*domain.ApplicantRecord, error) {
	var rec domain.ApplicantRecord

	err := ar.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicantNotFound
		}
		return nil, &domain.StoreError{Op: "get applicant", Err: err}
	}

	return &rec, nil
}

// UpdateApplicant is a full-document replace guarded by a version stamp:
// the write only lands when the stored version still matches the one the
// record was loaded with.
func (ar *applicantRepository) UpdateApplicant(ctx context.Context, id int, rec *domain.ApplicantRecord) error {
	loadedVersion := rec.Version
	rec.ID = id
	rec.Version = loadedVersion + 1

	tx := ar.db.WithContext(ctx).
		Model(&domain.ApplicantRecord{}).
		Where("id = ? AND version = ?", id, loadedVersion).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(rec)
	if tx.Error != nil {
		rec.Version = loadedVersion
		return &domain.StoreError{Op: "update applicant", Err: tx.Error}
	}

	if tx.RowsAffected == 0 {
		rec.Version = loadedVersion
		var existing domain.ApplicantRecord
		err := ar.db.WithContext(ctx).Where("id = ?", id).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrApplicantNotFound
		}
		return domain.ErrVersionConflict
	}

	return nil
}

func (ar *applicantRepository) DeleteApplicant(ctx context.Context, id int) error {
	tx := ar.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ApplicantRecord{})
	if tx.Error != nil {
		return &domain.StoreError{Op: "delete applicant", Err: tx.Error}
	}
	if tx.RowsAffected == 0 {
		return domain.ErrApplicantNotFound
	}

	return nil
}

// GetApplicantsByYear is an exact match on the application-year tag, not a
// range.
func (ar *applicantRepository) GetApplicantsByYear(ctx context.Context, year string) (*[]domain.ApplicantRecord, error) {
	var records []domain.ApplicantRecord

	err := ar.db.WithContext(ctx).Where("application_year = ?", year).Find(&records).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "query applicants by year", Err: err}
	}

	return &records, nil
}
