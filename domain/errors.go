package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError blocks a submit and names every missing or malformed
// field so the form can highlight them in one round trip.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("please fill all required fields: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, strings.Join(e.Invalid, "; "))
	}
	return strings.Join(parts, "; ")
}

// StoreError wraps a failed record-store call. The caller's in-memory state
// is untouched and the operation may be retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure on %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// DeviceAccessError reports a camera that refused or failed to open.
type DeviceAccessError struct {
	Facing string
	Err    error
}

func (e *DeviceAccessError) Error() string {
	return fmt.Sprintf("camera access denied or no camera found (%s): %v", e.Facing, e.Err)
}

func (e *DeviceAccessError) Unwrap() error {
	return e.Err
}

// UploadError carries the image host's own message when an upload fails.
type UploadError struct {
	Status  int
	Message string
}

func (e *UploadError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("image upload failed: %s", e.Message)
	}
	return fmt.Sprintf("image upload failed with status %d", e.Status)
}

var (
	// ErrNoApplicants is the export precondition: the filtered set is
	// empty, so there is nothing to download. A notice, not a failure.
	ErrNoApplicants = errors.New("no applicants found for the selected year")

	// ErrDeleteSecretMismatch rejects a delete whose confirmation secret
	// does not match the configured one. Nothing is deleted.
	ErrDeleteSecretMismatch = errors.New("incorrect password, deletion canceled")

	// ErrDeleteNotConfirmed rejects a delete missing the final yes/no step.
	ErrDeleteNotConfirmed = errors.New("deletion not confirmed")

	// ErrVersionConflict means the stored record changed since it was
	// loaded for editing; the client must re-fetch and re-apply.
	ErrVersionConflict = errors.New("record was modified by another session")

	// ErrApplicantNotFound is returned for lookups and writes against an
	// id that does not exist or is already deleted.
	ErrApplicantNotFound = errors.New("applicant not found")
)
