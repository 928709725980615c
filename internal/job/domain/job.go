// Package domain defines the job posting aggregate.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/addislabs/placement/internal/errors"
)

// JobStatus represents the lifecycle status of a job posting.
type JobStatus string

const (
	// StatusOpen means the posting accepts applications.
	StatusOpen JobStatus = "open"
	// StatusClosed means the posting no longer accepts applications.
	// Closed postings are kept for history and never deleted.
	StatusClosed JobStatus = "closed"
)

// Job posting errors.
var (
	ErrJobNotFound    = apperrors.Wrap(apperrors.ErrNotFound, "job posting not found")
	ErrJobClosed      = apperrors.Wrap(apperrors.ErrInvalidTransition, "job posting is already closed")
	ErrJobNotEditable = apperrors.Wrap(apperrors.ErrInvalidTransition, "closed job postings cannot be edited")
)

// JobPosting represents a household position published by a sponsor.
type JobPosting struct {
	ID             uuid.UUID `json:"id"`
	SponsorID      uuid.UUID `json:"sponsor_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Country        string    `json:"country"`
	City           string    `json:"city"`
	SalaryAmount   int       `json:"salary_amount"`
	SalaryCurrency string    `json:"salary_currency"`
	Status         JobStatus `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsOpen reports whether the posting still accepts applications.
func (j *JobPosting) IsOpen() bool {
	return j.Status == StatusOpen
}

// Close marks the posting as closed. Closing is a one-way transition.
func (j *JobPosting) Close() error {
	if j.Status == StatusClosed {
		return ErrJobClosed
	}
	j.Status = StatusClosed
	return nil
}

// JobSearchCriteria filters job posting searches. Zero values mean
// the dimension is not filtered.
type JobSearchCriteria struct {
	SponsorID uuid.UUID
	Country   string
	Status    JobStatus
	Limit     int
	Offset    int
}
