// Package domain defines the job application aggregate and its status
// machine. Applications are never deleted; every outcome is a recorded
// terminal status.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/addislabs/placement/internal/errors"
)

// ApplicationStatus represents where an application sits in the hiring flow.
type ApplicationStatus string

const (
	// StatusSubmitted is the initial status after a worker applies.
	StatusSubmitted ApplicationStatus = "submitted"
	// StatusReviewed means the sponsor has looked at the application.
	StatusReviewed ApplicationStatus = "reviewed"
	// StatusShortlisted means the sponsor is considering the worker.
	StatusShortlisted ApplicationStatus = "shortlisted"
	// StatusAccepted is terminal: the worker got the position.
	StatusAccepted ApplicationStatus = "accepted"
	// StatusRejected is terminal: the sponsor declined the application.
	StatusRejected ApplicationStatus = "rejected"
	// StatusWithdrawn is terminal: the worker pulled out.
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// Application errors.
var (
	ErrApplicationNotFound = apperrors.Wrap(apperrors.ErrNotFound, "application not found")
	ErrAlreadyApplied      = apperrors.Wrap(apperrors.ErrConflict, "an active application for this job already exists")
)

// JobApplication represents one worker's application to one job posting.
// Each status carries its own timestamp so the full history of the
// application is readable from the row itself.
type JobApplication struct {
	ID              uuid.UUID         `json:"id"`
	JobID           uuid.UUID         `json:"job_id"`
	MaidID          uuid.UUID         `json:"maid_id"`
	SponsorID       uuid.UUID         `json:"sponsor_id"`
	CoverLetter     string            `json:"cover_letter"`
	Status          ApplicationStatus `json:"status"`
	RejectionReason string            `json:"rejection_reason"`
	AppliedAt       time.Time         `json:"applied_at"`
	ReviewedAt      *time.Time        `json:"reviewed_at"`
	ShortlistedAt   *time.Time        `json:"shortlisted_at"`
	AcceptedAt      *time.Time        `json:"accepted_at"`
	RejectedAt      *time.Time        `json:"rejected_at"`
	WithdrawnAt     *time.Time        `json:"withdrawn_at"`
}

// NewJobApplication creates a submitted application.
func NewJobApplication(jobID, maidID, sponsorID uuid.UUID, coverLetter string) *JobApplication {
	return &JobApplication{
		ID:          uuid.Must(uuid.NewV7()),
		JobID:       jobID,
		MaidID:      maidID,
		SponsorID:   sponsorID,
		CoverLetter: coverLetter,
		Status:      StatusSubmitted,
		AppliedAt:   time.Now().UTC(),
	}
}

// IsTerminal reports whether the application reached a final status.
// Terminal applications never change again.
func (a *JobApplication) IsTerminal() bool {
	switch a.Status {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// transitionError reports an invalid status transition without mutating
// the application.
func (a *JobApplication) transitionError(to ApplicationStatus) error {
	return apperrors.Wrap(
		apperrors.ErrInvalidTransition,
		fmt.Sprintf("cannot transition application from %s to %s", a.Status, to),
	)
}

// Review marks a submitted application as seen by the sponsor.
func (a *JobApplication) Review() error {
	if a.Status != StatusSubmitted {
		return a.transitionError(StatusReviewed)
	}
	now := time.Now().UTC()
	a.Status = StatusReviewed
	a.ReviewedAt = &now
	return nil
}

// Shortlist moves a reviewed application into the sponsor's shortlist.
func (a *JobApplication) Shortlist() error {
	if a.Status != StatusReviewed {
		return a.transitionError(StatusShortlisted)
	}
	now := time.Now().UTC()
	a.Status = StatusShortlisted
	a.ShortlistedAt = &now
	return nil
}

// Accept marks a shortlisted application as the winning one.
func (a *JobApplication) Accept() error {
	if a.Status != StatusShortlisted {
		return a.transitionError(StatusAccepted)
	}
	now := time.Now().UTC()
	a.Status = StatusAccepted
	a.AcceptedAt = &now
	return nil
}

// Reject declines a reviewed or shortlisted application. The reason is
// recorded for the worker.
func (a *JobApplication) Reject(reason string) error {
	if a.Status != StatusReviewed && a.Status != StatusShortlisted {
		return a.transitionError(StatusRejected)
	}
	now := time.Now().UTC()
	a.Status = StatusRejected
	a.RejectedAt = &now
	a.RejectionReason = reason
	return nil
}

// Withdraw is the worker-initiated exit. It is allowed from any
// non-terminal status.
func (a *JobApplication) Withdraw() error {
	if a.IsTerminal() {
		return a.transitionError(StatusWithdrawn)
	}
	now := time.Now().UTC()
	a.Status = StatusWithdrawn
	a.WithdrawnAt = &now
	return nil
}
