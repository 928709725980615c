package dto

import (
	"time"

	"github.com/addislabs/placement/internal/application/domain"
)

// ApplicationResponse represents a job application in API responses.
type ApplicationResponse struct {
	ID              string     `json:"id"`
	JobID           string     `json:"job_id"`
	MaidID          string     `json:"maid_id"`
	SponsorID       string     `json:"sponsor_id"`
	CoverLetter     string     `json:"cover_letter"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	AppliedAt       time.Time  `json:"applied_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ShortlistedAt   *time.Time `json:"shortlisted_at,omitempty"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	WithdrawnAt     *time.Time `json:"withdrawn_at,omitempty"`
}

// MapApplicationToResponse converts a domain JobApplication to an ApplicationResponse.
func MapApplicationToResponse(app *domain.JobApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:              app.ID.String(),
		JobID:           app.JobID.String(),
		MaidID:          app.MaidID.String(),
		SponsorID:       app.SponsorID.String(),
		CoverLetter:     app.CoverLetter,
		Status:          string(app.Status),
		RejectionReason: app.RejectionReason,
		AppliedAt:       app.AppliedAt,
		ReviewedAt:      app.ReviewedAt,
		ShortlistedAt:   app.ShortlistedAt,
		AcceptedAt:      app.AcceptedAt,
		RejectedAt:      app.RejectedAt,
		WithdrawnAt:     app.WithdrawnAt,
	}
}

// ListApplicationsResponse represents a paginated application listing.
type ListApplicationsResponse struct {
	Data  []ApplicationResponse `json:"data"`
	Total int                   `json:"total"`
}

// MapApplicationsToListResponse converts domain JobApplications to a ListApplicationsResponse.
func MapApplicationsToListResponse(apps []*domain.JobApplication, total int) ListApplicationsResponse {
	data := make([]ApplicationResponse, len(apps))
	for i, app := range apps {
		data[i] = MapApplicationToResponse(app)
	}
	return ListApplicationsResponse{Data: data, Total: total}
}

// HasAppliedResponse reports whether a worker holds an active application.
type HasAppliedResponse struct {
	HasApplied bool `json:"has_applied"`
}
