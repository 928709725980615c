// Package usecase implements business logic for job applications.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/application/domain"

	jobDomain "github.com/addislabs/placement/internal/job/domain"
)

// ApplicationRepository defines the interface for job application persistence.
type ApplicationRepository interface {
	// Create inserts a new application.
	Create(ctx context.Context, app *domain.JobApplication) error
	// Get retrieves an application by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)
	// Update persists the application's status and timestamps.
	Update(ctx context.Context, app *domain.JobApplication) error
	// HasApplied reports whether a worker has an active application for a job.
	HasApplied(ctx context.Context, jobID, maidID uuid.UUID) (bool, error)
	// ListByJob retrieves applications for a job posting.
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]*domain.JobApplication, error)
	// ListByMaid retrieves applications submitted by a worker.
	ListByMaid(ctx context.Context, maidID uuid.UUID, limit, offset int) ([]*domain.JobApplication, error)
	// CountByJob reports how many applications a job posting received.
	CountByJob(ctx context.Context, jobID uuid.UUID) (int, error)
}

// JobPostingReader provides the posting lookups the submit flow needs.
type JobPostingReader interface {
	Get(ctx context.Context, id uuid.UUID) (*jobDomain.JobPosting, error)
}

// ApplicationUseCase defines the job application operations.
type ApplicationUseCase interface {
	// Submit creates an application for an open job posting.
	Submit(ctx context.Context, input SubmitApplicationInput) (*domain.JobApplication, error)
	// Review marks a submitted application as seen by the sponsor.
	Review(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)
	// Shortlist moves a reviewed application into the shortlist.
	Shortlist(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)
	// Accept marks a shortlisted application as the winning one.
	Accept(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)
	// Reject declines a reviewed or shortlisted application.
	Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.JobApplication, error)
	// Withdraw is the worker-initiated exit from any non-terminal status.
	Withdraw(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)
	// Get retrieves an application by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error)
	// ListByJob retrieves a job posting's applications with the total count.
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]*domain.JobApplication, int, error)
	// ListByMaid retrieves a worker's applications.
	ListByMaid(ctx context.Context, maidID uuid.UUID, limit, offset int) ([]*domain.JobApplication, error)
	// HasApplied reports whether a worker has an active application for a job.
	HasApplied(ctx context.Context, jobID, maidID uuid.UUID) (bool, error)
}
