// Package usecase implements business logic for job postings.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/job/domain"
)

// JobRepository defines the interface for job posting persistence.
type JobRepository interface {
	// Upsert creates the posting or replaces its mutable fields.
	Upsert(ctx context.Context, job *domain.JobPosting) error
	// Get retrieves a posting by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error)
	// Search retrieves postings matching the criteria.
	Search(ctx context.Context, criteria domain.JobSearchCriteria) ([]*domain.JobPosting, error)
	// Count reports how many postings match the criteria.
	Count(ctx context.Context, criteria domain.JobSearchCriteria) (int, error)
	// Close marks an open posting as closed.
	Close(ctx context.Context, id uuid.UUID) error
}

// JobUseCase defines the job posting operations.
type JobUseCase interface {
	// Save creates a posting or edits an existing open one.
	Save(ctx context.Context, input SaveJobPostingInput) (*domain.JobPosting, error)
	// Get retrieves a posting by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error)
	// Search retrieves postings matching the criteria along with the total count.
	Search(ctx context.Context, criteria domain.JobSearchCriteria) ([]*domain.JobPosting, int, error)
	// Close stops a posting from accepting further applications.
	Close(ctx context.Context, id uuid.UUID) error
}
