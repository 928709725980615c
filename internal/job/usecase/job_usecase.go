package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/job/domain"

	apperrors "github.com/addislabs/placement/internal/errors"
	appValidation "github.com/addislabs/placement/internal/validation"
)

// SaveJobPostingInput contains the editable job posting fields. ID is empty
// when publishing a new posting.
type SaveJobPostingInput struct {
	ID             string `json:"id"`
	SponsorID      string `json:"sponsor_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Country        string `json:"country"`
	City           string `json:"city"`
	SalaryAmount   int    `json:"salary_amount"`
	SalaryCurrency string `json:"salary_currency"`
}

// jobUseCase implements JobUseCase.
type jobUseCase struct {
	jobRepo JobRepository
}

// NewJobUseCase creates a new JobUseCase with the provided dependencies.
func NewJobUseCase(jobRepo JobRepository) JobUseCase {
	return &jobUseCase{jobRepo: jobRepo}
}

func (uc *jobUseCase) validateSaveInput(input SaveJobPostingInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.SponsorID,
			validation.Required.Error("sponsor id is required"),
			appValidation.UUIDString,
		),
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 5000).Error("description must be at most 5000 characters"),
		),
		validation.Field(&input.Country,
			validation.Required.Error("country is required"),
			appValidation.GCCCountry,
		),
		validation.Field(&input.SalaryAmount,
			validation.Min(0).Error("salary amount cannot be negative"),
		),
		validation.Field(&input.SalaryCurrency,
			validation.Length(0, 3).Error("salary currency must be a 3-letter code"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Save publishes a new posting when ID is empty and edits the existing one
// otherwise. Closed postings reject edits.
func (uc *jobUseCase) Save(ctx context.Context, input SaveJobPostingInput) (*domain.JobPosting, error) {
	if err := uc.validateSaveInput(input); err != nil {
		return nil, err
	}

	sponsorID, err := uuid.Parse(input.SponsorID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "sponsor id must be a valid UUID")
	}

	var job *domain.JobPosting
	if input.ID == "" {
		job = &domain.JobPosting{
			ID:        uuid.Must(uuid.NewV7()),
			SponsorID: sponsorID,
			Status:    domain.StatusOpen,
		}
	} else {
		id, err := uuid.Parse(input.ID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "id must be a valid UUID")
		}
		job, err = uc.jobRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !job.IsOpen() {
			return nil, domain.ErrJobNotEditable
		}
	}

	job.Title = strings.TrimSpace(input.Title)
	job.Description = strings.TrimSpace(input.Description)
	job.Country = strings.ToUpper(strings.TrimSpace(input.Country))
	job.City = strings.TrimSpace(input.City)
	job.SalaryAmount = input.SalaryAmount
	job.SalaryCurrency = strings.ToUpper(strings.TrimSpace(input.SalaryCurrency))

	if err := uc.jobRepo.Upsert(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// Get retrieves a posting by its primary key.
func (uc *jobUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.JobPosting, error) {
	return uc.jobRepo.Get(ctx, id)
}

// Search retrieves postings matching the criteria along with the total match
// count for pagination.
func (uc *jobUseCase) Search(
	ctx context.Context,
	criteria domain.JobSearchCriteria,
) ([]*domain.JobPosting, int, error) {
	jobs, err := uc.jobRepo.Search(ctx, criteria)
	if err != nil {
		return nil, 0, err
	}

	count, err := uc.jobRepo.Count(ctx, criteria)
	if err != nil {
		return nil, 0, err
	}

	return jobs, count, nil
}

// Close stops the posting from accepting further applications. The posting
// row is kept for application history.
func (uc *jobUseCase) Close(ctx context.Context, id uuid.UUID) error {
	job, err := uc.jobRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := job.Close(); err != nil {
		return err
	}

	return uc.jobRepo.Close(ctx, job.ID)
}
