package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/application/domain"
	"github.com/addislabs/placement/internal/database"

	apperrors "github.com/addislabs/placement/internal/errors"
	appValidation "github.com/addislabs/placement/internal/validation"
)

// ErrJobNotOpen rejects applications to postings that stopped accepting them.
var ErrJobNotOpen = apperrors.Wrap(apperrors.ErrConflict, "job posting is not accepting applications")

// SubmitApplicationInput contains the fields needed to apply to a job posting.
type SubmitApplicationInput struct {
	JobID       string `json:"job_id"`
	MaidID      string `json:"maid_id"`
	CoverLetter string `json:"cover_letter"`
}

// applicationUseCase implements ApplicationUseCase.
type applicationUseCase struct {
	applicationRepo ApplicationRepository
	jobReader       JobPostingReader
	txManager       database.TxManager
}

// NewApplicationUseCase creates a new ApplicationUseCase with the provided dependencies.
func NewApplicationUseCase(
	applicationRepo ApplicationRepository,
	jobReader JobPostingReader,
	txManager database.TxManager,
) ApplicationUseCase {
	return &applicationUseCase{
		applicationRepo: applicationRepo,
		jobReader:       jobReader,
		txManager:       txManager,
	}
}

func (uc *applicationUseCase) validateSubmitInput(input SubmitApplicationInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.JobID,
			validation.Required.Error("job id is required"),
			appValidation.UUIDString,
		),
		validation.Field(&input.MaidID,
			validation.Required.Error("maid id is required"),
			appValidation.UUIDString,
		),
		validation.Field(&input.CoverLetter,
			validation.Length(0, 5000).Error("cover letter must be at most 5000 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Submit creates an application for an open posting. The duplicate check
// and the insert run in one transaction. On PostgreSQL a partial unique
// index on (job_id, maid_id) backstops the pre-check, so a concurrent
// duplicate fails on insert; MySQL has no partial indexes and relies on
// the pre-check alone.
func (uc *applicationUseCase) Submit(
	ctx context.Context,
	input SubmitApplicationInput,
) (*domain.JobApplication, error) {
	if err := uc.validateSubmitInput(input); err != nil {
		return nil, err
	}

	jobID, err := uuid.Parse(input.JobID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "job id must be a valid UUID")
	}
	maidID, err := uuid.Parse(input.MaidID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "maid id must be a valid UUID")
	}

	job, err := uc.jobReader.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOpen() {
		return nil, ErrJobNotOpen
	}

	app := domain.NewJobApplication(job.ID, maidID, job.SponsorID, input.CoverLetter)

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		applied, err := uc.applicationRepo.HasApplied(ctx, job.ID, maidID)
		if err != nil {
			return err
		}
		if applied {
			return domain.ErrAlreadyApplied
		}
		return uc.applicationRepo.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}

	return app, nil
}

// transition loads the application, applies the entity transition, and
// persists the result. The entity rejects invalid transitions before
// anything is written.
func (uc *applicationUseCase) transition(
	ctx context.Context,
	id uuid.UUID,
	apply func(app *domain.JobApplication) error,
) (*domain.JobApplication, error) {
	app, err := uc.applicationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(app); err != nil {
		return nil, err
	}

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// Review marks a submitted application as seen by the sponsor.
func (uc *applicationUseCase) Review(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	return uc.transition(ctx, id, func(app *domain.JobApplication) error {
		return app.Review()
	})
}

// Shortlist moves a reviewed application into the shortlist.
func (uc *applicationUseCase) Shortlist(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	return uc.transition(ctx, id, func(app *domain.JobApplication) error {
		return app.Shortlist()
	})
}

// Accept marks a shortlisted application as the winning one.
func (uc *applicationUseCase) Accept(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	return uc.transition(ctx, id, func(app *domain.JobApplication) error {
		return app.Accept()
	})
}

// Reject declines a reviewed or shortlisted application with a reason.
func (uc *applicationUseCase) Reject(
	ctx context.Context,
	id uuid.UUID,
	reason string,
) (*domain.JobApplication, error) {
	return uc.transition(ctx, id, func(app *domain.JobApplication) error {
		return app.Reject(reason)
	})
}

// Withdraw is the worker-initiated exit from any non-terminal status.
// A withdrawn application frees the worker to apply to the job again.
func (uc *applicationUseCase) Withdraw(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	return uc.transition(ctx, id, func(app *domain.JobApplication) error {
		return app.Withdraw()
	})
}

// Get retrieves an application by its primary key.
func (uc *applicationUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	return uc.applicationRepo.Get(ctx, id)
}

// ListByJob retrieves a job posting's applications along with the total
// count for pagination.
func (uc *applicationUseCase) ListByJob(
	ctx context.Context,
	jobID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, int, error) {
	apps, err := uc.applicationRepo.ListByJob(ctx, jobID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := uc.applicationRepo.CountByJob(ctx, jobID)
	if err != nil {
		return nil, 0, err
	}

	return apps, count, nil
}

// ListByMaid retrieves a worker's applications.
func (uc *applicationUseCase) ListByMaid(
	ctx context.Context,
	maidID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	return uc.applicationRepo.ListByMaid(ctx, maidID, limit, offset)
}

// HasApplied reports whether a worker has an active application for a job.
func (uc *applicationUseCase) HasApplied(ctx context.Context, jobID, maidID uuid.UUID) (bool, error) {
	return uc.applicationRepo.HasApplied(ctx, jobID, maidID)
}
