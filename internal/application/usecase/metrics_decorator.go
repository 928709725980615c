package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/addislabs/placement/internal/application/domain"
	"github.com/addislabs/placement/internal/metrics"
)

// applicationUseCaseWithMetrics decorates ApplicationUseCase with metrics instrumentation.
type applicationUseCaseWithMetrics struct {
	next    ApplicationUseCase
	metrics metrics.BusinessMetrics
}

// NewApplicationUseCaseWithMetrics wraps an ApplicationUseCase with metrics recording.
func NewApplicationUseCaseWithMetrics(useCase ApplicationUseCase, m metrics.BusinessMetrics) ApplicationUseCase {
	return &applicationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *applicationUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "applications", operation, status)
	a.metrics.RecordDuration(ctx, "applications", operation, time.Since(start), status)
}

// Submit records metrics for application submissions.
func (a *applicationUseCaseWithMetrics) Submit(
	ctx context.Context,
	input SubmitApplicationInput,
) (*domain.JobApplication, error) {
	start := time.Now()
	app, err := a.next.Submit(ctx, input)
	a.record(ctx, "application_submit", start, err)
	return app, err
}

// Review records metrics for review transitions.
func (a *applicationUseCaseWithMetrics) Review(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	start := time.Now()
	app, err := a.next.Review(ctx, id)
	a.record(ctx, "application_review", start, err)
	return app, err
}

// Shortlist records metrics for shortlist transitions.
func (a *applicationUseCaseWithMetrics) Shortlist(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	start := time.Now()
	app, err := a.next.Shortlist(ctx, id)
	a.record(ctx, "application_shortlist", start, err)
	return app, err
}

// Accept records metrics for accept transitions.
func (a *applicationUseCaseWithMetrics) Accept(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	start := time.Now()
	app, err := a.next.Accept(ctx, id)
	a.record(ctx, "application_accept", start, err)
	return app, err
}

// Reject records metrics for reject transitions.
func (a *applicationUseCaseWithMetrics) Reject(
	ctx context.Context,
	id uuid.UUID,
	reason string,
) (*domain.JobApplication, error) {
	start := time.Now()
	app, err := a.next.Reject(ctx, id, reason)
	a.record(ctx, "application_reject", start, err)
	return app, err
}

// Withdraw records metrics for withdraw transitions.
func (a *applicationUseCaseWithMetrics) Withdraw(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	start := time.Now()
	app, err := a.next.Withdraw(ctx, id)
	a.record(ctx, "application_withdraw", start, err)
	return app, err
}

// Get records metrics for application retrieval.
func (a *applicationUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	start := time.Now()
	app, err := a.next.Get(ctx, id)
	a.record(ctx, "application_get", start, err)
	return app, err
}

// ListByJob records metrics for per-job listings.
func (a *applicationUseCaseWithMetrics) ListByJob(
	ctx context.Context,
	jobID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, int, error) {
	start := time.Now()
	apps, total, err := a.next.ListByJob(ctx, jobID, limit, offset)
	a.record(ctx, "application_list_by_job", start, err)
	return apps, total, err
}

// ListByMaid records metrics for per-worker listings.
func (a *applicationUseCaseWithMetrics) ListByMaid(
	ctx context.Context,
	maidID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	start := time.Now()
	apps, err := a.next.ListByMaid(ctx, maidID, limit, offset)
	a.record(ctx, "application_list_by_maid", start, err)
	return apps, err
}

// HasApplied records metrics for active-application checks.
func (a *applicationUseCaseWithMetrics) HasApplied(ctx context.Context, jobID, maidID uuid.UUID) (bool, error) {
	start := time.Now()
	applied, err := a.next.HasApplied(ctx, jobID, maidID)
	a.record(ctx, "application_has_applied", start, err)
	return applied, err
}
