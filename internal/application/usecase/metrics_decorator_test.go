package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/addislabs/placement/internal/application/domain"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// mockApplicationUseCase is a mock implementation of ApplicationUseCase for testing.
type mockApplicationUseCase struct {
	mock.Mock
}

func (m *mockApplicationUseCase) Submit(
	ctx context.Context,
	input SubmitApplicationInput,
) (*domain.JobApplication, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *mockApplicationUseCase) Review(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *mockApplicationUseCase) Shortlist(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *mockApplicationUseCase) Accept(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *mockApplicationUseCase) Reject(
	ctx context.Context,
	id uuid.UUID,
	reason string,
) (*domain.JobApplication, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *mockApplicationUseCase) Withdraw(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *mockApplicationUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *mockApplicationUseCase) ListByJob(
	ctx context.Context,
	jobID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, int, error) {
	args := m.Called(ctx, jobID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.JobApplication), args.Int(1), args.Error(2)
}

func (m *mockApplicationUseCase) ListByMaid(
	ctx context.Context,
	maidID uuid.UUID,
	limit, offset int,
) ([]*domain.JobApplication, error) {
	args := m.Called(ctx, maidID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.JobApplication), args.Error(1)
}

func (m *mockApplicationUseCase) HasApplied(ctx context.Context, jobID, maidID uuid.UUID) (bool, error) {
	args := m.Called(ctx, jobID, maidID)
	return args.Bool(0), args.Error(1)
}

func TestApplicationUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Submit success", func(t *testing.T) {
		mockNext := &mockApplicationUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewApplicationUseCaseWithMetrics(mockNext, mockMetrics)

		input := SubmitApplicationInput{JobID: uuid.Must(uuid.NewV7()).String()}
		app := &domain.JobApplication{Status: domain.StatusSubmitted}

		mockNext.On("Submit", ctx, input).Return(app, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "applications", "application_submit", "success").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "applications", "application_submit",
			mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		got, err := uc.Submit(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, app, got)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Reject error", func(t *testing.T) {
		mockNext := &mockApplicationUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewApplicationUseCaseWithMetrics(mockNext, mockMetrics)

		id := uuid.Must(uuid.NewV7())

		mockNext.On("Reject", ctx, id, "no").Return(nil, assert.AnError).Once()
		mockMetrics.On("RecordOperation", ctx, "applications", "application_reject", "error").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "applications", "application_reject",
			mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		got, err := uc.Reject(ctx, id, "no")
		assert.Error(t, err)
		assert.Nil(t, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ListByJob success", func(t *testing.T) {
		mockNext := &mockApplicationUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := NewApplicationUseCaseWithMetrics(mockNext, mockMetrics)

		jobID := uuid.Must(uuid.NewV7())
		apps := []*domain.JobApplication{{Status: domain.StatusSubmitted}}

		mockNext.On("ListByJob", ctx, jobID, 50, 0).Return(apps, 1, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "applications", "application_list_by_job", "success").
			Return().
			Once()
		mockMetrics.On("RecordDuration", ctx, "applications", "application_list_by_job",
			mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		got, total, err := uc.ListByJob(ctx, jobID, 50, 0)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, 1, total)
	})
}
