package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/addislabs/placement/internal/application/domain"
	"github.com/addislabs/placement/internal/application/http/dto"

	applicationUseCase "github.com/addislabs/placement/internal/application/usecase"
)

// mockApplicationUseCase is a mock implementation of ApplicationUseCase for testing.
type mockApplicationUseCase struct {
	mock.Mock
}

func (m *mockApplicationUseCase) Submit(
	ctx context.Context,
	input applicationUseCase.SubmitApplicationInput,
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

func setupApplicationHandler(t *testing.T) (*ApplicationHandler, *mockApplicationUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mockApplicationUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewApplicationHandler(mockUseCase, logger), mockUseCase
}

// createTestContext creates a test Gin context with the given request.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func submittedApplication() *domain.JobApplication {
	return domain.NewJobApplication(
		uuid.Must(uuid.NewV7()),
		uuid.Must(uuid.NewV7()),
		uuid.Must(uuid.NewV7()),
		"I have four years of experience.",
	)
}

func TestApplicationHandler_SubmitHandler(t *testing.T) {
	t.Run("Success_Submit", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		app := submittedApplication()
		input := applicationUseCase.SubmitApplicationInput{
			JobID:       app.JobID.String(),
			MaidID:      app.MaidID.String(),
			CoverLetter: app.CoverLetter,
		}

		mockUseCase.On("Submit", mock.Anything, input).
			Return(app, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/applications", input)

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ApplicationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "submitted", response.Status)
		assert.Nil(t, response.ReviewedAt)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_AlreadyApplied", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		input := applicationUseCase.SubmitApplicationInput{
			JobID:  uuid.Must(uuid.NewV7()).String(),
			MaidID: uuid.Must(uuid.NewV7()).String(),
		}

		mockUseCase.On("Submit", mock.Anything, input).
			Return(nil, domain.ErrAlreadyApplied).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/applications", input)

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupApplicationHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/applications", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("not json")))

		handler.SubmitHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestApplicationHandler_TransitionHandlers(t *testing.T) {
	t.Run("Success_Review", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		app := submittedApplication()
		require.NoError(t, app.Review())

		mockUseCase.On("Review", mock.Anything, app.ID).
			Return(app, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/applications/"+app.ID.String()+"/review", nil)
		c.Params = gin.Params{{Key: "id", Value: app.ID.String()}}

		handler.ReviewHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ApplicationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "reviewed", response.Status)
		assert.NotNil(t, response.ReviewedAt)
	})

	t.Run("Error_InvalidTransition", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		id := uuid.Must(uuid.NewV7())
		app := submittedApplication()
		transitionErr := app.Accept()
		require.Error(t, transitionErr)

		mockUseCase.On("Accept", mock.Anything, id).
			Return(nil, transitionErr).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/applications/"+id.String()+"/accept", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.AcceptHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		id := uuid.Must(uuid.NewV7())
		mockUseCase.On("Withdraw", mock.Anything, id).
			Return(nil, domain.ErrApplicationNotFound).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/applications/"+id.String()+"/withdraw", nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.WithdrawHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidUUID", func(t *testing.T) {
		handler, _ := setupApplicationHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/applications/nope/shortlist", nil)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}

		handler.ShortlistHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestApplicationHandler_RejectHandler(t *testing.T) {
	t.Run("Success_Reject", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		app := submittedApplication()
		require.NoError(t, app.Review())
		require.NoError(t, app.Reject("position filled"))

		mockUseCase.On("Reject", mock.Anything, app.ID, "position filled").
			Return(app, nil).
			Once()

		c, w := createTestContext(
			http.MethodPost,
			"/v1/applications/"+app.ID.String()+"/reject",
			dto.RejectApplicationRequest{Reason: "position filled"},
		)
		c.Params = gin.Params{{Key: "id", Value: app.ID.String()}}

		handler.RejectHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ApplicationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "rejected", response.Status)
		assert.Equal(t, "position filled", response.RejectionReason)
	})

	t.Run("Error_MissingReason", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		id := uuid.Must(uuid.NewV7())
		c, w := createTestContext(
			http.MethodPost,
			"/v1/applications/"+id.String()+"/reject",
			dto.RejectApplicationRequest{},
		)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		handler.RejectHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestApplicationHandler_ListByJobHandler(t *testing.T) {
	t.Run("Success_List", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		jobID := uuid.Must(uuid.NewV7())
		apps := []*domain.JobApplication{submittedApplication()}

		mockUseCase.On("ListByJob", mock.Anything, jobID, 50, 0).
			Return(apps, 3, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/job-postings/"+jobID.String()+"/applications", nil)
		c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

		handler.ListByJobHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListApplicationsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
		assert.Equal(t, 3, response.Total)
	})
}

func TestApplicationHandler_HasAppliedHandler(t *testing.T) {
	t.Run("Success_HasApplied", func(t *testing.T) {
		handler, mockUseCase := setupApplicationHandler(t)

		jobID := uuid.Must(uuid.NewV7())
		maidID := uuid.Must(uuid.NewV7())

		mockUseCase.On("HasApplied", mock.Anything, jobID, maidID).
			Return(true, nil).
			Once()

		c, w := createTestContext(
			http.MethodGet,
			"/v1/job-postings/"+jobID.String()+"/applications/check?maid_id="+maidID.String(),
			nil,
		)
		c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

		handler.HasAppliedHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.HasAppliedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.HasApplied)
	})

	t.Run("Error_MissingMaidID", func(t *testing.T) {
		handler, _ := setupApplicationHandler(t)

		jobID := uuid.Must(uuid.NewV7())
		c, w := createTestContext(
			http.MethodGet,
			"/v1/job-postings/"+jobID.String()+"/applications/check",
			nil,
		)
		c.Params = gin.Params{{Key: "id", Value: jobID.String()}}

		handler.HasAppliedHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
