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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/addislabs/placement/internal/user/domain"
	"github.com/addislabs/placement/internal/user/http/dto"
	userUseCase "github.com/addislabs/placement/internal/user/usecase"
)

// mockUserUseCase is a mock implementation of UserUseCase for testing.
type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Register(
	ctx context.Context,
	input userUseCase.RegisterInput,
) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) VerifyEmail(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserUseCase) VerifyPhone(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserUseCase) ChangePassword(
	ctx context.Context,
	id, currentPassword, newPassword string,
) error {
	args := m.Called(ctx, id, currentPassword, newPassword)
	return args.Error(0)
}

func (m *mockUserUseCase) Suspend(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserUseCase) List(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*UserHandler, *mockUserUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mockUserUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewUserHandler(mockUseCase, logger)

	return handler, mockUseCase
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

func TestUserHandler_RegisterHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		input := userUseCase.RegisterInput{
			Email:       "maid@example.com",
			PhoneNumber: "+251911223344",
			Password:    "Str0ng!Password",
			Role:        "maid",
		}

		created := &domain.User{
			ID:     "uid-001",
			Email:  input.Email,
			Role:   domain.RoleMaid,
			Status: domain.StatusActive,
		}

		mockUseCase.On("Register", mock.Anything, input).
			Return(created, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users", input)

		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.UserResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "uid-001", response.ID)
		assert.Equal(t, "maid", response.Role)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/users", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))

		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_EmailTaken", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Register", mock.Anything, mock.Anything).
			Return(nil, domain.ErrUserAlreadyExists).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users", userUseCase.RegisterInput{
			Email:       "taken@example.com",
			PhoneNumber: "+251911223344",
			Password:    "Str0ng!Password",
			Role:        "maid",
		})

		handler.RegisterHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUserHandler_AuthenticateHandler(t *testing.T) {
	t.Run("Success_ValidCredentials", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		user := &domain.User{ID: "uid-001", Email: "maid@example.com"}

		mockUseCase.On("Authenticate", mock.Anything, "maid@example.com", "Str0ng!Password").
			Return(user, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/authenticate", dto.AuthenticateRequest{
			Email:    "maid@example.com",
			Password: "Str0ng!Password",
		})

		handler.AuthenticateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/users/authenticate", dto.AuthenticateRequest{
			Email: "maid@example.com",
		})

		handler.AuthenticateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Authenticate", mock.Anything, "maid@example.com", "wrong").
			Return(nil, domain.ErrInvalidCredentials).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/authenticate", dto.AuthenticateRequest{
			Email:    "maid@example.com",
			Password: "wrong",
		})

		handler.AuthenticateHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_GetHandler(t *testing.T) {
	t.Run("Success_GetUser", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		user := &domain.User{ID: "uid-001", Email: "maid@example.com"}

		mockUseCase.On("Get", mock.Anything, "uid-001").
			Return(user, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/users/uid-001", nil)
		c.Params = gin.Params{{Key: "id", Value: "uid-001"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_UserNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Get", mock.Anything, "missing").
			Return(nil, domain.ErrUserNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/users/missing", nil)
		c.Params = gin.Params{{Key: "id", Value: "missing"}}

		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_VerifyHandlers(t *testing.T) {
	t.Run("Success_VerifyEmail", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("VerifyEmail", mock.Anything, "uid-001").
			Return(nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/uid-001/verify-email", nil)
		c.Params = gin.Params{{Key: "id", Value: "uid-001"}}

		handler.VerifyEmailHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Success_VerifyPhone", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("VerifyPhone", mock.Anything, "uid-001").
			Return(nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/users/uid-001/verify-phone", nil)
		c.Params = gin.Params{{Key: "id", Value: "uid-001"}}

		handler.VerifyPhoneHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestUserHandler_SuspendHandler(t *testing.T) {
	t.Run("Success_SuspendUser", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Suspend", mock.Anything, "uid-001").
			Return(nil).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/users/uid-001", nil)
		c.Params = gin.Params{{Key: "id", Value: "uid-001"}}

		handler.SuspendHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestUserHandler_ListHandler(t *testing.T) {
	t.Run("Success_ListWithRoleFilter", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		expectedFilter := domain.Filter{Role: domain.RoleMaid, Limit: 50, Offset: 0}

		mockUseCase.On("List", mock.Anything, expectedFilter).
			Return([]*domain.User{{ID: "uid-001"}}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/users?role=maid", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListUsersResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
	})

	t.Run("Error_UnknownRole", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/users?role=recruiter", nil)

		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
