package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
)

// MockUserUsecase is a mock implementation of user.Usecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) CreateAndPersistUser(ctx context.Context, name, email string) (*domain.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, u *domain.User, newEmail string) error {
	args := m.Called(ctx, u, newEmail)
	return args.Error(0)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserUsecase) SerializeUser(u *domain.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

func (m *MockUserUsecase) DeserializeUser(data string) (*domain.User, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *UserHandler, *MockUserUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUserUsecase)
	logger := zaptest.NewLogger(t)
	h := NewUserHandler(mockUsecase, logger)

	r := gin.New()
	return r, h, mockUsecase
}

func TestCreateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.POST("/api/users", h.CreateUser)

		created := &domain.User{ID: 1700000000000, Name: "Jane Doe", Email: "jane@example.com"}
		mockUsecase.On("CreateAndPersistUser", mock.Anything, "Jane Doe", "jane@example.com").Return(created, nil)

		body, _ := json.Marshal(CreateUserRequest{Name: "Jane Doe", Email: "jane@example.com"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, created.Name, resp.Name)
		assert.Equal(t, created.Email, resp.Email)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, h, _ := setupTest(t)
		r.POST("/api/users", h.CreateUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/users", bytes.NewBufferString("invalid json"))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		r, h, _ := setupTest(t)
		r.POST("/api/users", h.CreateUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/users", bytes.NewBufferString(`{"name": "Jane Doe"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Validation Error From Service", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.POST("/api/users", h.CreateUser)

		// Whitespace-only fields pass the binding but fail the blank check.
		verr := pkgerrors.NewValidationError("", "name and email cannot be blank")
		mockUsecase.On("CreateAndPersistUser", mock.Anything, "   ", "jane@example.com").Return(nil, verr)

		body, _ := json.Marshal(CreateUserRequest{Name: "   ", Email: "jane@example.com"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Persistence Error", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.POST("/api/users", h.CreateUser)

		perr := pkgerrors.NewPersistenceError("create user", errors.New("duplicate key"))
		mockUsecase.On("CreateAndPersistUser", mock.Anything, "Jane Doe", "jane@example.com").Return(nil, perr)

		body, _ := json.Marshal(CreateUserRequest{Name: "Jane Doe", Email: "jane@example.com"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/users", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.GET("/api/users", h.ListUsers)

		users := []domain.User{
			{ID: 1, Name: "Jane", Email: "jane@example.com"},
			{ID: 2, Name: "John", Email: "john@example.com"},
		}
		mockUsecase.On("ListUsers", mock.Anything).Return(users, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp []UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, int64(1), resp[0].ID)
		assert.Equal(t, int64(2), resp[1].ID)
	})

	t.Run("Empty Store Yields Empty Array", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.GET("/api/users", h.ListUsers)

		mockUsecase.On("ListUsers", mock.Anything).Return([]domain.User{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Persistence Error", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.GET("/api/users", h.ListUsers)

		perr := pkgerrors.NewPersistenceError("list users", errors.New("connection refused"))
		mockUsecase.On("ListUsers", mock.Anything).Return(nil, perr)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.GET("/api/users/email/:email", h.GetUserByEmail)

		u := &domain.User{ID: 1, Name: "Jane", Email: "jane@example.com"}
		mockUsecase.On("FindUserByEmail", mock.Anything, "jane@example.com").Return(u, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users/email/jane@example.com", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, u.Email, resp.Email)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.GET("/api/users/email/:email", h.GetUserByEmail)

		mockUsecase.On("FindUserByEmail", mock.Anything, "missing@example.com").Return(nil, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users/email/missing@example.com", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.PUT("/api/users/:id", h.UpdateUser)

		u := &domain.User{ID: 1, Name: "Jane", Email: "jane@example.com"}
		mockUsecase.On("FindUserByID", mock.Anything, int64(1)).Return(u, nil)
		mockUsecase.On("UpdateUser", mock.Anything, u, "jane.doe@example.com").
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).Email = args.String(2)
			}).Return(nil)

		body, _ := json.Marshal(UpdateUserRequest{Email: "jane.doe@example.com"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/users/1", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "jane.doe@example.com", resp.Email)
		mockUsecase.AssertExpectations(t)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r, h, _ := setupTest(t)
		r.PUT("/api/users/:id", h.UpdateUser)

		body, _ := json.Marshal(UpdateUserRequest{Email: "jane.doe@example.com"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/users/abc", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.PUT("/api/users/:id", h.UpdateUser)

		mockUsecase.On("FindUserByID", mock.Anything, int64(42)).Return(nil, nil)

		body, _ := json.Marshal(UpdateUserRequest{Email: "jane.doe@example.com"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/users/42", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid Email", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.PUT("/api/users/:id", h.UpdateUser)

		u := &domain.User{ID: 1, Name: "Jane", Email: "jane@example.com"}
		mockUsecase.On("FindUserByID", mock.Anything, int64(1)).Return(u, nil)
		mockUsecase.On("UpdateUser", mock.Anything, u, "invalid-email").
			Return(pkgerrors.NewValidationError("email", "invalid email format"))

		body, _ := json.Marshal(UpdateUserRequest{Email: "invalid-email"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/api/users/1", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.DELETE("/api/users/:id", h.DeleteUser)

		mockUsecase.On("DeleteUser", mock.Anything, int64(1)).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/api/users/1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Absent ID Still 204", func(t *testing.T) {
		r, h, mockUsecase := setupTest(t)
		r.DELETE("/api/users/:id", h.DeleteUser)

		// The delete of a missing row is a silent no-op.
		mockUsecase.On("DeleteUser", mock.Anything, int64(9999)).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/api/users/9999", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r, h, _ := setupTest(t)
		r.DELETE("/api/users/:id", h.DeleteUser)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/api/users/abc", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
