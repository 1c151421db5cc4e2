package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	pkgerrors "user-crud-service/pkg/errors"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserRequest represents the HTTP request body for updating a user
type UpdateUserRequest struct {
	Email string `json:"email" binding:"required"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("create user request", zap.String("name", req.Name), zap.String("email", req.Email))

	u, err := h.uc.CreateAndPersistUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		h.log.Error("create user failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(u))
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = toUserResponse(&users[i])
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserByEmail handles GET /api/users/email/:email
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	email := c.Param("email")

	u, err := h.uc.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		h.log.Error("get user by email failed", zap.String("email", email), zap.Error(err))
		h.handleError(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "user not found",
		})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	u, err := h.uc.FindUserByID(c.Request.Context(), id)
	if err != nil {
		h.log.Error("update user lookup failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "user not found",
		})
		return
	}

	if err := h.uc.UpdateUser(c.Request.Context(), u, req.Email); err != nil {
		h.log.Error("update user failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

// DeleteUser handles DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteUser(c.Request.Context(), id); err != nil {
		h.log.Error("delete user failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}

	// Deleting an absent ID is a no-op; 204 either way.
	c.Status(http.StatusNoContent)
}

// parseID extracts and validates the :id path parameter, writing the
// error response itself on failure.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "user ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}

// handleError converts service errors to HTTP responses using the status
// carried by the error type.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var statuser pkgerrors.HTTPStatuser
	if errors.As(err, &statuser) {
		label := "internal_error"
		switch statuser.HTTPStatus() {
		case http.StatusBadRequest:
			label = "validation_error"
		case http.StatusNotFound:
			label = "not_found"
		}
		c.JSON(statuser.HTTPStatus(), ErrorResponse{
			Error:   label,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}
