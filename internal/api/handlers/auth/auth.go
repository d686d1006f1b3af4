// Package auth exposes the registration, login and profile endpoints.
package auth

import (
	"net/http"
	"time"

	"fordinner/internal/api/middleware"
	userService "fordinner/internal/core/user"
	"fordinner/internal/models"
	"fordinner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the user shape returned by the API.
type UserResponse struct {
	UserID    string     `json:"userId"`
	Email     string     `json:"email"`
	Username  *string    `json:"username"`
	FirstName *string    `json:"firstName"`
	LastName  *string    `json:"lastName"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Handler serves the auth endpoints.
type Handler struct {
	users          *userService.Service
	includeDetails bool
}

// NewHandler creates the auth handler. includeDetails controls whether
// raw error detail leaks into responses (never in production).
func NewHandler(users *userService.Service, includeDetails bool) *Handler {
	return &Handler{
		users:          users,
		includeDetails: includeDetails,
	}
}

// HandleRegister creates a new user and answers 201 with a session
// token.
func (h *Handler) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid register payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.users.Register(c.Request.Context(), userService.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   result.Token,
		"user":    toUserResponse(result.User),
	})
}

// HandleLogin verifies credentials and answers with a session token.
func (h *Handler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    toUserResponse(result.User),
	})
}

// HandleProfile returns the authenticated user's profile.
func (h *Handler) HandleProfile(c *gin.Context) {
	user, err := h.users.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": toUserResponse(user),
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status, resp := common.MapError(err, h.includeDetails)
	c.JSON(status, resp)
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
