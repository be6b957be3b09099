package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/penpot-ir/panel/adapters/session"
	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/ports"
	"github.com/penpot-ir/panel/service"
	"go.uber.org/zap"
)

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public projection of an identity
type UserResponse struct {
	ID    int64     `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  core.Role `json:"role"`
}

// AuthHandlers contains HTTP handlers for the login surface
type AuthHandlers struct {
	authService *service.AuthService
	sessions    *service.SessionManager
	events      ports.EventPublisher
	logger      *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, sessions *service.SessionManager, events ports.EventPublisher, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		sessions:    sessions,
		events:      events,
		logger:      logger,
	}
}

// Login verifies credentials and establishes a session
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	identity, err := h.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		case errors.Is(err, core.ErrAuthenticationFailed):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := h.sessions.Establish(session.NewCookieSlot(c), identity); err != nil {
		h.logger.Error("failed to establish session", zap.Int64("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// best effort
	if err := h.events.PublishLogin(c.Request.Context(), identity); err != nil {
		h.logger.Warn("failed to publish login event", zap.Error(err))
	}

	h.logger.Info("user logged in", zap.Int64("user_id", identity.ID), zap.String("role", string(identity.Role)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    newUserResponse(identity),
	})
}

// Logout clears the session and sends the client back to the login page
func (h *AuthHandlers) Logout(c *gin.Context) {
	slot := session.NewCookieSlot(c)

	identity, hadSession := h.sessions.Current(slot)
	h.sessions.Destroy(slot)

	if hadSession {
		if err := h.events.PublishLogout(c.Request.Context(), identity); err != nil {
			h.logger.Warn("failed to publish logout event", zap.Error(err))
		}
	}

	c.Redirect(http.StatusSeeOther, LoginPath)
}

// LoginPage describes the login form, or forwards callers who are already signed in
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	if identity, ok := h.sessions.Current(session.NewCookieSlot(c)); ok {
		c.Redirect(http.StatusFound, HomePath(identity.Role))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":   "login",
		"action": "/api/login",
		"fields": []string{"email", "password"},
	})
}

// Root sends callers to their home page or to the login page
func (h *AuthHandlers) Root(c *gin.Context) {
	if identity, ok := h.sessions.Current(session.NewCookieSlot(c)); ok {
		c.Redirect(http.StatusFound, HomePath(identity.Role))
		return
	}
	c.Redirect(http.StatusFound, LoginPath)
}

func newUserResponse(identity core.Identity) UserResponse {
	return UserResponse{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
	}
}
