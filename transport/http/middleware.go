package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/penpot-ir/panel/adapters/session"
	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/service"
	"go.uber.org/zap"
)

const (
	LoginPath = "/login"
	AdminHome = "/admin"
	UserHome  = "/user"

	identityKey     = "identity"
	requestIDHeader = "X-Request-ID"
)

// HomePath returns the landing page for role
func HomePath(role core.Role) string {
	if role == core.RoleAdmin {
		return AdminHome
	}
	return UserHome
}

// RequireRole creates middleware admitting only sessions that hold exactly role.
// Anonymous callers go to the login page; callers with another role go to their own home.
func RequireRole(sessions *service.SessionManager, role core.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := sessions.RequireRole(session.NewCookieSlot(c), role)
		if err != nil {
			target := LoginPath
			if errors.Is(err, core.ErrForbidden) {
				target = HomePath(identity.Role)
			}
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)

		c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireRole
func CurrentIdentity(c *gin.Context) (core.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return core.Identity{}, false
	}
	identity, ok := value.(core.Identity)
	return identity, ok
}

// RequestLogger creates middleware that logs every request with a request id
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request", fields...)
		} else {
			logger.Info("request", fields...)
		}
	}
}
