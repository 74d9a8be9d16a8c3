package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userKey      = "user"
	requestIDKey = "request_id"
)

// requestLogger tags every request with an id (reusing a client-supplied
// X-Request-ID) and writes one access log line when it completes.
func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error(c.Request.Context(), "request", args...)
			return
		}
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}

func (s *HTTPServer) recoverPanic(c *gin.Context, p any) {
	s.logger.Error(c.Request.Context(), "panic in handler", "request_id", c.GetString(requestIDKey), "panic", p)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
}

// requireAuth resolves the bearer token to a user and stores it in the
// gin context.
func (s *HTTPServer) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader(common.AuthorizationHeaderName)
		if len(h) <= len(common.BearerPrefix) || !strings.EqualFold(h[:len(common.BearerPrefix)], common.BearerPrefix) {
			unauthorized(c, "Not authenticated")
			return
		}
		token := strings.TrimSpace(h[len(common.BearerPrefix):])

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case isAuthError(err):
				unauthorized(c, "Invalid authentication credentials")
			case errors.Is(err, common.ErrorNotFound):
				unauthorized(c, "User not found")
			default:
				s.internalError(c, err)
			}
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}
