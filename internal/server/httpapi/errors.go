package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/gin-gonic/gin"
)

func isAuthError(err error) bool {
	return errors.Is(err, common.ErrInvalidToken) ||
		errors.Is(err, common.ErrTokenExpired) ||
		errors.Is(err, common.ErrorUnauthorized)
}

// validationDetail returns the human part of a common.ErrValidation error.
func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
}

func badRequest(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": detail})
}

func notFound(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": detail})
}

func (s *HTTPServer) internalError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "request failed",
		"request_id", c.GetString(requestIDKey), "path", c.Request.URL.Path, "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
}
