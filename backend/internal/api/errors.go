package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	apperrors "post-spot/backend/pkg/errors"
)

// Messages shown to users. The codes mirror the failure reasons clients match on.
const (
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Not signed in"
	msgOperationFailed    = "Operation failed"
	msgMalformedRequest   = "Malformed request body"
)

// bindJSON decodes the request body into v. Field presence is checked by the
// services, so only undecodable bodies fail here.
func (s *Server) bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.log.Debug("Request body rejected", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMalformedRequest})
		return false
	}
	return true
}

// respondError maps service errors to a status and a user-facing message.
// Anything unrecognised is a generic 500; the cause is logged, never returned.
func (s *Server) respondError(c *gin.Context, op string, err error) {
	var base *apperrors.BaseError

	switch {
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": msgEmailExists, "code": apperrors.ErrDuplicateEmail.Message})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials, "code": apperrors.ErrInvalidCredentials.Message})
	case apperrors.IsErrorType(err, apperrors.ErrorTypeValidation) && errors.As(err, &base):
		c.JSON(http.StatusBadRequest, gin.H{"error": base.Message})
	default:
		s.log.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgOperationFailed})
	}
}
