package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/logger"
)

func abortWithError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleAPIError handles common API errors and returns appropriate responses.
// The message of an apperrors.CustomError is the user-visible text; anything else becomes a 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		abortWithError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, apperrors.Message(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, apperrors.Message(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrConstraintViolation):
		abortWithError(c, http.StatusConflict, dto.ErrorCodeConstraintViolation, apperrors.Message(err, "Constraint violation"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", c.GetString(ContextRequestID)).
			Msg("Unhandled error")
		abortWithError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
