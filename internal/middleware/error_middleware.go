package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emirkay/schoolregistry/internal/app/models/dto"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
	"github.com/emirkay/schoolregistry/internal/pkg/logger"
)

// HandleAPIError translates a service error into the HTTP response the
// client sees. The mapping is fixed: validation 400, not found 404,
// restricted delete and duplicates 409, denied 403, bad credentials 401.
// Anything outside the domain taxonomy is a 500 with no internals leaked.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("VALIDATION_FAILED", err.Error()))

	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("NOT_FOUND", err.Error()))

	case errors.Is(err, apperrors.ErrRestricted):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("DELETE_RESTRICTED", err.Error()))

	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("DUPLICATE", err.Error()))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("FORBIDDEN", "permission denied"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("INVALID_CREDENTIALS", "invalid email or password"))

	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", err.Error()))

	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("INTERNAL_ERROR", "internal server error"))
	}
}
