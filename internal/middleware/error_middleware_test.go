package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.NewValidationError("date", "must be YYYY-MM-DD"), http.StatusBadRequest},
		{"not found", apperrors.NewNotFound("student", 17), http.StatusNotFound},
		{"restricted delete", &apperrors.RestrictedError{BlockingEntity: "student", BlockingID: 3}, http.StatusConflict},
		{"duplicate email", &apperrors.DuplicateEmailError{Email: "a@b.c"}, http.StatusConflict},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"wrapped not found", fmt.Errorf("loading profile: %w", apperrors.NewNotFound("parent", 9)), http.StatusNotFound},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHandleAPIErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/test", nil)

	HandleAPIError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password authentication")
	assert.Contains(t, rec.Body.String(), "internal server error")
}
