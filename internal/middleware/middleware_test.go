package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", apperrors.NewResourceNotFoundError("Book not found"), http.StatusNotFound, `"message":"Book not found"`},
		{"validation", apperrors.NewValidationError("course_id mismatch with path parameter"), http.StatusBadRequest, `"code":"VAL_001"`},
		{"constraint", apperrors.NewConstraintViolationError("Email already registered"), http.StatusConflict, `"code":"RES_004"`},
		{"wrapped constraint", fmt.Errorf("delete user: %w", apperrors.NewConstraintViolationError("Unable to delete user due to constraints")), http.StatusConflict, `"message":"Unable to delete user due to constraints"`},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, `"message":"Invalid credentials"`},
		{"unknown", errors.New("pq: relation does not exist"), http.StatusInternalServerError, `"message":"Internal server error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotContains(t, w.Body.String(), "relation does not exist")
		})
	}
}

func TestRequestLogger_EchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SRV_001")
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, raw := range []string{"abc", "0", "-3"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "grade_id", Value: raw}}

		_, ok := ParseIDParam(c, "grade_id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "grade_id", Value: "12"}}
	id, ok := ParseIDParam(c, "grade_id")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)
}
