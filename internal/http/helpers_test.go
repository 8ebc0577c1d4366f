package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-manager/internal/services"
)

func serviceErrorStatus(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		respondServiceError(c, err, "thing")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRespondServiceError(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		w := serviceErrorStatus(t, services.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "thing not found")
	})

	t.Run("id mismatch maps to 400", func(t *testing.T) {
		w := serviceErrorStatus(t, services.ErrIDMismatch)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation maps to 400 with details", func(t *testing.T) {
		w := serviceErrorStatus(t, services.ValidationErrors{"Title": "title is required"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "details")
		assert.Contains(t, w.Body.String(), "Title")
	})

	t.Run("anything else maps to 500 without leaking the cause", func(t *testing.T) {
		w := serviceErrorStatus(t, errors.New("disk exploded"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk exploded")
	})
}

func TestParseFormDate(t *testing.T) {
	t.Run("empty input is nil without error", func(t *testing.T) {
		parsed, err := parseFormDate("")
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("plain date", func(t *testing.T) {
		parsed, err := parseFormDate("2025-03-01")
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *parsed)
	})

	t.Run("datetime-local input", func(t *testing.T) {
		parsed, err := parseFormDate("2025-03-01T15:04")
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, 15, parsed.Hour())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := parseFormDate("yesterday")
		assert.Error(t, err)
	})
}
