package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-manager/internal/entities"
)

func TestHealthController_Status(t *testing.T) {
	t.Run("healthy with a live database", func(t *testing.T) {
		svc, cleanup := setupServices(t)
		defer cleanup()

		book := &entities.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Available: true}
		require.NoError(t, svc.books.Create(book))
		member := &entities.Member{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "555-0100"}
		require.NoError(t, svc.members.Create(member))
		_, err := svc.borrowings.Create(book.BookID, member.MemberID, nil)
		require.NoError(t, err)

		controller := NewHealthController(svc.db, "test")

		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var health HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "ok", health.Checks["database"])
		assert.Equal(t, "test", health.Version)

		require.NotNil(t, health.Catalogue)
		assert.Equal(t, int64(1), health.Catalogue.Books)
		assert.Equal(t, int64(1), health.Catalogue.Members)
		assert.Equal(t, int64(1), health.Catalogue.OpenLoans)
	})

	t.Run("reports an unconfigured database", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		controller := NewHealthController(nil, "test")

		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "not configured")
	})
}
