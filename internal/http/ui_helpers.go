package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/services"
)

// Form date layouts accepted from the HTML date/datetime inputs.
var formDateLayouts = []string{"2006-01-02T15:04", "2006-01-02"}

// csrfToken returns the anti-forgery token stored in the context by the CSRF
// middleware, empty when the middleware is not installed (tests).
func csrfToken(c *gin.Context) string {
	return c.GetString("csrf_token")
}

// parseUIID reads the :id path parameter for HTML routes, answering a plain
// 400 page on garbage.
func parseUIID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// renderUIError maps service errors to plain HTML error responses.
func renderUIError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.String(http.StatusNotFound, "%s not found", resource)
	case errors.Is(err, services.ErrIDMismatch):
		c.String(http.StatusBadRequest, "Submitted id does not match the requested %s", resource)
	default:
		c.String(http.StatusInternalServerError, "Error handling %s: %s", resource, err.Error())
	}
}

// parseFormDate parses an optional date field from a form. Empty input
// returns nil.
func parseFormDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	var lastErr error
	for _, layout := range formDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
