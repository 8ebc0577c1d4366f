package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

// CatalogueStats summarizes the lending state for operators hitting /health.
type CatalogueStats struct {
	Books     int64 `json:"books"`
	Members   int64 `json:"members"`
	OpenLoans int64 `json:"open_loans"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Time      string            `json:"time"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks"`
	Catalogue *CatalogueStats   `json:"catalogue,omitempty"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status pings the store and, when reachable, counts books, members and open
// loans. A failing store answers 503.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"
	var catalogue *CatalogueStats

	if h.db != nil {
		if err := h.ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
			stats, err := h.countCatalogue()
			if err != nil {
				checks["catalogue"] = "error: " + err.Error()
				status = "unhealthy"
			} else {
				catalogue = stats
			}
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:    status,
		Time:      time.Now().Format(time.RFC3339),
		Version:   h.version,
		Checks:    checks,
		Catalogue: catalogue,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) ping() error {
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (h *HealthController) countCatalogue() (*CatalogueStats, error) {
	var stats CatalogueStats
	if err := h.db.DB.Model(&entities.Book{}).Count(&stats.Books).Error; err != nil {
		return nil, err
	}
	if err := h.db.DB.Model(&entities.Member{}).Count(&stats.Members).Error; err != nil {
		return nil, err
	}
	err := h.db.DB.Model(&entities.BorrowingRecord{}).
		Where("returned = ?", false).
		Count(&stats.OpenLoans).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
