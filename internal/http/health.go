package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Quotes  *QuoteStats       `json:"quotes,omitempty"`
}

// QuoteStats summarizes the live quote store.
type QuoteStats struct {
	Count      int    `json:"count"`
	Categories int    `json:"categories"`
	Filter     string `json:"filter"`
}

type HealthController struct {
	db      Pinger
	quotes  QuoteStore // optional
	version string
}

func NewHealthController(db Pinger, quotes QuoteStore, version string) *HealthController {
	return &HealthController{
		db:      db,
		quotes:  quotes,
		version: version,
	}
}

// Status handles GET /health
// The database check decides the status code; the quote summary is
// informational.
func (h *HealthController) Status(c *gin.Context) {
	dbCheck, dbHealthy := h.checkDatabase()
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"database": dbCheck},
	}
	if !dbHealthy {
		health.Status = "unhealthy"
	}

	if h.quotes != nil {
		// Categories includes the "all" sentinel
		health.Quotes = &QuoteStats{
			Count:      len(h.quotes.Quotes()),
			Categories: len(h.quotes.Categories()) - 1,
			Filter:     h.quotes.Filter(),
		}
		health.Checks["quotes"] = "ok"
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) checkDatabase() (string, bool) {
	if h.db == nil {
		return "not configured", true
	}
	if err := h.db.Ping(); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}
