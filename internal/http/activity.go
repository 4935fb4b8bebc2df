package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

const maxActivityLimit = 200

// ActivityController lists the import, export and sync history.
type ActivityController struct {
	activity ActivityLog
}

func NewActivityController(activity ActivityLog) *ActivityController {
	return &ActivityController{activity: activity}
}

// ActivityResponse is a page of activity events.
type ActivityResponse struct {
	Events []entities.ActivityEvent `json:"events"`
	Total  int64                    `json:"total"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

// List handles GET /api/activity?type=&limit=&offset=
func (ac *ActivityController) List(c *gin.Context) {
	eventType := entities.ActivityType(c.Query("type"))
	switch eventType {
	case "", entities.ActivityImport, entities.ActivityExport, entities.ActivitySync:
	default:
		respondBadRequest(c, "type must be one of import, export, sync")
		return
	}

	limit, err := queryInt(c, "limit", 50)
	if err != nil || limit <= 0 {
		respondBadRequest(c, "limit must be a positive integer")
		return
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		respondBadRequest(c, "offset must be a non-negative integer")
		return
	}

	events, total, err := ac.activity.Events(eventType, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list activity")
		return
	}
	if events == nil {
		events = []entities.ActivityEvent{}
	}

	c.JSON(http.StatusOK, ActivityResponse{
		Events: events,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
