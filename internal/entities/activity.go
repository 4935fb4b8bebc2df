package entities

import "time"

type ActivityType string

const (
	ActivityImport ActivityType = "import"
	ActivityExport ActivityType = "export"
	ActivitySync   ActivityType = "sync"
)

type ActivityStatus string

const (
	ActivityStatusSuccess ActivityStatus = "success"
	ActivityStatusFailed  ActivityStatus = "failed"
)

// ActivityEvent records an import, export or sync of the quote store.
type ActivityEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Type        ActivityType   `gorm:"index;size:20" json:"type"`
	Source      string         `gorm:"size:50" json:"source"`       // "api", "ui", "cli", "scheduler", "task"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"`
	Status      ActivityStatus `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}
