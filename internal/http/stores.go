package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/mrlokans/quotekeeper/internal/notify"
	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
)

// This file consolidates the interfaces used by HTTP controllers.
// Each controller depends only on the methods it calls.

// QuoteStore is the quote collection as seen by controllers.
type QuoteStore interface {
	Quotes() []entities.Quote
	Categories() []string
	Filter() string
	SetFilter(category string) (string, error)
	AddQuote(text, category string) (entities.Quote, error)
	RandomQuote(category string) (entities.Quote, error)
	Import(data []byte, strict bool) (int, error)
	Export() ([]byte, error)
}

// LastViewedStore keeps the quote last shown to a browser session.
type LastViewedStore interface {
	PutLastViewed(ctx context.Context, q entities.Quote) error
	LastViewed(ctx context.Context) (entities.Quote, bool)
}

// SyncRunner runs a sync inline.
type SyncRunner interface {
	Sync(ctx context.Context) (services.SyncResult, error)
	IsSyncing() bool
}

// SyncScheduler exposes the periodic sync state.
type SyncScheduler interface {
	Reschedule() error
	IsRunning() bool
	GetNextRunTime() *time.Time
}

// SyncSettingsStore reads and updates sync settings.
type SyncSettingsStore interface {
	GetQuoteSyncConfigInfo() settingsstore.QuoteSyncConfigInfo
	GetQuoteSyncStatus() settingsstore.QuoteSyncStatus
	SetQuoteSyncEnabled(enabled bool) error
	SetQuoteSyncSchedule(schedule string) error
}

// NotificationSource returns the visible notification.
type NotificationSource interface {
	Current() (notify.Notification, bool)
}

// TaskQueue enqueues background syncs.
type TaskQueue interface {
	EnqueueSync(trigger string) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// ActivityLog records transfers and lists the activity history.
type ActivityLog interface {
	LogImport(source string, imported, total int, strict bool, err error)
	LogExport(source string, count int, err error)
	Events(eventType entities.ActivityType, limit, offset int) ([]entities.ActivityEvent, int64, error)
}

// UploadArchive keeps a copy of uploaded quote files.
type UploadArchive interface {
	SaveUpload(data []byte) (string, error)
}

// Pinger reports database connectivity.
type Pinger interface {
	Ping() error
}

// SessionMiddleware loads and saves session state around a request.
type SessionMiddleware interface {
	LoadSave() gin.HandlerFunc
}
