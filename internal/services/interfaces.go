package services

import (
	"context"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// KeyValueStore persists raw string values by key.
// Load reports ok=false for a key that was never saved.
type KeyValueStore interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

// QuoteSource supplies the server-side quote set for a sync.
type QuoteSource interface {
	Fetch(ctx context.Context) ([]entities.Quote, error)
}

// Notifier shows a transient status message to the user.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// SyncStatusRecorder stores the outcome of the last sync.
type SyncStatusRecorder interface {
	SetQuoteSyncStatus(status, message string, conflicts int) error
}

// ActivityRecorder logs sync outcomes to the activity history.
type ActivityRecorder interface {
	LogSync(source string, fetched, conflicts, added int, err error)
}

// SyncResult contains the outcome of a sync operation.
type SyncResult struct {
	Fetched   int    `json:"fetched"`
	Conflicts int    `json:"conflicts"`
	Added     int    `json:"added"`
	Total     int    `json:"total"`
	Message   string `json:"message"`
}
