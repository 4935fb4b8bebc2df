package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/quotekeeper/internal/audit"
	"github.com/mrlokans/quotekeeper/internal/database"
	"github.com/mrlokans/quotekeeper/internal/http"
	"github.com/mrlokans/quotekeeper/internal/notify"
	"github.com/mrlokans/quotekeeper/internal/remote"
	"github.com/mrlokans/quotekeeper/internal/scheduler"
	"github.com/mrlokans/quotekeeper/internal/services"
	"github.com/mrlokans/quotekeeper/internal/sessions"
	"github.com/mrlokans/quotekeeper/internal/settingsstore"
	"github.com/mrlokans/quotekeeper/internal/tasks"
)

// =============================================================================
// Persistence
// =============================================================================

var _ services.KeyValueStore = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)

var _ services.SyncStatusRecorder = (*settingsstore.SettingsStore)(nil)
var _ scheduler.SyncConfigProvider = (*settingsstore.SettingsStore)(nil)
var _ http.SyncSettingsStore = (*settingsstore.SettingsStore)(nil)

// =============================================================================
// Quote store and sync
// =============================================================================

var _ http.QuoteStore = (*services.QuoteService)(nil)

var _ http.SyncRunner = (*services.SyncService)(nil)
var _ scheduler.Syncer = (*services.SyncService)(nil)
var _ tasks.Syncer = (*services.SyncService)(nil)

var _ services.QuoteSource = (*remote.Client)(nil)

var _ http.SyncScheduler = (*scheduler.QuoteSyncScheduler)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// =============================================================================
// Notifications and sessions
// =============================================================================

var _ services.Notifier = (*notify.Notifier)(nil)
var _ http.NotificationSource = (*notify.Notifier)(nil)

var _ http.LastViewedStore = (*sessions.Manager)(nil)
var _ http.SessionMiddleware = (*sessions.Manager)(nil)

// =============================================================================
// Activity
// =============================================================================

var _ http.ActivityLog = (*audit.Service)(nil)
var _ services.ActivityRecorder = (*audit.Service)(nil)
var _ http.UploadArchive = (*audit.Archive)(nil)
