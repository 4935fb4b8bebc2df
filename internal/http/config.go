package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Quotes   QuoteStore
	Database Pinger

	// Sync
	Sync         SyncRunner
	Scheduler    SyncScheduler // optional
	SyncSettings SyncSettingsStore
	TaskQueue    TaskQueue // optional, syncs run inline without it

	// Activity history (optional)
	Activity ActivityLog

	// Notifications shown on the page and in the API
	Notifier NotificationSource

	// Sessions (optional)
	Sessions      LastViewedStore
	SessionLoadMW SessionMiddleware
	SecureCookies bool
	CSRFSecret    []byte

	// Import behaviour
	ImportStrict   bool
	MaxImportBytes int64         // defaults to 1 MiB
	ImportArchive  UploadArchive // optional

	// Application info
	Version string
}
