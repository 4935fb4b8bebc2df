package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Log
		Database
		QuoteSync
		Notifications
		Import
		Session
		CSRF
		Tasks
		Activity
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Log struct {
		Level string // debug, info, warn, error
	}
	Database struct {
		Path string
	}
	QuoteSync struct {
		Enabled     bool
		Schedule    string        // Cron format or descriptor: "@every 30s"
		SourceURL   string        // Remote endpoint fetched on every sync
		Timeout     time.Duration // Per-request timeout for the remote fetch
		UseResponse bool          // Map the fetched posts instead of the stand-in set
		MaxRecords  int           // Upper bound on records taken from the response
	}
	Notifications struct {
		ClearAfter time.Duration // How long a status message stays visible (default: 4s)
	}
	Import struct {
		Strict     bool   // Validate every record and reject files with violations
		ArchiveDir string // Uploaded files are copied here when set
	}
	Session struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	CSRF struct {
		Secret string // Enables CSRF protection on HTML forms when set
	}
	Activity struct {
		Enabled   bool
		Retention time.Duration // Events older than this are removed at startup
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	// A missing .env file is fine, the environment still applies
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("log_level", "info")
	v.SetDefault("database_path", DefaultDatabasePath)

	// Quote sync defaults
	v.SetDefault("quote_sync_enabled", true)
	v.SetDefault("quote_sync_schedule", DefaultSyncSchedule)
	v.SetDefault("sync_source_url", DefaultSyncSourceURL)
	v.SetDefault("sync_timeout", "10s")
	v.SetDefault("sync_use_response", false)
	v.SetDefault("sync_max_records", 5)

	v.SetDefault("notify_clear_after", "4s")
	v.SetDefault("import_strict", false)
	v.SetDefault("import_archive_dir", "")

	// Session defaults
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secure_cookies", false)
	v.SetDefault("csrf_secret", "")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Activity history
	v.SetDefault("activity_enabled", true)
	v.SetDefault("activity_retention", "720h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		QuoteSync: QuoteSync{
			Enabled:     v.GetBool("QUOTE_SYNC_ENABLED"),
			Schedule:    v.GetString("QUOTE_SYNC_SCHEDULE"),
			SourceURL:   v.GetString("SYNC_SOURCE_URL"),
			Timeout:     v.GetDuration("SYNC_TIMEOUT"),
			UseResponse: v.GetBool("SYNC_USE_RESPONSE"),
			MaxRecords:  v.GetInt("SYNC_MAX_RECORDS"),
		},
		Notifications: Notifications{
			ClearAfter: v.GetDuration("NOTIFY_CLEAR_AFTER"),
		},
		Import: Import{
			Strict:     v.GetBool("IMPORT_STRICT"),
			ArchiveDir: v.GetString("IMPORT_ARCHIVE_DIR"),
		},
		Session: Session{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
		},
		CSRF: CSRF{
			Secret: v.GetString("CSRF_SECRET"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Activity: Activity{
			Enabled:   v.GetBool("ACTIVITY_ENABLED"),
			Retention: v.GetDuration("ACTIVITY_RETENTION"),
		},
	}
}
