package config

// Default paths and endpoints
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./quotekeeper.db"

	// DefaultSyncSourceURL is the remote endpoint polled by the quote sync
	DefaultSyncSourceURL = "https://jsonplaceholder.typicode.com/posts"

	// DefaultSyncSchedule runs a sync every 30 seconds
	DefaultSyncSchedule = "@every 30s"
)
