// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Persistence
//
//   - KeyValueStore: raw string values by key, backing the quote store and the
//     category filter (internal/services/interfaces.go)
//   - SyncSettingsStore: sync settings with database > environment > default
//     resolution (internal/http/stores.go)
//
// ## Sync
//
//   - QuoteSource: the server quote set (internal/services/interfaces.go)
//   - SyncRunner / Syncer: a single sync run, shared by the HTTP handler, the
//     scheduler and the task queue
//   - SyncScheduler: periodic trigger state (internal/http/stores.go)
//   - TaskQueue: on-demand syncs through backlite (internal/http/stores.go)
//
// ## Presentation
//
//   - Notifier / NotificationSource: the transient status message
//   - LastViewedStore: the quote last shown to a browser session
//
// # Adding a New Quote Source
//
//  1. Implement QuoteSource in a new package:
//
//     type FileSource struct{ path string }
//
//     func (s *FileSource) Fetch(ctx context.Context) ([]entities.Quote, error)
//
//  2. Add a compile-time check to checks.go:
//
//     var _ services.QuoteSource = (*FileSource)(nil)
//
//  3. Pass it to services.NewSyncService in entrypoint.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
