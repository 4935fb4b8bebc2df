// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, key-value adapter
//	├── settings/        # Settings table operations
//	└── activity/        # Import, export and sync history
//
// All persisted application state lives in the settings table as string
// values keyed by name. The quote store is saved as a full JSON snapshot
// under "quotes" and the selected filter under "selectedCategoryFilter":
//
//	db, err := database.NewDatabase("./quotes.db")
//	if err := db.Save("quotes", payload); err != nil { ... }
//	payload, ok, err := db.Load("quotes")
package database
