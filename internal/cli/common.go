// Package cli implements the quotekeeper subcommands that work directly on
// the local database without starting the HTTP server.
package cli

import (
	"fmt"
	"io"

	"github.com/mrlokans/quotekeeper/internal/database"
	"github.com/mrlokans/quotekeeper/internal/services"
)

// openQuotes opens the database and loads the quote store from it.
// The caller closes the returned database.
func openQuotes(dbPath string) (*database.Database, *services.QuoteService, error) {
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		return nil, nil, err
	}

	svc := services.NewQuoteService(db)
	if err := svc.Load(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, svc, nil
}

// formatQuote renders a quote the way the page displays it.
func formatQuote(text, category string) string {
	return fmt.Sprintf("\"%s\" — %s", text, category)
}

// consoleNotifier prints sync notifications instead of showing them on a page.
type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Info(message string) {
	fmt.Fprintln(n.out, message)
}

func (n consoleNotifier) Error(message string) {
	fmt.Fprintf(n.out, "Error: %s\n", message)
}
