package services

import (
	"errors"

	"github.com/mrlokans/quotekeeper/internal/quotes"
)

var (
	// ErrInvalidQuote indicates a quote with blank text or category
	ErrInvalidQuote = errors.New("quote text and category must not be empty")

	// ErrNoQuotes indicates the selected category has no quotes
	ErrNoQuotes = errors.New(quotes.NoQuotesMessage)

	// ErrSyncInProgress is returned when a sync is requested while another is running
	ErrSyncInProgress = errors.New("a sync is already in progress")

	// ErrSyncFailed wraps any failure to obtain the server quote set
	ErrSyncFailed = errors.New("sync failed")
)
