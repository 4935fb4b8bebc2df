package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mrlokans/quotekeeper/internal/entities"
	"github.com/mrlokans/quotekeeper/internal/quotes"
)

// QuoteService owns the live quote store and the selected category filter.
// Every read and mutation is serialized, and every mutation is persisted in
// full before it becomes visible.
type QuoteService struct {
	store  KeyValueStore
	picker quotes.Picker
	now    func() time.Time
	logger *log.Logger

	mu     sync.Mutex
	quotes []entities.Quote
	filter string
	lastID int64
}

type QuoteServiceOption func(*QuoteService)

// WithPicker replaces the uniform random selector.
func WithPicker(p quotes.Picker) QuoteServiceOption {
	return func(s *QuoteService) { s.picker = p }
}

// WithClock replaces the time source used to generate ids.
func WithClock(now func() time.Time) QuoteServiceOption {
	return func(s *QuoteService) { s.now = now }
}

func WithLogger(l *log.Logger) QuoteServiceOption {
	return func(s *QuoteService) { s.logger = l }
}

func NewQuoteService(store KeyValueStore, opts ...QuoteServiceOption) *QuoteService {
	s := &QuoteService{
		store:  store,
		picker: quotes.NewRandomPicker(),
		now:    time.Now,
		logger: log.Default(),
		quotes: entities.DefaultQuotes(),
		filter: quotes.AllCategories,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the store and filter from persistence. A missing snapshot
// seeds the default quotes; an unreadable one is logged and also seeded, but
// left in place until the next mutation.
func (s *QuoteService) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Load(entities.SettingKeyQuotes)
	if err != nil {
		return fmt.Errorf("failed to load quotes: %w", err)
	}

	s.quotes = entities.DefaultQuotes()
	if ok {
		decoded, err := quotes.Decode([]byte(raw))
		if err != nil {
			s.logger.Warn("Stored quotes are unreadable, using defaults", "err", err)
		} else {
			s.quotes = decoded
		}
	}

	filter, ok, err := s.store.Load(entities.SettingKeySelectedCategoryFilter)
	if err != nil {
		return fmt.Errorf("failed to load category filter: %w", err)
	}
	s.filter = quotes.AllCategories
	if ok {
		s.filter = quotes.NormalizeCategory(filter)
	}

	s.logger.Debug("Quote store loaded", "quotes", len(s.quotes), "filter", s.filter)
	return nil
}

// Quotes returns a copy of the live store.
func (s *QuoteService) Quotes() []entities.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// Categories returns the selector options, "all" first.
func (s *QuoteService) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return quotes.CategoryOptions(s.quotes)
}

func (s *QuoteService) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter
}

// SetFilter stores the selected category. An empty selection means "all".
func (s *QuoteService) SetFilter(category string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category = quotes.NormalizeCategory(category)
	if err := s.store.Save(entities.SettingKeySelectedCategoryFilter, category); err != nil {
		return "", fmt.Errorf("failed to save category filter: %w", err)
	}
	s.filter = category
	return category, nil
}

// AddQuote appends a new quote with a time-based id.
func (s *QuoteService) AddQuote(text, category string) (entities.Quote, error) {
	text = strings.TrimSpace(text)
	category = strings.TrimSpace(category)
	if text == "" || category == "" {
		return entities.Quote{}, ErrInvalidQuote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := entities.Quote{ID: s.nextID(), Text: text, Category: category}
	updated := append(s.snapshot(), q)
	if err := s.persist(updated); err != nil {
		return entities.Quote{}, err
	}
	s.quotes = updated
	return q, nil
}

// RandomQuote picks a quote from category. An empty category uses the
// stored filter.
func (s *QuoteService) RandomQuote(category string) (entities.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(category) == "" {
		category = s.filter
	}
	candidates := quotes.Filter(s.quotes, quotes.NormalizeCategory(category))
	if len(candidates) == 0 {
		return entities.Quote{}, ErrNoQuotes
	}
	return quotes.Pick(s.picker, candidates)
}

// Import appends every record of a JSON array. Nothing changes when the
// document is rejected.
func (s *QuoteService) Import(data []byte, strict bool) (int, error) {
	decode := quotes.Decode
	if strict {
		decode = quotes.DecodeStrict
	}
	imported, err := decode(data)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append(s.snapshot(), imported...)
	if err := s.persist(updated); err != nil {
		return 0, err
	}
	s.quotes = updated
	s.logger.Info("Quotes imported", "count", len(imported), "strict", strict, "total", len(updated))
	return len(imported), nil
}

// Export returns the full store as an indented JSON array.
func (s *QuoteService) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return quotes.EncodePretty(s.quotes)
}

// Reconcile merges incoming into the live store and persists the result.
func (s *QuoteService) Reconcile(incoming []entities.Quote) (quotes.MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := quotes.Merge(s.quotes, incoming)
	if err := s.persist(result.Quotes); err != nil {
		return quotes.MergeResult{}, err
	}
	s.quotes = result.Quotes
	return result, nil
}

// nextID returns the current time in milliseconds, bumped when two quotes
// are added within the same millisecond.
func (s *QuoteService) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *QuoteService) snapshot() []entities.Quote {
	out := make([]entities.Quote, len(s.quotes), len(s.quotes)+1)
	copy(out, s.quotes)
	return out
}

func (s *QuoteService) persist(qs []entities.Quote) error {
	data, err := quotes.Encode(qs)
	if err != nil {
		return fmt.Errorf("failed to encode quotes: %w", err)
	}
	if err := s.store.Save(entities.SettingKeyQuotes, string(data)); err != nil {
		return fmt.Errorf("failed to save quotes: %w", err)
	}
	return nil
}
