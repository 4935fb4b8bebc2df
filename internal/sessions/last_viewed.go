package sessions

import (
	"context"
	"encoding/json"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// PutLastViewed stores the quote most recently shown to this browser.
// The quote is kept as its JSON encoding.
func (m *Manager) PutLastViewed(ctx context.Context, q entities.Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	m.Put(ctx, entities.SessionKeyLastViewedQuote, string(data))
	return nil
}

// LastViewed returns the quote stored by PutLastViewed, if any.
func (m *Manager) LastViewed(ctx context.Context) (entities.Quote, bool) {
	raw := m.GetString(ctx, entities.SessionKeyLastViewedQuote)
	if raw == "" {
		return entities.Quote{}, false
	}
	var q entities.Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return entities.Quote{}, false
	}
	return q, true
}
