package entities

// Quote is a single text/category pair. ID is optional: zero means the
// record carries no identifier and can never be matched during a sync.
type Quote struct {
	ID       int64  `json:"id,omitempty"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// HasID reports whether the quote carries an identifier usable for merging.
func (q Quote) HasID() bool {
	return q.ID != 0
}

// DefaultQuotes is the seed content used when no quotes have been persisted yet.
func DefaultQuotes() []Quote {
	return []Quote{
		{ID: 1, Text: "The only limit to our realization of tomorrow is our doubts of today.", Category: "Motivation"},
		{ID: 2, Text: "Life is what happens when you're busy making other plans.", Category: "Life"},
		{ID: 3, Text: "In the middle of every difficulty lies opportunity.", Category: "Inspiration"},
	}
}
