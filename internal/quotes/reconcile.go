package quotes

import "github.com/mrlokans/quotekeeper/internal/entities"

// MergeResult is the outcome of reconciling an incoming set into a local store.
type MergeResult struct {
	Quotes    []entities.Quote
	Conflicts int // incoming records that overwrote a local record
	Added     int // incoming records appended to the store
}

// Merge reconciles incoming into local and returns the updated store.
//
// Incoming records are applied in order. A record whose ID matches an
// existing record (including one appended earlier in the same merge) replaces
// it in place; the server always wins. Records without an ID never match.
// Neither input slice is modified.
func Merge(local, incoming []entities.Quote) MergeResult {
	merged := make([]entities.Quote, len(local), len(local)+len(incoming))
	copy(merged, local)

	// First occurrence wins for locally duplicated ids, mirroring a linear search.
	positions := make(map[int64]int, len(merged))
	for i, q := range merged {
		if !q.HasID() {
			continue
		}
		if _, exists := positions[q.ID]; !exists {
			positions[q.ID] = i
		}
	}

	result := MergeResult{}
	for _, q := range incoming {
		if q.HasID() {
			if i, exists := positions[q.ID]; exists {
				merged[i] = q
				result.Conflicts++
				continue
			}
			positions[q.ID] = len(merged)
		}
		merged = append(merged, q)
		result.Added++
	}

	result.Quotes = merged
	return result
}
