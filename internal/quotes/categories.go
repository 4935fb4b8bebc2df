package quotes

import (
	"strings"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// AllCategories is the filter sentinel matching every quote.
const AllCategories = "all"

// NoQuotesMessage is shown when a filter selects nothing.
const NoQuotesMessage = "No quotes available in this category."

// Categories returns the distinct categories in first-appearance order.
func Categories(qs []entities.Quote) []string {
	seen := make(map[string]struct{}, len(qs))
	categories := make([]string, 0, len(qs))
	for _, q := range qs {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		categories = append(categories, q.Category)
	}
	return categories
}

// CategoryOptions returns the selector options: the "all" sentinel followed
// by every distinct category.
func CategoryOptions(qs []entities.Quote) []string {
	return append([]string{AllCategories}, Categories(qs)...)
}

// NormalizeCategory maps an empty selection to the "all" sentinel.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return AllCategories
	}
	return category
}

// Filter returns the quotes in category, compared case-insensitively.
// The "all" sentinel returns every quote.
func Filter(qs []entities.Quote, category string) []entities.Quote {
	if category == AllCategories {
		out := make([]entities.Quote, len(qs))
		copy(out, qs)
		return out
	}

	var out []entities.Quote
	for _, q := range qs {
		if strings.EqualFold(q.Category, category) {
			out = append(out, q)
		}
	}
	return out
}
