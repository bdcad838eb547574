package usecase

import (
	"strings"

	"movie-catalog/internal/data/entity"
)

// Filter returns the items whose search fields contain query, ignoring case.
// A blank query matches everything. The result is a fresh slice in input
// order; items is never modified.
func Filter[E entity.Searchable](items []E, query string) []E {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]E, 0, len(items))
	for _, item := range items {
		if query == "" || matches(item, query) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item entity.Searchable, query string) bool {
	for _, field := range item.SearchFields() {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
