// Package filter implements the client-side listing filter and page math:
// the whole item set is fetched once and narrowed locally.
package filter

import (
	"strings"

	"board-cli/internal/model"
)

// PageSize is the fixed number of listings per page.
const PageSize = 5

// SearchMinLen is the minimum search length before the text filter kicks in;
// shorter input matches everything.
const SearchMinLen = 3

// Apply narrows items by search text and category. The search is a
// case-insensitive substring match on the name, active only at SearchMinLen
// characters and up; an empty category means no category filter. Both
// filters are conjoined.
func Apply(items []model.Item, search string, category model.Category) []model.Item {
	needle := strings.ToLower(search)
	bySearch := len([]rune(search)) >= SearchMinLen

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if bySearch && !strings.Contains(strings.ToLower(it.Name), needle) {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, it)
	}
	return out
}

// PageCount returns ceil(n / PageSize); an empty set has zero pages.
func PageCount(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Page returns the 1-based page of items. Out-of-range pages yield an empty
// slice.
func Page(items []model.Item, page int) []model.Item {
	if page < 1 {
		return nil
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return nil
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
