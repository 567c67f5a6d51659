package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/shelf/internal/domain"
)

// resultSource adapts a result slice for fuzzy matching over titles.
type resultSource []domain.CatalogItem

func (s resultSource) String(i int) string { return s[i].Title }
func (s resultSource) Len() int            { return len(s) }

// Filter narrows an already fetched result set to fuzzy title matches,
// best match first. An empty pattern returns the input unchanged.
func Filter(pattern string, items []domain.CatalogItem) []domain.CatalogItem {
	if strings.TrimSpace(pattern) == "" {
		return items
	}

	matches := fuzzy.FindFrom(pattern, resultSource(items))
	filtered := make([]domain.CatalogItem, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, items[m.Index])
	}
	return filtered
}
