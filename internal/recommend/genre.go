package recommend

import "github.com/mmcdole/shelf/internal/domain"

// FilterByGenre narrows title recommendations to one genre. Zero means no
// filter. Books carry no numeric genre ids and are passed through unchanged.
func FilterByGenre(items []domain.CatalogItem, genreID int) []domain.CatalogItem {
	if genreID == 0 {
		return items
	}

	filtered := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Kind == domain.KindBook {
			filtered = append(filtered, item)
			continue
		}
		for _, id := range item.Extra.GenreIDs {
			if id == genreID {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}
