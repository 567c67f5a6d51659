package googlebooks

import (
	"strings"

	"github.com/mmcdole/shelf/internal/domain"
)

// MapVolume converts a raw volume to a book catalog item. The identity is the
// first ISBN-13 among the industry identifiers, falling back to the volume's
// opaque id. ok is false only when neither exists.
func MapVolume(v Volume) (domain.CatalogItem, bool) {
	id := isbn13(v.VolumeInfo.IndustryIdentifiers)
	if id == "" {
		id = v.ID
	}
	if id == "" {
		return domain.CatalogItem{}, false
	}

	info := v.VolumeInfo

	author := domain.UnknownAuthor
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	// Downstream rendering iterates genres; keep it non-nil
	genres := info.Categories
	if genres == nil {
		genres = []string{}
	}

	return domain.CatalogItem{
		Kind:        domain.KindBook,
		ID:          id,
		Title:       info.Title,
		ReleaseDate: info.PublishedDate,
		Image:       info.ImageLinks.Thumbnail,
		Extra: domain.Extra{
			Author:       author,
			Description:  info.Description,
			Genres:       genres,
			Rating:       info.AverageRating,
			RatingsCount: info.RatingsCount,
			PurchaseLink: v.SaleInfo.BuyLink,
		},
	}, true
}

// isbn13 returns the first ISBN-13 identifier, or "".
func isbn13(ids []IndustryIdentifier) string {
	for _, id := range ids {
		if id.Type == "ISBN_13" {
			return id.Identifier
		}
	}
	return ""
}
