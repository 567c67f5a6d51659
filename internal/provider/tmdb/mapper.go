package tmdb

import (
	"strconv"

	"github.com/mmcdole/shelf/internal/domain"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// MapMovie converts a raw TMDB movie to a catalog item. ok is false when the
// mandatory numeric id is missing; such entries are dropped by callers.
func MapMovie(t Title) (domain.CatalogItem, bool) {
	return mapTitle(t, domain.KindMovie)
}

// MapShow converts a raw TMDB TV entry to a catalog item.
func MapShow(t Title) (domain.CatalogItem, bool) {
	return mapTitle(t, domain.KindTV)
}

func mapTitle(t Title, kind domain.Kind) (domain.CatalogItem, bool) {
	if t.ID == 0 {
		return domain.CatalogItem{}, false
	}

	item := domain.CatalogItem{
		Kind:       kind,
		ID:         strconv.Itoa(t.ID),
		Title:      t.Title,
		Popularity: t.Popularity,
		Extra: domain.Extra{
			Description:  t.Overview,
			GenreIDs:     t.GenreIDs,
			Rating:       t.VoteAverage,
			RatingsCount: t.VoteCount,
		},
	}

	// Shows use "name" and "first_air_date" instead of the movie fields
	if item.Title == "" {
		item.Title = t.Name
	}
	item.ReleaseDate = t.ReleaseDate
	if item.ReleaseDate == "" {
		item.ReleaseDate = t.FirstAirDate
	}

	if t.PosterPath != "" {
		item.Image = posterBaseURL + t.PosterPath
	}

	return item, true
}

// mapMulti converts a multi-search entry, dispatching on the media_type
// discriminator. Person entries have no catalog item, only an id.
func mapMulti(t Title) (domain.MultiResult, bool) {
	switch t.MediaType {
	case "person":
		if t.ID == 0 {
			return domain.MultiResult{}, false
		}
		return domain.MultiResult{MediaType: "person", PersonID: strconv.Itoa(t.ID)}, true
	case "movie":
		item, ok := MapMovie(t)
		if !ok {
			return domain.MultiResult{}, false
		}
		return domain.MultiResult{MediaType: "movie", Item: item}, true
	case "tv":
		item, ok := MapShow(t)
		if !ok {
			return domain.MultiResult{}, false
		}
		return domain.MultiResult{MediaType: "tv", Item: item}, true
	default:
		return domain.MultiResult{}, false
	}
}

// mapGenres converts the raw genre taxonomy.
func mapGenres(entries []genreEntry) []domain.Genre {
	genres := make([]domain.Genre, 0, len(entries))
	for _, g := range entries {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return genres
}
