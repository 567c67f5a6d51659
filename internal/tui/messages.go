package tui

import (
	"github.com/mmcdole/shelf/internal/bestseller"
	"github.com/mmcdole/shelf/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchResultsMsg signals that search results are ready
type SearchResultsMsg struct {
	Results []domain.CatalogItem
	Query   string
}

// RecommendationsMsg carries one catalog's refreshed recommendations
type RecommendationsMsg struct {
	Kind  domain.Kind
	Items []domain.CatalogItem
}

// BestsellersMsg signals that a bestseller list has loaded
type BestsellersMsg struct {
	ListName string
	Records  []bestseller.Record
}

// UpcomingMsg signals that the upcoming movie listing has loaded
type UpcomingMsg struct {
	Items []domain.CatalogItem
}

// PopularMsg signals that the popular TV listing has loaded
type PopularMsg struct {
	Items []domain.CatalogItem
}

// GenresMsg carries the movie and TV genre taxonomies
type GenresMsg struct {
	Movie []domain.Genre
	TV    []domain.Genre
}

// ListChangedMsg signals a watchlist add or remove
type ListChangedMsg struct {
	Item    domain.CatalogItem
	Added   bool
	Changed bool
}

// StatusNoteMsg sets a temporary status message
type StatusNoteMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
