package domain

import "context"

// BookSearchMode selects the query form sent to the book provider.
type BookSearchMode string

const (
	BookSearchGeneral BookSearchMode = "general"
	BookSearchAuthor  BookSearchMode = "author"
)

// MultiResult is one entry of a mixed people-and-titles search. Item is only
// populated for movie/tv entries; person entries carry the person id instead.
type MultiResult struct {
	MediaType string // "movie", "tv" or "person"
	PersonID  string
	Item      CatalogItem
}

// CrewCredit is one crew entry of a person's filmography.
type CrewCredit struct {
	Job  string
	Item CatalogItem
}

// BestsellerEntry is one ranked row of a bestseller list, before enrichment.
type BestsellerEntry struct {
	Rank        int
	Title       string
	Author      string
	Description string
	WeeksOnList int
	ISBN13      string
}

// TitleRepository exposes the movie/TV provider. Implementations return
// normalized CatalogItems; raw provider shapes never cross this boundary.
type TitleRepository interface {
	// SearchMovies returns one page of movie results plus the total page count.
	SearchMovies(ctx context.Context, query string, page int) ([]CatalogItem, int, error)

	// SearchShows returns one page of TV results plus the total page count.
	SearchShows(ctx context.Context, query string, page int) ([]CatalogItem, int, error)

	// SearchMulti searches people and titles in a single call.
	SearchMulti(ctx context.Context, query string) ([]MultiResult, error)

	// PersonMovieCredits returns the movie crew credits of a person.
	PersonMovieCredits(ctx context.Context, personID string) ([]CrewCredit, error)

	// MovieRecommendations returns recommendations seeded by a movie id.
	MovieRecommendations(ctx context.Context, id string) ([]CatalogItem, error)

	// ShowRecommendations returns recommendations seeded by a show id.
	ShowRecommendations(ctx context.Context, id string) ([]CatalogItem, error)

	// UpcomingMovies returns one page of upcoming releases plus the total page count.
	UpcomingMovies(ctx context.Context, page int) ([]CatalogItem, int, error)

	// PopularShows returns the current popular TV listing.
	PopularShows(ctx context.Context) ([]CatalogItem, error)

	// MovieGenres returns the movie genre taxonomy.
	MovieGenres(ctx context.Context) ([]Genre, error)

	// ShowGenres returns the TV genre taxonomy.
	ShowGenres(ctx context.Context) ([]Genre, error)
}

// BookRepository exposes the book search/detail provider.
type BookRepository interface {
	// SearchBooks runs a text or author-scoped search.
	SearchBooks(ctx context.Context, query string, mode BookSearchMode) ([]CatalogItem, error)

	// BookByISBN looks up a single volume. ok is false when the provider
	// returned no match; that is not an error.
	BookByISBN(ctx context.Context, isbn string) (CatalogItem, bool, error)
}

// BestsellerRepository exposes the curated bestseller list provider.
type BestsellerRepository interface {
	BestsellerList(ctx context.Context, listName string) ([]BestsellerEntry, error)
}

// Store is the persistence boundary for saved lists. Semantics are
// last-write-wins; a malformed stored value reads as absent.
type Store interface {
	LoadList(kind Kind) ([]CatalogItem, bool)
	SaveList(kind Kind, items []CatalogItem) error
	Close() error
}
