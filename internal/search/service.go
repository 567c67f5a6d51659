// Package search implements the cross-provider search aggregator. It fans out
// to the title and book providers, normalizes partial failure, dedups on the
// composite item identity and orders the merged result set.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/fanout"
)

// Category selects which catalogs a search touches.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryMovie    Category = "movie"
	CategoryTV       Category = "tv"
	CategoryBook     Category = "book"
	CategoryAuthor   Category = "author"
	CategoryDirector Category = "director"
)

// Categories lists the selectable search categories in display order.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryMovie,
		CategoryTV,
		CategoryBook,
		CategoryAuthor,
		CategoryDirector,
	}
}

// searchDepth is how many result pages a single-catalog title search pulls.
const searchDepth = 3

// Service aggregates search across the title and book providers.
type Service struct {
	titles domain.TitleRepository
	books  domain.BookRepository
	logger *slog.Logger
}

// NewService creates a search service.
func NewService(titles domain.TitleRepository, books domain.BookRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		titles: titles,
		books:  books,
		logger: logger,
	}
}

// Search runs one search and returns the merged, deduped and ordered result
// set. Single-catalog categories surface provider errors; the combined
// category only fails when its backbone (the mixed title search) fails, and
// degrades to titles-only when the book provider is down.
func (s *Service) Search(ctx context.Context, query string, category Category) ([]domain.CatalogItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	var (
		results []domain.CatalogItem
		err     error
	)
	switch category {
	case CategoryAll:
		results, err = s.searchAll(ctx, query)
	case CategoryMovie:
		results, err = s.searchTitles(ctx, query, domain.KindMovie)
	case CategoryTV:
		results, err = s.searchTitles(ctx, query, domain.KindTV)
	case CategoryBook:
		results, err = s.books.SearchBooks(ctx, query, domain.BookSearchGeneral)
	case CategoryAuthor:
		results, err = s.books.SearchBooks(ctx, query, domain.BookSearchAuthor)
	case CategoryDirector:
		results, err = s.searchDirector(ctx, query)
	default:
		return nil, fmt.Errorf("unknown search category: %q", category)
	}
	if err != nil {
		return nil, err
	}

	results = dedupe(results)
	sortResults(results)
	return results, nil
}

// searchAll is the combined flow: one mixed title search, redirected to a
// filmography when the best interpretation of the query is a person, plus a
// best-effort book search appended at the end.
func (s *Service) searchAll(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	multi, err := s.titles.SearchMulti(ctx, query)
	if err != nil {
		return nil, err
	}

	var results []domain.CatalogItem
	if personID := firstPerson(multi); personID != "" {
		credits, err := s.titles.PersonMovieCredits(ctx, personID)
		if err != nil {
			return nil, err
		}
		results = directedMovies(credits)
	} else {
		for _, m := range multi {
			if m.Item.Valid() {
				results = append(results, m.Item)
			}
		}
	}

	books, err := s.books.SearchBooks(ctx, query, domain.BookSearchGeneral)
	if err != nil {
		s.logger.Warn("book search failed, continuing with titles only", "query", query, "error", err)
	} else {
		results = append(results, books...)
	}

	return results, nil
}

// searchTitles pulls the first searchDepth pages of a single title catalog.
func (s *Service) searchTitles(ctx context.Context, query string, kind domain.Kind) ([]domain.CatalogItem, error) {
	fetch := s.titles.SearchMovies
	if kind == domain.KindTV {
		fetch = s.titles.SearchShows
	}
	return fanout.Pages(ctx, 1, searchDepth, func(ctx context.Context, page int) ([]domain.CatalogItem, error) {
		items, _, err := fetch(ctx, query, page)
		return items, err
	})
}

// searchDirector resolves the query to a person and returns the movies they
// directed. No person match means an empty result, not an error.
func (s *Service) searchDirector(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	multi, err := s.titles.SearchMulti(ctx, query)
	if err != nil {
		return nil, err
	}

	personID := firstPerson(multi)
	if personID == "" {
		return nil, nil
	}

	credits, err := s.titles.PersonMovieCredits(ctx, personID)
	if err != nil {
		return nil, err
	}
	return directedMovies(credits), nil
}

// firstPerson returns the person id of the first person entry, or "".
func firstPerson(multi []domain.MultiResult) string {
	for _, m := range multi {
		if m.MediaType == "person" {
			return m.PersonID
		}
	}
	return ""
}

// directedMovies keeps the credits where the person was the director.
func directedMovies(credits []domain.CrewCredit) []domain.CatalogItem {
	var movies []domain.CatalogItem
	for _, c := range credits {
		if c.Job == "Director" && c.Item.Valid() {
			movies = append(movies, c.Item)
		}
	}
	return movies
}

// dedupe drops later occurrences of an already seen (kind, id) pair,
// preserving first-occurrence order.
func dedupe(items []domain.CatalogItem) []domain.CatalogItem {
	seen := make(map[domain.ItemKey]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		key := item.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// sortResults orders titles by descending popularity and keeps books after
// them in provider order. Book relevance comes from the provider's own
// ranking; popularity is a title-provider concept and missing values sort
// as zero.
func sortResults(items []domain.CatalogItem) {
	sort.SliceStable(items, func(i, j int) bool {
		iBook := items[i].Kind == domain.KindBook
		jBook := items[j].Kind == domain.KindBook
		if iBook != jBook {
			return !iBook
		}
		if iBook {
			return false
		}
		return items[i].Popularity > items[j].Popularity
	})
}
