// Package discover implements the query-less title listings: upcoming movie
// releases, the popular TV roster and the genre taxonomies.
package discover

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/fanout"
)

// maxUpcomingPages caps how deep the upcoming listing paginates.
const maxUpcomingPages = 5

// Service exposes the discovery listings. These are single-intent requests,
// so provider failures propagate to the caller.
type Service struct {
	titles domain.TitleRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a discovery service.
func NewService(titles domain.TitleRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		titles: titles,
		logger: logger,
		now:    time.Now,
	}
}

// UpcomingMovies returns deduped upcoming releases dated strictly after
// today, pulling up to maxUpcomingPages pages. The provider's upcoming window
// starts slightly in the past, so already released titles are dropped here.
func (s *Service) UpcomingMovies(ctx context.Context) ([]domain.CatalogItem, error) {
	first, totalPages, err := s.titles.UpcomingMovies(ctx, 1)
	if err != nil {
		return nil, err
	}

	last := min(totalPages, maxUpcomingPages)
	rest, err := fanout.Pages(ctx, 2, last, func(ctx context.Context, page int) ([]domain.CatalogItem, error) {
		items, _, err := s.titles.UpcomingMovies(ctx, page)
		return items, err
	})
	if err != nil {
		return nil, err
	}

	today := s.now().Format("2006-01-02")
	seen := make(map[domain.ItemKey]struct{})
	var upcoming []domain.CatalogItem
	for _, item := range append(first, rest...) {
		if item.ReleaseDate <= today {
			continue
		}
		key := item.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		upcoming = append(upcoming, item)
	}
	return upcoming, nil
}

// PopularShows returns the current popular TV listing.
func (s *Service) PopularShows(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.titles.PopularShows(ctx)
}

// MovieGenres returns the movie genre taxonomy.
func (s *Service) MovieGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.titles.MovieGenres(ctx)
}

// ShowGenres returns the TV genre taxonomy.
func (s *Service) ShowGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.titles.ShowGenres(ctx)
}
