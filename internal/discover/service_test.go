package discover

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/log"
)

type fakeTitles struct {
	pages      map[int][]domain.CatalogItem
	totalPages int
	pageErr    error
	popular    []domain.CatalogItem
	popularErr error
	genres     []domain.Genre
	calls      atomic.Int32
}

func (f *fakeTitles) UpcomingMovies(_ context.Context, page int) ([]domain.CatalogItem, int, error) {
	f.calls.Add(1)
	if f.pageErr != nil {
		return nil, 0, f.pageErr
	}
	return f.pages[page], f.totalPages, nil
}

func (f *fakeTitles) PopularShows(context.Context) ([]domain.CatalogItem, error) {
	return f.popular, f.popularErr
}

func (f *fakeTitles) MovieGenres(context.Context) ([]domain.Genre, error) { return f.genres, nil }
func (f *fakeTitles) ShowGenres(context.Context) ([]domain.Genre, error)  { return f.genres, nil }

func (f *fakeTitles) SearchMovies(context.Context, string, int) ([]domain.CatalogItem, int, error) {
	return nil, 0, nil
}

func (f *fakeTitles) SearchShows(context.Context, string, int) ([]domain.CatalogItem, int, error) {
	return nil, 0, nil
}

func (f *fakeTitles) SearchMulti(context.Context, string) ([]domain.MultiResult, error) {
	return nil, nil
}

func (f *fakeTitles) PersonMovieCredits(context.Context, string) ([]domain.CrewCredit, error) {
	return nil, nil
}

func (f *fakeTitles) MovieRecommendations(context.Context, string) ([]domain.CatalogItem, error) {
	return nil, nil
}

func (f *fakeTitles) ShowRecommendations(context.Context, string) ([]domain.CatalogItem, error) {
	return nil, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func upcomingMovie(id, date string) domain.CatalogItem {
	return domain.CatalogItem{Kind: domain.KindMovie, ID: id, Title: "movie " + id, ReleaseDate: date}
}

func TestUpcomingMoviesFiltersToFutureDates(t *testing.T) {
	titles := &fakeTitles{
		totalPages: 1,
		pages: map[int][]domain.CatalogItem{
			1: {
				upcomingMovie("past", "2026-03-01"),
				upcomingMovie("today", "2026-03-15"),
				upcomingMovie("future", "2026-03-16"),
				upcomingMovie("undated", ""),
			},
		},
	}
	svc := NewService(titles, log.NullLogger())
	svc.now = fixedNow

	got, err := svc.UpcomingMovies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "future" {
		t.Fatalf("expected only strictly future releases, got %v", itemIDs(got))
	}
}

func TestUpcomingMoviesCapsPagination(t *testing.T) {
	pages := make(map[int][]domain.CatalogItem)
	for p := 1; p <= 9; p++ {
		pages[p] = []domain.CatalogItem{upcomingMovie(string(rune('a'+p)), "2027-01-01")}
	}
	titles := &fakeTitles{totalPages: 9, pages: pages}
	svc := NewService(titles, log.NullLogger())
	svc.now = fixedNow

	got, err := svc.UpcomingMovies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if titles.calls.Load() != 5 {
		t.Errorf("expected 5 page fetches, got %d", titles.calls.Load())
	}
	if len(got) != 5 {
		t.Errorf("expected 5 items, got %v", itemIDs(got))
	}
}

func TestUpcomingMoviesFewerPagesThanCap(t *testing.T) {
	titles := &fakeTitles{
		totalPages: 2,
		pages: map[int][]domain.CatalogItem{
			1: {upcomingMovie("a", "2027-01-01")},
			2: {upcomingMovie("b", "2027-01-02")},
		},
	}
	svc := NewService(titles, log.NullLogger())
	svc.now = fixedNow

	got, err := svc.UpcomingMovies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if titles.calls.Load() != 2 {
		t.Errorf("expected 2 page fetches, got %d", titles.calls.Load())
	}
	if len(got) != 2 {
		t.Errorf("expected 2 items, got %v", itemIDs(got))
	}
}

func TestUpcomingMoviesDedupsAcrossPages(t *testing.T) {
	titles := &fakeTitles{
		totalPages: 2,
		pages: map[int][]domain.CatalogItem{
			1: {upcomingMovie("a", "2027-01-01")},
			2: {upcomingMovie("a", "2027-01-01")},
		},
	}
	svc := NewService(titles, log.NullLogger())
	svc.now = fixedNow

	got, err := svc.UpcomingMovies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected duplicate dropped, got %v", itemIDs(got))
	}
}

func TestUpcomingMoviesFailurePropagates(t *testing.T) {
	titles := &fakeTitles{pageErr: domain.ErrProviderUnavailable}
	svc := NewService(titles, log.NullLogger())
	svc.now = fixedNow

	if _, err := svc.UpcomingMovies(context.Background()); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestPopularShowsPassthrough(t *testing.T) {
	titles := &fakeTitles{popular: []domain.CatalogItem{
		{Kind: domain.KindTV, ID: "s1", Title: "show"},
	}}
	svc := NewService(titles, log.NullLogger())

	got, err := svc.PopularShows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("unexpected listing: %v", itemIDs(got))
	}
}

func itemIDs(items []domain.CatalogItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
