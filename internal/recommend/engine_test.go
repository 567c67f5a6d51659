package recommend

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/log"
)

// fakeTitles serves recommendations keyed by seed id and counts fetches
type fakeTitles struct {
	mu      sync.Mutex
	recs    map[string][]domain.CatalogItem
	fail    map[string]error
	calls   atomic.Int32
	seenIDs []string
}

func (f *fakeTitles) MovieRecommendations(_ context.Context, id string) ([]domain.CatalogItem, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.seenIDs = append(f.seenIDs, id)
	f.mu.Unlock()
	if err := f.fail[id]; err != nil {
		return nil, err
	}
	return f.recs[id], nil
}

func (f *fakeTitles) ShowRecommendations(ctx context.Context, id string) ([]domain.CatalogItem, error) {
	return f.MovieRecommendations(ctx, id)
}

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

func (f *fakeTitles) UpcomingMovies(context.Context, int) ([]domain.CatalogItem, int, error) {
	return nil, 0, nil
}

func (f *fakeTitles) PopularShows(context.Context) ([]domain.CatalogItem, error) { return nil, nil }
func (f *fakeTitles) MovieGenres(context.Context) ([]domain.Genre, error)        { return nil, nil }
func (f *fakeTitles) ShowGenres(context.Context) ([]domain.Genre, error)         { return nil, nil }

func movie(id string) domain.CatalogItem {
	return domain.CatalogItem{Kind: domain.KindMovie, ID: id, Title: "movie " + id}
}

func TestRefreshBootstrapsFromExistingWatchlist(t *testing.T) {
	titles := &fakeTitles{recs: map[string][]domain.CatalogItem{
		"w1": {movie("r1")},
		"w2": {movie("r2")},
	}}
	engine := NewMovieEngine(titles, log.NullLogger())

	got := engine.Refresh(context.Background(), []domain.CatalogItem{movie("w1"), movie("w2")})
	if titles.calls.Load() != 2 {
		t.Fatalf("expected one fetch per saved item, got %d", titles.calls.Load())
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %v", recIDs(got))
	}
}

func TestRefreshUnchangedWatchlistFetchesNothing(t *testing.T) {
	titles := &fakeTitles{recs: map[string][]domain.CatalogItem{"w1": {movie("r1")}}}
	engine := NewMovieEngine(titles, log.NullLogger())
	watchlist := []domain.CatalogItem{movie("w1")}

	first := engine.Refresh(context.Background(), watchlist)
	calls := titles.calls.Load()

	second := engine.Refresh(context.Background(), watchlist)
	if titles.calls.Load() != calls {
		t.Fatalf("unchanged watchlist refetched: %d calls, want %d", titles.calls.Load(), calls)
	}
	if len(second) != len(first) {
		t.Fatalf("result changed across idempotent refresh: %v vs %v", recIDs(first), recIDs(second))
	}
}

func TestRefreshOnlyFetchesNewSeeds(t *testing.T) {
	titles := &fakeTitles{recs: map[string][]domain.CatalogItem{
		"w1": {movie("r1")},
		"w2": {movie("r2")},
	}}
	engine := NewMovieEngine(titles, log.NullLogger())

	engine.Refresh(context.Background(), []domain.CatalogItem{movie("w1")})
	titles.mu.Lock()
	titles.seenIDs = nil
	titles.mu.Unlock()

	engine.Refresh(context.Background(), []domain.CatalogItem{movie("w1"), movie("w2")})
	titles.mu.Lock()
	defer titles.mu.Unlock()
	if len(titles.seenIDs) != 1 || titles.seenIDs[0] != "w2" {
		t.Fatalf("expected only the new seed w2, got %v", titles.seenIDs)
	}
}

func TestRefreshAccumulatesMonotonically(t *testing.T) {
	titles := &fakeTitles{recs: map[string][]domain.CatalogItem{
		"w1": {movie("r1")},
		"w2": {movie("r2")},
	}}
	engine := NewMovieEngine(titles, log.NullLogger())

	first := engine.Refresh(context.Background(), []domain.CatalogItem{movie("w1")})
	second := engine.Refresh(context.Background(), []domain.CatalogItem{movie("w1"), movie("w2")})

	if len(second) != len(first)+1 {
		t.Fatalf("expected accumulation, got %v then %v", recIDs(first), recIDs(second))
	}
	if second[0].ID != "r1" {
		t.Errorf("earlier recommendations must keep their position, got %v", recIDs(second))
	}
}

func TestRefreshNeverRecommendsSavedItems(t *testing.T) {
	titles := &fakeTitles{recs: map[string][]domain.CatalogItem{
		"w1": {movie("w2"), movie("r1")},
	}}
	engine := NewMovieEngine(titles, log.NullLogger())

	got := engine.Refresh(context.Background(), []domain.CatalogItem{movie("w1"), movie("w2")})
	for _, item := range got {
		if item.ID == "w2" {
			t.Fatalf("saved item recommended: %v", recIDs(got))
		}
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected [r1], got %v", recIDs(got))
	}
}

func TestRefreshDropsDuplicateRecommendations(t *testing.T) {
	titles := &fakeTitles{recs: map[string][]domain.CatalogItem{
		"w1": {movie("r1")},
		"w2": {movie("r1")},
	}}
	engine := NewMovieEngine(titles, log.NullLogger())

	got := engine.Refresh(context.Background(), []domain.CatalogItem{movie("w1"), movie("w2")})
	if len(got) != 1 {
		t.Fatalf("duplicate recommendation kept: %v", recIDs(got))
	}
}

func TestRefreshSwallowsSeedFailures(t *testing.T) {
	titles := &fakeTitles{
		recs: map[string][]domain.CatalogItem{"w1": {movie("r1")}},
		fail: map[string]error{"w2": domain.ErrProviderUnavailable},
	}
	engine := NewMovieEngine(titles, log.NullLogger())

	got := engine.Refresh(context.Background(), []domain.CatalogItem{movie("w1"), movie("w2")})
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected surviving seed's recommendations, got %v", recIDs(got))
	}
}

func recIDs(items []domain.CatalogItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
