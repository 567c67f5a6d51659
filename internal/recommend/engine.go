// Package recommend implements the per-catalog recommendation engines. Each
// engine is an incremental aggregator: it watches the saved list for newly
// added items, fetches recommendations seeded by those items only, and grows
// an accumulated result set that is never re-fetched or evicted within a
// session.
package recommend

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/fanout"
)

// TitleEngine accumulates recommendations for one title catalog, movies or
// shows, driven by watchlist deltas.
type TitleEngine struct {
	kind   domain.Kind
	fetch  func(ctx context.Context, id string) ([]domain.CatalogItem, error)
	logger *slog.Logger

	mu       sync.Mutex
	lastSeen map[string]struct{}
	items    []domain.CatalogItem
	index    map[domain.ItemKey]struct{}
}

// NewMovieEngine creates the movie recommendation engine.
func NewMovieEngine(titles domain.TitleRepository, logger *slog.Logger) *TitleEngine {
	return newTitleEngine(domain.KindMovie, titles.MovieRecommendations, logger)
}

// NewShowEngine creates the TV recommendation engine.
func NewShowEngine(titles domain.TitleRepository, logger *slog.Logger) *TitleEngine {
	return newTitleEngine(domain.KindTV, titles.ShowRecommendations, logger)
}

func newTitleEngine(kind domain.Kind, fetch func(ctx context.Context, id string) ([]domain.CatalogItem, error), logger *slog.Logger) *TitleEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &TitleEngine{
		kind:     kind,
		fetch:    fetch,
		logger:   logger,
		lastSeen: make(map[string]struct{}),
		index:    make(map[domain.ItemKey]struct{}),
	}
}

// Refresh reconciles the engine against the current watchlist and returns the
// full accumulated recommendation sequence. Only watchlist items added since
// the previous call seed new fetches; an unchanged watchlist performs no
// provider calls. Individual seed failures are logged and skipped.
func (e *TitleEngine) Refresh(ctx context.Context, watchlist []domain.CatalogItem) []domain.CatalogItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	seeds := e.newSeeds(watchlist)
	if len(seeds) == 0 {
		e.recordSnapshot(watchlist)
		return e.snapshot()
	}

	tasks := make([]func(ctx context.Context) ([]domain.CatalogItem, error), len(seeds))
	for i, seed := range seeds {
		tasks[i] = func(ctx context.Context) ([]domain.CatalogItem, error) {
			return e.fetch(ctx, seed)
		}
	}
	batches := fanout.Gather(ctx, e.logger, string(e.kind)+" recommendations", tasks)

	saved := make(map[domain.ItemKey]struct{}, len(watchlist))
	for _, item := range watchlist {
		saved[item.Key()] = struct{}{}
	}

	added := 0
	for _, batch := range batches {
		for _, item := range batch {
			if !item.Valid() {
				continue
			}
			key := item.Key()
			if _, ok := saved[key]; ok {
				continue
			}
			if _, ok := e.index[key]; ok {
				continue
			}
			e.index[key] = struct{}{}
			e.items = append(e.items, item)
			added++
		}
	}
	e.recordSnapshot(watchlist)

	e.logger.Debug("recommendations refreshed",
		"kind", e.kind, "seeds", len(seeds), "added", added, "total", len(e.items))
	return e.snapshot()
}

// Items returns the accumulated recommendations without refreshing.
func (e *TitleEngine) Items() []domain.CatalogItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// newSeeds returns the ids of watchlist items not present in the previous
// snapshot. The snapshot starts empty, so the first call treats the whole
// watchlist as new, which bootstraps recommendations for lists saved before
// the engine existed.
func (e *TitleEngine) newSeeds(watchlist []domain.CatalogItem) []string {
	var seeds []string
	for _, item := range watchlist {
		if _, ok := e.lastSeen[item.ID]; !ok {
			seeds = append(seeds, item.ID)
		}
	}
	return seeds
}

func (e *TitleEngine) recordSnapshot(watchlist []domain.CatalogItem) {
	e.lastSeen = make(map[string]struct{}, len(watchlist))
	for _, item := range watchlist {
		e.lastSeen[item.ID] = struct{}{}
	}
}

func (e *TitleEngine) snapshot() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(e.items))
	copy(out, e.items)
	return out
}
