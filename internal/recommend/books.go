package recommend

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/fanout"
)

// BookEngine accumulates book recommendations driven by reading-list deltas.
// Unlike the title engines it has no per-item recommendation endpoint to call,
// so it seeds an author search from each newly saved book instead.
type BookEngine struct {
	books  domain.BookRepository
	logger *slog.Logger

	mu       sync.Mutex
	lastSeen map[string]struct{}
	items    []domain.CatalogItem
	index    map[domain.ItemKey]struct{}
}

// NewBookEngine creates the book recommendation engine.
func NewBookEngine(books domain.BookRepository, logger *slog.Logger) *BookEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookEngine{
		books:    books,
		logger:   logger,
		lastSeen: make(map[string]struct{}),
		index:    make(map[domain.ItemKey]struct{}),
	}
}

// Refresh reconciles the engine against the current reading list and returns
// the full accumulated recommendation sequence. Each newly saved book
// contributes one author query; seeds without a usable author are skipped and
// identical author queries are collapsed before fetching.
func (e *BookEngine) Refresh(ctx context.Context, readingList []domain.CatalogItem) []domain.CatalogItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	authors := e.newAuthors(readingList)
	if len(authors) == 0 {
		e.recordSnapshot(readingList)
		return e.snapshot()
	}

	tasks := make([]func(ctx context.Context) ([]domain.CatalogItem, error), len(authors))
	for i, author := range authors {
		tasks[i] = func(ctx context.Context) ([]domain.CatalogItem, error) {
			return e.books.SearchBooks(ctx, author, domain.BookSearchGeneral)
		}
	}
	batches := fanout.Gather(ctx, e.logger, "book recommendations", tasks)

	saved := make(map[domain.ItemKey]struct{}, len(readingList))
	for _, item := range readingList {
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
	e.recordSnapshot(readingList)

	e.logger.Debug("book recommendations refreshed",
		"authors", len(authors), "added", added, "total", len(e.items))
	return e.snapshot()
}

// Items returns the accumulated recommendations without refreshing.
func (e *BookEngine) Items() []domain.CatalogItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// newAuthors derives the deduplicated author queries from reading-list items
// not present in the previous snapshot.
func (e *BookEngine) newAuthors(readingList []domain.CatalogItem) []string {
	seen := make(map[string]struct{})
	var authors []string
	for _, item := range readingList {
		if _, ok := e.lastSeen[item.ID]; ok {
			continue
		}
		author := item.PrimaryAuthor()
		if author == "" {
			continue
		}
		if _, ok := seen[author]; ok {
			continue
		}
		seen[author] = struct{}{}
		authors = append(authors, author)
	}
	return authors
}

func (e *BookEngine) recordSnapshot(readingList []domain.CatalogItem) {
	e.lastSeen = make(map[string]struct{}, len(readingList))
	for _, item := range readingList {
		e.lastSeen[item.ID] = struct{}{}
	}
}

func (e *BookEngine) snapshot() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(e.items))
	copy(out, e.items)
	return out
}
