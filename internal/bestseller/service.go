// Package bestseller combines a curated, ranked bestseller list with per-book
// catalog detail. The list provider is authoritative for membership and
// order; the book provider only decorates each row.
package bestseller

import (
	"context"
	"log/slog"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/fanout"
)

// Record is one enriched bestseller row. The entry fields always come from
// the list provider; Details is only meaningful when Enriched is true.
type Record struct {
	domain.BestsellerEntry
	Details  domain.CatalogItem
	Enriched bool
}

// ListOption is a selectable bestseller list.
type ListOption struct {
	Name string
	Slug string
}

// Lists returns the selectable bestseller lists in display order.
func Lists() []ListOption {
	return []ListOption{
		{Name: "Combined Print & E-Book Fiction", Slug: "combined-print-and-e-book-fiction"},
		{Name: "Combined Print & E-Book Nonfiction", Slug: "combined-print-and-e-book-nonfiction"},
		{Name: "Hardcover Fiction", Slug: "hardcover-fiction"},
		{Name: "Hardcover Nonfiction", Slug: "hardcover-nonfiction"},
		{Name: "Paperback Trade Fiction", Slug: "trade-fiction-paperback"},
		{Name: "Paperback Nonfiction", Slug: "paperback-nonfiction"},
		{Name: "Advice, How-To & Miscellaneous", Slug: "advice-how-to-and-miscellaneous"},
		{Name: "Young Adult Hardcover", Slug: "young-adult-hardcover"},
	}
}

// Service builds enriched bestseller listings.
type Service struct {
	lists  domain.BestsellerRepository
	books  domain.BookRepository
	logger *slog.Logger
}

// NewService creates a bestseller service.
func NewService(lists domain.BestsellerRepository, books domain.BookRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		lists:  lists,
		books:  books,
		logger: logger,
	}
}

// List fetches the current edition of a named list and enriches each entry
// with catalog detail, positionally: record N pairs entry N with the lookup
// for entry N's ISBN. A list failure propagates; a detail lookup failure or
// miss leaves that record unenriched.
func (s *Service) List(ctx context.Context, listSlug string) ([]Record, error) {
	entries, err := s.lists.BestsellerList(ctx, listSlug)
	if err != nil {
		return nil, err
	}

	type lookup struct {
		item domain.CatalogItem
		ok   bool
	}
	tasks := make([]func(ctx context.Context) (lookup, error), len(entries))
	for i, entry := range entries {
		tasks[i] = func(ctx context.Context) (lookup, error) {
			item, ok, err := s.books.BookByISBN(ctx, entry.ISBN13)
			if err != nil {
				return lookup{}, err
			}
			return lookup{item: item, ok: ok}, nil
		}
	}
	details := fanout.Gather(ctx, s.logger, "bestseller detail", tasks)

	records := make([]Record, len(entries))
	for i, entry := range entries {
		records[i] = Record{
			BestsellerEntry: entry,
			Details:         details[i].item,
			Enriched:        details[i].ok,
		}
	}
	return records, nil
}
