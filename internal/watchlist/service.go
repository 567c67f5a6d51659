// Package watchlist owns the saved lists: the movie and TV watchlists and
// the book reading list. Lists are loaded once at startup and every mutation
// writes straight through to the store.
package watchlist

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/shelf/internal/domain"
)

// Service holds the in-memory saved lists and persists them write-through.
type Service struct {
	store  domain.Store
	logger *slog.Logger

	mu    sync.RWMutex
	lists map[domain.Kind][]domain.CatalogItem
	index map[domain.ItemKey]struct{}
}

// NewService creates the watchlist service and loads every saved list from
// the store. A kind with no stored value starts empty.
func NewService(store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		store:  store,
		logger: logger,
		lists:  make(map[domain.Kind][]domain.CatalogItem),
		index:  make(map[domain.ItemKey]struct{}),
	}
	for _, kind := range []domain.Kind{domain.KindMovie, domain.KindTV, domain.KindBook} {
		items, ok := store.LoadList(kind)
		if !ok {
			continue
		}
		s.lists[kind] = items
		for _, item := range items {
			s.index[item.Key()] = struct{}{}
		}
		logger.Debug("loaded saved list", "kind", kind, "items", len(items))
	}
	return s
}

// Items returns a copy of the saved list for one kind.
func (s *Service) Items(kind domain.Kind) []domain.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CatalogItem, len(s.lists[kind]))
	copy(items, s.lists[kind])
	return items
}

// Contains reports whether an item is saved.
func (s *Service) Contains(key domain.ItemKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[key]
	return ok
}

// Add appends an item to its kind's list and persists it. Adding an already
// saved item is a no-op and reports false.
func (s *Service) Add(item domain.CatalogItem) (bool, error) {
	if !item.Valid() {
		return false, fmt.Errorf("cannot save item without kind and id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	if _, ok := s.index[key]; ok {
		return false, nil
	}

	s.lists[item.Kind] = append(s.lists[item.Kind], item)
	s.index[key] = struct{}{}
	if err := s.store.SaveList(item.Kind, s.lists[item.Kind]); err != nil {
		return true, fmt.Errorf("failed to persist %s list: %w", item.Kind, err)
	}
	return true, nil
}

// Remove deletes an item from its kind's list and persists the change.
// Removing an absent item is a no-op and reports false.
func (s *Service) Remove(key domain.ItemKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[key]; !ok {
		return false, nil
	}

	list := s.lists[key.Kind]
	kept := list[:0]
	for _, item := range list {
		if item.Key() != key {
			kept = append(kept, item)
		}
	}
	s.lists[key.Kind] = kept
	delete(s.index, key)

	if err := s.store.SaveList(key.Kind, kept); err != nil {
		return true, fmt.Errorf("failed to persist %s list: %w", key.Kind, err)
	}
	return true, nil
}

// Filter returns the saved items of one kind whose titles fuzzy-match the
// query, best match first. An empty query returns the whole list.
func (s *Service) Filter(kind domain.Kind, query string) []domain.CatalogItem {
	items := s.Items(kind)
	if query == "" {
		return items
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)
	matched := make([]domain.CatalogItem, 0, len(ranks))
	for _, r := range ranks {
		matched = append(matched, items[r.OriginalIndex])
	}
	return matched
}
