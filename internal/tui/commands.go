package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/shelf/internal/bestseller"
	"github.com/mmcdole/shelf/internal/discover"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/recommend"
	"github.com/mmcdole/shelf/internal/search"
	"github.com/mmcdole/shelf/internal/watchlist"
)

// Command factories for async operations

// SearchCmd runs one aggregated search
func SearchCmd(svc *search.Service, query string, category search.Category) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		results, err := svc.Search(ctx, query, category)
		if err != nil {
			return ErrMsg{Err: err, Context: "searching"}
		}
		return SearchResultsMsg{Results: results, Query: query}
	}
}

// RefreshTitleRecsCmd reconciles one title recommendation engine against the
// current saved list
func RefreshTitleRecsCmd(engine *recommend.TitleEngine, kind domain.Kind, lists *watchlist.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		items := engine.Refresh(ctx, lists.Items(kind))
		return RecommendationsMsg{Kind: kind, Items: items}
	}
}

// RefreshBookRecsCmd reconciles the book engine against the reading list
func RefreshBookRecsCmd(engine *recommend.BookEngine, lists *watchlist.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		items := engine.Refresh(ctx, lists.Items(domain.KindBook))
		return RecommendationsMsg{Kind: domain.KindBook, Items: items}
	}
}

// LoadBestsellersCmd loads one enriched bestseller list
func LoadBestsellersCmd(svc *bestseller.Service, list bestseller.ListOption) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		records, err := svc.List(ctx, list.Slug)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading bestsellers"}
		}
		return BestsellersMsg{ListName: list.Name, Records: records}
	}
}

// LoadUpcomingCmd loads the upcoming movie listing
func LoadUpcomingCmd(svc *discover.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		items, err := svc.UpcomingMovies(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading upcoming movies"}
		}
		return UpcomingMsg{Items: items}
	}
}

// LoadPopularCmd loads the popular TV listing
func LoadPopularCmd(svc *discover.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		items, err := svc.PopularShows(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading popular shows"}
		}
		return PopularMsg{Items: items}
	}
}

// LoadGenresCmd loads both genre taxonomies. Genres only drive an optional
// filter, so a failure degrades to no filter instead of surfacing an error.
func LoadGenresCmd(svc *discover.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		movie, err := svc.MovieGenres(ctx)
		if err != nil {
			return GenresMsg{}
		}
		tv, err := svc.ShowGenres(ctx)
		if err != nil {
			return GenresMsg{Movie: movie}
		}
		return GenresMsg{Movie: movie, TV: tv}
	}
}

// ToggleSaveCmd adds the item to its saved list, or removes it when already
// present
func ToggleSaveCmd(lists *watchlist.Service, item domain.CatalogItem) tea.Cmd {
	return func() tea.Msg {
		if lists.Contains(item.Key()) {
			changed, err := lists.Remove(item.Key())
			if err != nil {
				return ErrMsg{Err: err, Context: "updating list"}
			}
			return ListChangedMsg{Item: item, Added: false, Changed: changed}
		}

		changed, err := lists.Add(item)
		if err != nil {
			return ErrMsg{Err: err, Context: "updating list"}
		}
		return ListChangedMsg{Item: item, Added: true, Changed: changed}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
