// Package tui is the terminal frontend. It owns no aggregation logic; every
// data operation is delegated to the services and flows back in as a message.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/shelf/internal/bestseller"
	"github.com/mmcdole/shelf/internal/discover"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/recommend"
	"github.com/mmcdole/shelf/internal/search"
	"github.com/mmcdole/shelf/internal/watchlist"
)

// View identifies one of the top-level screens
type View int

const (
	ViewSearch View = iota
	ViewForYou
	ViewBestsellers
	ViewUpcoming
	ViewPopular
	ViewLibrary
)

var viewNames = []string{"Search", "For You", "Bestsellers", "Upcoming", "Popular", "Library"}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	SearchSvc     *search.Service
	BestsellerSvc *bestseller.Service
	DiscoverSvc   *discover.Service
	Lists         *watchlist.Service
	MovieRecs     *recommend.TitleEngine
	ShowRecs      *recommend.TitleEngine
	BookRecs      *recommend.BookEngine

	// UI state
	view    View
	input   textinput.Model
	spin    spinner.Model
	loading bool
	width   int
	height  int
	cursor  int

	status    string
	statusErr bool

	// Search screen
	category      search.Category
	query         string
	results       []domain.CatalogItem
	resultsFilter string
	filtering     bool

	// For You screen
	recs        map[domain.Kind][]domain.CatalogItem
	movieGenres []domain.Genre
	tvGenres    []domain.Genre
	genreIdx    int // 0 = no filter, else index+1 into movieGenres

	// Bestsellers screen
	listIdx  int
	listName string
	records  []bestseller.Record

	// Discover screens
	upcoming []domain.CatalogItem
	popular  []domain.CatalogItem

	// Library screen
	libraryKind domain.Kind
	libFilter   string
}

// NewModel creates the application model
func NewModel(
	searchSvc *search.Service,
	bestsellerSvc *bestseller.Service,
	discoverSvc *discover.Service,
	lists *watchlist.Service,
	movieRecs *recommend.TitleEngine,
	showRecs *recommend.TitleEngine,
	bookRecs *recommend.BookEngine,
) Model {
	input := textinput.New()
	input.Placeholder = "Search movies, shows and books"
	input.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = AccentStyle

	return Model{
		SearchSvc:     searchSvc,
		BestsellerSvc: bestsellerSvc,
		DiscoverSvc:   discoverSvc,
		Lists:         lists,
		MovieRecs:     movieRecs,
		ShowRecs:      showRecs,
		BookRecs:      bookRecs,

		input:       input,
		spin:        spin,
		category:    search.CategoryAll,
		recs:        make(map[domain.Kind][]domain.CatalogItem),
		libraryKind: domain.KindMovie,
	}
}

// Init loads the genre taxonomies up front; everything else is fetched when
// its screen first needs it.
func (m Model) Init() tea.Cmd {
	return tea.Batch(LoadGenresCmd(m.DiscoverSvc), m.spin.Tick)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SearchResultsMsg:
		m.loading = false
		m.query = msg.Query
		m.results = msg.Results
		m.cursor = 0
		if len(msg.Results) == 0 {
			return m.withStatus("No results for \""+msg.Query+"\"", false)
		}
		return m, nil

	case RecommendationsMsg:
		m.loading = false
		m.recs[msg.Kind] = msg.Items
		return m, nil

	case BestsellersMsg:
		m.loading = false
		m.listName = msg.ListName
		m.records = msg.Records
		m.cursor = 0
		return m, nil

	case UpcomingMsg:
		m.loading = false
		m.upcoming = msg.Items
		m.cursor = 0
		return m, nil

	case PopularMsg:
		m.loading = false
		m.popular = msg.Items
		m.cursor = 0
		return m, nil

	case GenresMsg:
		m.movieGenres = msg.Movie
		m.tvGenres = msg.TV
		return m, nil

	case ListChangedMsg:
		if !msg.Changed {
			return m, nil
		}
		verb := "Removed"
		if msg.Added {
			verb = "Saved"
		}
		model, cmd := m.withStatus(verb+": "+msg.Item.Title, false)
		if m.view == ViewForYou {
			return model, tea.Batch(cmd, model.refreshRecsCmd())
		}
		return model, cmd

	case ErrMsg:
		m.loading = false
		return m.withStatus(msg.Error(), true)

	case ClearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The text input captures almost everything while focused
	if m.input.Focused() {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.input.Blur()
			return m, nil
		case "enter":
			value := m.input.Value()
			m.input.Blur()
			if m.view == ViewLibrary {
				m.libFilter = value
				m.cursor = 0
				return m, nil
			}
			if m.filtering {
				m.filtering = false
				m.resultsFilter = value
				m.cursor = 0
				return m, nil
			}
			m.resultsFilter = ""
			m.loading = true
			return m, tea.Batch(SearchCmd(m.SearchSvc, value, m.category), m.spin.Tick)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6":
		return m.switchView(View(int(msg.String()[0] - '1')))

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case "/":
		if m.view == ViewSearch || m.view == ViewLibrary {
			m.filtering = false
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "f":
		if m.view == ViewSearch && len(m.results) > 0 {
			m.filtering = true
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case "tab":
		return m.cycleTab()

	case "g":
		if m.view == ViewForYou && len(m.movieGenres) > 0 {
			m.genreIdx = (m.genreIdx + 1) % (len(m.movieGenres) + 1)
			m.cursor = 0
		}
		return m, nil

	case "r":
		return m.reload()

	case " ", "s":
		if m.view == ViewBestsellers {
			if m.cursor < len(m.records) {
				r := m.records[m.cursor]
				if !r.Enriched {
					return m.withStatus("No catalog details for \""+r.Title+"\"", false)
				}
				return m, ToggleSaveCmd(m.Lists, r.Details)
			}
			return m, nil
		}
		items := m.visibleItems()
		if m.cursor < len(items) {
			return m, ToggleSaveCmd(m.Lists, items[m.cursor])
		}
		return m, nil
	}

	return m, nil
}

// switchView activates a screen and lazily loads its data
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if v == m.view {
		return m, nil
	}
	m.view = v
	m.cursor = 0
	m.input.Blur()

	switch v {
	case ViewForYou:
		m.loading = true
		return m, tea.Batch(m.refreshRecsCmd(), m.spin.Tick)
	case ViewBestsellers:
		if m.records == nil {
			m.loading = true
			return m, tea.Batch(LoadBestsellersCmd(m.BestsellerSvc, bestseller.Lists()[m.listIdx]), m.spin.Tick)
		}
	case ViewUpcoming:
		if m.upcoming == nil {
			m.loading = true
			return m, tea.Batch(LoadUpcomingCmd(m.DiscoverSvc), m.spin.Tick)
		}
	case ViewPopular:
		if m.popular == nil {
			m.loading = true
			return m, tea.Batch(LoadPopularCmd(m.DiscoverSvc), m.spin.Tick)
		}
	}
	return m, nil
}

// cycleTab advances the screen-local selector: search category, bestseller
// list or library kind
func (m Model) cycleTab() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewSearch:
		cats := search.Categories()
		for i, c := range cats {
			if c == m.category {
				m.category = cats[(i+1)%len(cats)]
				break
			}
		}
		return m, nil

	case ViewBestsellers:
		m.listIdx = (m.listIdx + 1) % len(bestseller.Lists())
		m.loading = true
		m.cursor = 0
		return m, tea.Batch(LoadBestsellersCmd(m.BestsellerSvc, bestseller.Lists()[m.listIdx]), m.spin.Tick)

	case ViewLibrary:
		switch m.libraryKind {
		case domain.KindMovie:
			m.libraryKind = domain.KindTV
		case domain.KindTV:
			m.libraryKind = domain.KindBook
		default:
			m.libraryKind = domain.KindMovie
		}
		m.libFilter = ""
		m.cursor = 0
		return m, nil
	}
	return m, nil
}

// reload refreshes the active screen's data
func (m Model) reload() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewForYou:
		m.loading = true
		return m, tea.Batch(m.refreshRecsCmd(), m.spin.Tick)
	case ViewBestsellers:
		m.loading = true
		return m, tea.Batch(LoadBestsellersCmd(m.BestsellerSvc, bestseller.Lists()[m.listIdx]), m.spin.Tick)
	case ViewUpcoming:
		m.loading = true
		return m, tea.Batch(LoadUpcomingCmd(m.DiscoverSvc), m.spin.Tick)
	case ViewPopular:
		m.loading = true
		return m, tea.Batch(LoadPopularCmd(m.DiscoverSvc), m.spin.Tick)
	}
	return m, nil
}

func (m Model) refreshRecsCmd() tea.Cmd {
	return tea.Batch(
		RefreshTitleRecsCmd(m.MovieRecs, domain.KindMovie, m.Lists),
		RefreshTitleRecsCmd(m.ShowRecs, domain.KindTV, m.Lists),
		RefreshBookRecsCmd(m.BookRecs, m.Lists),
	)
}

// listLen is the row count of the active screen's list
func (m Model) listLen() int {
	if m.view == ViewBestsellers {
		return len(m.records)
	}
	return len(m.visibleItems())
}

// visibleItems returns the catalog items the active screen is listing, after
// any screen-local filter. Bestseller rows render from records instead.
func (m Model) visibleItems() []domain.CatalogItem {
	switch m.view {
	case ViewSearch:
		return search.Filter(m.resultsFilter, m.results)
	case ViewForYou:
		var all []domain.CatalogItem
		all = append(all, m.recs[domain.KindMovie]...)
		all = append(all, m.recs[domain.KindTV]...)
		all = append(all, m.recs[domain.KindBook]...)
		if m.genreIdx > 0 {
			all = recommend.FilterByGenre(all, m.movieGenres[m.genreIdx-1].ID)
		}
		return all
	case ViewUpcoming:
		return m.upcoming
	case ViewPopular:
		return m.popular
	case ViewLibrary:
		return m.Lists.Filter(m.libraryKind, m.libFilter)
	}
	return nil
}

func (m Model) withStatus(message string, isErr bool) (Model, tea.Cmd) {
	m.status = message
	m.statusErr = isErr
	return m, ClearStatusCmd(4 * time.Second)
}
