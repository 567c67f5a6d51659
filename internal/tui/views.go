package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/shelf/internal/bestseller"
	"github.com/mmcdole/shelf/internal/domain"
)

// View renders the application
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("  " + m.spin.View() + DimStyle.Render(" loading..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if View(i) == m.view {
			tabs[i] = ActiveTabStyle.Render(label)
		} else {
			tabs[i] = TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderHeader is the screen-local context line: input, active selector,
// result counts
func (m Model) renderHeader() string {
	switch m.view {
	case ViewSearch:
		line := "  " + AccentStyle.Render("["+string(m.category)+"]") + " " + m.input.View()
		if m.resultsFilter != "" {
			line += DimStyle.Render("  filter: " + m.resultsFilter)
		}
		return line
	case ViewForYou:
		genre := "all genres"
		if m.genreIdx > 0 {
			genre = m.movieGenres[m.genreIdx-1].Name
		}
		return "  " + TitleStyle.Render("For You") + DimStyle.Render("  g: "+genre)
	case ViewBestsellers:
		name := m.listName
		if name == "" {
			name = bestseller.Lists()[m.listIdx].Name
		}
		return "  " + TitleStyle.Render(name)
	case ViewUpcoming:
		return "  " + TitleStyle.Render("Upcoming Movies")
	case ViewPopular:
		return "  " + TitleStyle.Render("Popular Shows")
	case ViewLibrary:
		line := "  " + TitleStyle.Render("Library") + AccentStyle.Render("  ["+string(m.libraryKind)+"]")
		if m.input.Focused() {
			line += " " + m.input.View()
		} else if m.libFilter != "" {
			line += DimStyle.Render("  filter: " + m.libFilter)
		}
		return line
	}
	return ""
}

func (m Model) renderList() string {
	if m.view == ViewBestsellers {
		return m.renderBestsellers()
	}

	items := m.visibleItems()
	if len(items) == 0 {
		return DimStyle.Render("  Nothing here yet.") + "\n"
	}

	var b strings.Builder
	for i, item := range items {
		if i >= m.maxRows() {
			b.WriteString(DimStyle.Render(fmt.Sprintf("  ... %d more", len(items)-i)) + "\n")
			break
		}
		b.WriteString(m.renderRow(i, itemLine(item)))
	}
	return b.String()
}

func (m Model) renderBestsellers() string {
	if len(m.records) == 0 {
		return DimStyle.Render("  Nothing here yet.") + "\n"
	}

	var b strings.Builder
	for i, r := range m.records {
		if i >= m.maxRows() {
			b.WriteString(DimStyle.Render(fmt.Sprintf("  ... %d more", len(m.records)-i)) + "\n")
			break
		}
		line := fmt.Sprintf("%2d. %s", r.Rank, r.Title)
		if r.Author != "" {
			line += DimStyle.Render(" by " + r.Author)
		}
		if r.WeeksOnList > 1 {
			line += DimStyle.Render(fmt.Sprintf(" (%d weeks)", r.WeeksOnList))
		}
		if r.Enriched && r.Details.Extra.Rating > 0 {
			line += AccentStyle.Render(fmt.Sprintf(" ★ %.1f", r.Details.Extra.Rating))
		}
		b.WriteString(m.renderRow(i, line))
	}
	return b.String()
}

func (m Model) renderRow(i int, line string) string {
	marker := "  "
	if m.view == ViewBestsellers {
		if i < len(m.records) && m.records[i].Enriched && m.Lists.Contains(m.records[i].Details.Key()) {
			marker = SavedDot + " "
		}
	} else if items := m.visibleItems(); i < len(items) && m.Lists.Contains(items[i].Key()) {
		marker = SavedDot + " "
	}

	if i == m.cursor {
		return marker + SelectedStyle.Render(line) + "\n"
	}
	return marker + line + "\n"
}

// itemLine formats one catalog item as a list row
func itemLine(item domain.CatalogItem) string {
	line := item.Title
	switch item.Kind {
	case domain.KindBook:
		if item.Extra.Author != "" {
			line += DimStyle.Render(" by " + item.Extra.Author)
		}
	default:
		if year := releaseYear(item.ReleaseDate); year != "" {
			line += DimStyle.Render(" (" + year + ")")
		}
	}
	line += DimStyle.Render("  " + string(item.Kind))
	return line
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

func (m Model) maxRows() int {
	if m.height == 0 {
		return 20
	}
	// tabs + header + blank + footer
	rows := m.height - 6
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m Model) renderFooter() string {
	if m.status != "" {
		if m.statusErr {
			return ErrorStyle.Render("  " + m.status)
		}
		return SuccessStyle.Render("  " + m.status)
	}

	help := "1-6 screens · ↑/↓ move · space save/remove · q quit"
	switch m.view {
	case ViewSearch:
		help = "/ search · tab category · f filter · " + help
	case ViewForYou:
		help = "g genre · r refresh · " + help
	case ViewBestsellers:
		help = "tab list · r reload · " + help
	case ViewLibrary:
		help = "/ filter · tab kind · " + help
	}
	return DimStyle.Render("  " + help)
}
