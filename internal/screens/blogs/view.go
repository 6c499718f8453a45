package blogs

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/ui/theme"
)

func (s *BlogsScreen) View(width, height int) string {
	if s.filtering {
		return s.renderSourceFilter(width)
	}

	var b strings.Builder

	b.WriteString(s.renderQueryBar(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0))))
	b.WriteString("\n")

	items := s.ctrl.Items()
	if len(items) == 0 {
		if s.ctrl.Loading() {
			b.WriteString(theme.Hint.Render("  Loading posts..."))
		} else {
			b.WriteString(theme.Hint.Render("  No posts match this search."))
		}
		return b.String()
	}

	// Window the list around the cursor.
	rows := max(height-4, 1)
	start := 0
	if s.cursor >= rows {
		start = s.cursor - rows + 1
	}
	end := min(start+rows, len(items))

	for i := start; i < end; i++ {
		post := items[i]
		line := fmt.Sprintf("%s  %s", post.Title, theme.Hint.Render(post.TechBlogName))

		style := theme.Unselected
		prefix := "  "
		if s.read[post.ID] {
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		if i == s.cursor {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix + line))
		b.WriteString("\n")

		if i == s.cursor && s.expanded {
			var cats []string
			for _, c := range post.Categories {
				cats = append(cats, c.Name)
			}
			b.WriteString(s.renderDetail(post.Description, post.ViewCount, cats, width))
		}
	}

	if s.ctrl.Loading() {
		b.WriteString(theme.Hint.Render("  Loading more..."))
	} else if s.ctrl.Exhausted() {
		b.WriteString(theme.Hint.Render("  End of results."))
	}

	return b.String()
}

func (s *BlogsScreen) renderQueryBar(width int) string {
	q := s.ctrl.Query()

	search := "Search: "
	if s.searching {
		search += s.input.View()
	} else if q.Search != "" {
		search += q.Search
	} else {
		search += theme.Hint.Render("(press / to search)")
	}

	filter := "All sources"
	if n := len(q.Sources); n > 0 {
		filter = fmt.Sprintf("%d sources", n)
	}

	right := theme.Hint.Render(fmt.Sprintf("%s · %s", q.Sort.Label(), filter))
	gap := width - lipgloss.Width(search) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return "  " + search + strings.Repeat(" ", gap) + right
}

func (s *BlogsScreen) renderDetail(description string, views int64, categories []string, width int) string {
	var b strings.Builder

	desc := description
	if desc == "" {
		desc = "(no description)"
	}
	meta := fmt.Sprintf("%d views", views)
	if len(categories) > 0 {
		meta += " · " + strings.Join(categories, ", ")
	}

	box := theme.Card.Width(max(width-8, 10)).Render(
		lipgloss.NewStyle().Foreground(theme.Text).Render(desc) + "\n" +
			theme.Hint.Render(meta))
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(box))
	b.WriteString("\n")
	return b.String()
}

func (s *BlogsScreen) renderSourceFilter(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Filter by source"))
	b.WriteString("\n\n")

	if len(s.sources) == 0 {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("No sources available."))
		return b.String()
	}

	var rows []string
	for i, src := range s.sources {
		mark := "[ ]"
		if s.selected[src.Name] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, src.Title)
		if i == s.filterCursor {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = theme.Unselected.Render("  " + line)
		}
		rows = append(rows, line)
	}

	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(strings.Join(rows, "\n")))
	return b.String()
}
