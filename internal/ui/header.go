package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lector/internal/library"
)

// renderHeader renders the status bar: logo, view tabs, record counts and
// the health of both services.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("lector", styles.Logo)}

	for _, v := range []View{ViewBooks, ViewAuthors, ViewDiagnostics} {
		label := v.String()
		if v == m.currentView {
			parts = append(parts, bg.Render("["+label+"]", styles.AccentText.Bold(true)))
		} else {
			parts = append(parts, bg.Render(label, styles.MutedText))
		}
	}

	books := m.bookView.List
	authors := m.authorView.List
	parts = append(parts,
		bg.Render("Books:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", len(books.Records)), styles.Text),
		bg.Render("Authors:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", len(authors.Records)), styles.Text),
	)

	switch {
	case books.IsOffline() || authors.IsOffline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case books.LastError != nil || authors.LastError != nil:
		parts = append(parts, bg.Render("● DEGRADED", styles.WarningText.Bold(true)))
	case books.Loaded && authors.Loaded:
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("Connecting...", styles.WarningText.Bold(true)))
	}

	if m.bookView.Busy || m.authorView.Busy {
		parts = append(parts, bg.Render("saving", styles.InfoText))
	}

	if last := latest(books.LastUpdated, authors.LastUpdated); !last.IsZero() {
		parts = append(parts, bg.Render("updated", styles.FaintText)+bg.Space()+bg.Render(last.Format("15:04:05"), styles.MutedText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(bg.Join(parts, "  ")))
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// renderCommandBar lists the keys that apply right now.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.focus == focusForm:
		commands = []cmd{
			{"ctrl+s", "Save"},
			{"tab", "Next field"},
			{"shift+tab", "Prev field"},
			{"esc", "Cancel"},
		}
	case m.focus == focusSearch && m.currentView == ViewAuthors:
		commands = []cmd{
			{"enter", "Search"},
			{"ctrl+g", "By GUID"},
			{"ctrl+n", "By name"},
			{"esc", "Clear"},
		}
	case m.focus == focusSearch:
		commands = []cmd{
			{"enter", "Find"},
			{"esc", "Close"},
		}
	case m.currentView == ViewAuthors:
		commands = []cmd{
			{"n", "New"},
			{"/", "Search"},
			{"r", "Reload"},
			{"j/k", "Navigate"},
			{"tab", "Next view"},
			{"?", "More"},
		}
	case m.currentView == ViewDiagnostics:
		commands = []cmd{
			{"/", "Filter"},
			{"Space", ternary(m.diag.follow, "Pause", "Follow")},
			{"w", "Timestamps"},
			{"r", "Reload"},
			{"tab", "Next view"},
			{"?", "More"},
		}
	default: // ViewBooks
		commands = []cmd{
			{"n", "New"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"/", "Find"},
			{"r", "Reload"},
			{"j/k", "Navigate"},
			{"tab", "Next view"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render("theme", styles.FaintText)+colon+bg.Render(m.theme.Name, styles.MutedText))

	return bg.FillLine(bg.Space()+bg.Join(segments, "  "), m.width)
}

// renderNotice renders the last notice, or a hint when there is none.
func (m Model) renderNotice() string {
	styles := m.theme.Styles()
	if m.notice.IsZero() {
		return styles.FaintText.Render(" ? for help")
	}
	marker := "•"
	switch m.notice.Level {
	case library.LevelSuccess:
		marker = "✓"
	case library.LevelWarn:
		marker = "!"
	case library.LevelError:
		marker = "✗"
	}
	return styles.NoticeStyle(m.notice.Level).Render(" " + marker + " " + truncate(m.notice.Text, m.width-4))
}
