package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lector/internal/catalog"
	"github.com/five82/lector/internal/library"
)

// handleAuthorsKey processes list keys on the author screen.
func (m Model) handleAuthorsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.authorView.List.Records
	if sel, ok := m.moveSelection(msg, m.selectedAuthor, len(records)); ok {
		m.selectedAuthor = sel
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.New):
		mode := m.authors.ToggleForm()
		m.authorForm.reset()
		m.syncViews()
		if mode == library.FormCreate {
			m.focus = focusForm
			return m, m.authorForm.focusFirst()
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m, m.authorSearch.Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.setNotice(library.Notice{Level: library.LevelInfo, Text: "Reloading authors..."})
		return m, listAuthorsCmd(m.ctx, m.authors)
	}

	return m, nil
}

func (m Model) renderAuthors() string {
	height := m.contentHeight()
	listWidth := m.listWidth()
	sideWidth := m.width - listWidth

	title := fmt.Sprintf("Authors (%d)", len(m.authorView.List.Records))
	list := m.renderTitledBox(title, m.authorListContent(listWidth-2, height-2), listWidth, height, m.focus == focusList)

	sideTitle, side := m.authorSideContent(sideWidth - 2)
	pane := m.renderTitledBox(sideTitle, side, sideWidth, height, m.focus != focusList)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, pane)
}

func (m Model) authorListContent(width, height int) string {
	styles := m.theme.Styles()
	snap := m.authorView.List
	if msg, empty := listPlaceholder(snap.Loaded, snap.LastError, len(snap.Records), "authors"); empty {
		return styles.MutedText.Render(msg)
	}

	dateW := 10
	guidW := 13
	nameW := width - dateW - guidW - 4
	if nameW < 8 {
		nameW = 8
	}

	lines := []string{
		styles.FaintText.Bold(true).Render(fit("NAME", nameW) + "  " + fit("BORN", dateW) + "  " + fit("GUID", guidW)),
	}
	visible := height - 1
	start := scrollStart(m.selectedAuthor, visible)
	for i := start; i < len(snap.Records) && i < start+visible; i++ {
		a := snap.Records[i]
		row := fit(a.FullName(), nameW) + "  " + fit(library.DisplayDate(a.BirthDate), dateW) + "  " + fit(truncateMiddle(a.GUID, guidW), guidW)
		if i == m.selectedAuthor {
			lines = append(lines, styles.Selected.Width(width).Render(row))
		} else {
			lines = append(lines, styles.Text.Render(row))
		}
	}
	return strings.Join(lines, "\n")
}

// authorSideContent stacks the always-present search box over either the
// create form or the selected author.
func (m Model) authorSideContent(width int) (string, string) {
	styles := m.theme.Styles()
	view := m.authorView

	var b strings.Builder
	b.WriteString(m.authorSearch.View())
	b.WriteString("\n")
	switch view.Search.Result.Kind {
	case library.LookupFound:
		b.WriteString("\n")
		b.WriteString(m.authorDetail(view.Search.Result.Record, width))
	case library.LookupNotFound:
		b.WriteString(styles.WarningText.Render("No author matches that query."))
	case library.LookupFailed:
		b.WriteString(styles.DangerText.Render(msgLookupFailed))
	default:
		if m.focus == focusSearch {
			b.WriteString(styles.FaintText.Render("enter search  •  ctrl+g GUID  •  ctrl+n name"))
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(width-2, 1))))
	b.WriteString("\n")

	if view.Form.Visible() {
		b.WriteString(styles.AccentText.Bold(true).Render("New author"))
		b.WriteString("\n\n")
		b.WriteString(m.authorForm.view(styles, m.focus == focusForm))
		b.WriteString("\n\n")
		b.WriteString(formHint(styles, view.Busy))
		return "Author", b.String()
	}

	records := view.List.Records
	if m.selectedAuthor < len(records) {
		b.WriteString(m.authorDetail(records[m.selectedAuthor], width))
	} else {
		b.WriteString(styles.FaintText.Render("n: add an author"))
	}
	return "Author", b.String()
}

func (m Model) authorDetail(a catalog.Author, width int) string {
	styles := m.theme.Styles()
	books := 0
	for _, book := range m.bookView.List.Records {
		if strings.EqualFold(book.AuthorRef, a.GUID) {
			books++
		}
	}
	rows := []struct{ label, value string }{
		{"Name", a.FullName()},
		{"Born", library.DisplayDate(a.BirthDate)},
		{"GUID", truncateMiddle(a.GUID, width-12)},
		{"Books", fmt.Sprintf("%d", books)},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, styles.MutedText.Render(padRight(r.label, 11))+styles.Text.Render(orDash(r.value)))
	}
	return strings.Join(lines, "\n")
}
