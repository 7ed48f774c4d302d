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

// handleBooksKey processes list keys on the book screen.
func (m Model) handleBooksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.bookView.List.Records
	if sel, ok := m.moveSelection(msg, m.selectedBook, len(records)); ok {
		m.selectedBook = sel
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.New):
		switch m.books.ToggleNew() {
		case library.FormCreate:
			m.bookForm.reset()
			m.focus = focusForm
			m.syncViews()
			return m, m.bookForm.focusFirst()
		case library.FormHidden:
			m.bookForm.reset()
		case library.FormEdit:
			m.setNotice(library.Notice{Level: library.LevelInfo, Text: "Finish or cancel the edit first"})
		}
		m.syncViews()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		book, ok := m.selectedBookRecord()
		if !ok {
			return m, nil
		}
		m.books.Edit(book)
		f := library.BookFieldsFrom(book)
		m.bookForm.setValues(f.Title, f.PublishedAt, f.AuthorRef)
		m.focus = focusForm
		m.syncViews()
		return m, m.bookForm.focusFirst()

	case key.Matches(msg, m.keys.Delete):
		book, ok := m.selectedBookRecord()
		if !ok {
			return m, nil
		}
		if err := m.books.RequestRemove(book.ID); err != nil {
			m.setNotice(library.NoticeFor(err, ""))
			return m, nil
		}
		m.syncViews()
		m.modal = newConfirmModal(actionDeleteBook, "Delete book",
			fmt.Sprintf("Delete %q?", truncate(book.Title, 30)))
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.books.ToggleSearch()
		m.bookSearch.Reset()
		m.syncViews()
		if m.bookView.Search.Visible {
			m.focus = focusSearch
			return m, m.bookSearch.Focus()
		}
		m.bookSearch.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.setNotice(library.Notice{Level: library.LevelInfo, Text: "Reloading books..."})
		return m, listBooksCmd(m.ctx, m.books)
	}

	return m, nil
}

func (m Model) selectedBookRecord() (catalog.Book, bool) {
	records := m.bookView.List.Records
	if m.selectedBook < 0 || m.selectedBook >= len(records) {
		return catalog.Book{}, false
	}
	return records[m.selectedBook], true
}

// authorNames maps author GUIDs to display names for the book list.
func (m Model) authorNames() map[string]string {
	names := make(map[string]string, len(m.authorView.List.Records))
	for _, a := range m.authorView.List.Records {
		names[strings.ToLower(a.GUID)] = a.FullName()
	}
	return names
}

func (m Model) renderBooks() string {
	height := m.contentHeight()
	listWidth := m.listWidth()
	sideWidth := m.width - listWidth

	title := fmt.Sprintf("Books (%d)", len(m.bookView.List.Records))
	list := m.renderTitledBox(title, m.bookListContent(listWidth-2, height-2), listWidth, height, m.focus == focusList)

	sideTitle, side := m.bookSideContent(sideWidth - 2)
	pane := m.renderTitledBox(sideTitle, side, sideWidth, height, m.focus != focusList)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, pane)
}

// bookListContent renders the table of books, scrolled to keep the
// selection visible.
func (m Model) bookListContent(width, height int) string {
	styles := m.theme.Styles()
	snap := m.bookView.List
	if msg, empty := listPlaceholder(snap.Loaded, snap.LastError, len(snap.Records), "books"); empty {
		return styles.MutedText.Render(msg)
	}

	dateW := 10
	authorW := width / 3
	titleW := width - dateW - authorW - 4
	if titleW < 8 {
		titleW = 8
	}

	names := m.authorNames()
	lines := []string{
		styles.FaintText.Bold(true).Render(fit("TITLE", titleW) + "  " + fit("PUBLISHED", dateW) + "  " + fit("AUTHOR", authorW)),
	}

	visible := height - 1
	start := scrollStart(m.selectedBook, visible)
	for i := start; i < len(snap.Records) && i < start+visible; i++ {
		book := snap.Records[i]
		author := names[strings.ToLower(book.AuthorRef)]
		if author == "" {
			author = truncateMiddle(book.AuthorRef, authorW)
		}
		row := fit(book.Title, titleW) + "  " + fit(library.DisplayDate(book.PublishedAt), dateW) + "  " + fit(orDash(author), authorW)
		if i == m.selectedBook {
			lines = append(lines, styles.Selected.Width(width).Render(row))
		} else {
			lines = append(lines, styles.Text.Render(row))
		}
	}
	return strings.Join(lines, "\n")
}

// bookSideContent renders the form, the search box or the selected book.
func (m Model) bookSideContent(width int) (string, string) {
	styles := m.theme.Styles()
	view := m.bookView

	switch {
	case view.Form.Visible():
		title := "New book"
		var b strings.Builder
		if view.Form.Mode == library.FormEdit {
			title = "Edit book"
			b.WriteString(styles.FaintText.Render("id " + truncateMiddle(view.Form.EditID, width-4)))
			b.WriteString("\n\n")
		}
		b.WriteString(m.bookForm.view(styles, m.focus == focusForm))
		b.WriteString("\n\n")
		b.WriteString(formHint(styles, view.Busy))
		return title, b.String()

	case view.Search.Visible:
		var b strings.Builder
		b.WriteString(m.bookSearch.View())
		b.WriteString("\n\n")
		switch view.Search.Result.Kind {
		case library.LookupFound:
			b.WriteString(m.bookDetail(view.Search.Result.Record, width))
		case library.LookupNotFound:
			b.WriteString(styles.WarningText.Render("No book with that id."))
		case library.LookupFailed:
			b.WriteString(styles.DangerText.Render(msgLookupFailed))
		default:
			b.WriteString(styles.FaintText.Render("Type a book id and press enter."))
		}
		return "Find book", b.String()
	}

	book, ok := m.selectedBookRecord()
	if !ok {
		return "Details", styles.FaintText.Render("n: add a book")
	}
	return "Details", m.bookDetail(book, width)
}

func (m Model) bookDetail(book catalog.Book, width int) string {
	styles := m.theme.Styles()
	author := m.authorNames()[strings.ToLower(book.AuthorRef)]
	rows := []struct{ label, value string }{
		{"Title", book.Title},
		{"Published", library.DisplayDate(book.PublishedAt)},
		{"Author", orDash(author)},
		{"Author id", truncateMiddle(book.AuthorRef, width-12)},
		{"Book id", truncateMiddle(book.ID, width-12)},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, styles.MutedText.Render(padRight(r.label, 11))+styles.Text.Render(orDash(r.value)))
	}
	return strings.Join(lines, "\n")
}

func formHint(styles Styles, busy bool) string {
	if busy {
		return styles.WarningText.Render("Saving...")
	}
	return styles.FaintText.Render("ctrl+s save  •  tab next  •  esc cancel")
}

// listPlaceholder returns the text shown instead of an empty table.
func listPlaceholder(loaded bool, lastErr error, count int, noun string) (string, bool) {
	switch {
	case count > 0:
		return "", false
	case lastErr != nil:
		return fmt.Sprintf("Could not load %s. Press r to retry.", noun), true
	case !loaded:
		return fmt.Sprintf("Loading %s...", noun), true
	default:
		return fmt.Sprintf("No %s yet. Press n to add one.", noun), true
	}
}

// scrollStart keeps sel inside a window of visible rows.
func scrollStart(sel, visible int) int {
	if visible <= 0 || sel < visible {
		return 0
	}
	return sel - visible + 1
}
