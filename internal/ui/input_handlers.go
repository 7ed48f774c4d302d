package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lector/internal/library"
)

// handleFormKey drives whichever form is open in the current view.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fs := &m.bookForm
	if m.currentView == ViewAuthors {
		fs = &m.authorForm
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		if m.currentView == ViewAuthors {
			m.authors.Cancel()
		} else {
			m.books.Cancel()
		}
		fs.reset()
		m.focus = focusList
		m.syncViews()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()

	case msg.Type == tea.KeyEnter:
		if fs.onLast() {
			return m.submitForm()
		}
		return m, fs.next()

	case key.Matches(msg, m.keys.Tab), msg.Type == tea.KeyDown:
		return m, fs.next()

	case key.Matches(msg, m.keys.ShiftTab), msg.Type == tea.KeyUp:
		return m, fs.prev()
	}

	return m, fs.update(msg)
}

// submitForm runs the pre-flight checks synchronously so problems show up
// at once, and only then hands the request to a command.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewBooks:
		v := m.bookForm.values()
		fields := library.BookFields{Title: v[0], PublishedAt: v[1], AuthorRef: v[2]}
		m.books.SetFields(fields)
		if err := m.books.CheckSubmit(fields); err != nil {
			m.setNotice(library.NoticeFor(err, ""))
			return m, nil
		}
		m.setNotice(library.Notice{Level: library.LevelInfo, Text: "Saving book..."})
		return m, submitBookCmd(m.ctx, m.books, fields)

	case ViewAuthors:
		v := m.authorForm.values()
		fields := library.AuthorFields{FirstName: v[0], LastName: v[1], BirthDate: v[2]}
		if err := m.authors.CheckSubmit(fields); err != nil {
			m.setNotice(library.NoticeFor(err, ""))
			return m, nil
		}
		m.setNotice(library.Notice{Level: library.LevelInfo, Text: "Saving author..."})
		return m, submitAuthorCmd(m.ctx, m.authors, fields)
	}
	return m, nil
}

// handleSearchKey drives the search box of the current view.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentView == ViewAuthors {
		return m.handleAuthorSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.books.ToggleSearch()
		m.bookSearch.Reset()
		m.bookSearch.Blur()
		m.focus = focusList
		m.syncViews()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		id := strings.TrimSpace(m.bookSearch.Value())
		if id == "" {
			m.setNotice(library.NoticeFor(library.ErrEmptyID, ""))
			return m, nil
		}
		m.setNotice(library.Notice{Level: library.LevelInfo, Text: "Looking up book..."})
		return m, findBookCmd(m.ctx, m.books, id)
	}

	var cmd tea.Cmd
	m.bookSearch, cmd = m.bookSearch.Update(msg)
	m.books.SetSearchID(m.bookSearch.Value())
	return m, cmd
}

func (m Model) handleAuthorSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.authors.ClearSearch()
		m.authorSearch.Reset()
		m.authorSearch.Blur()
		m.focus = focusList
		m.syncViews()
		return m, nil

	case key.Matches(msg, m.keys.ByGUID):
		return m.findAuthor(true)

	case key.Matches(msg, m.keys.ByName):
		return m.findAuthor(false)

	case key.Matches(msg, m.keys.Confirm):
		q := strings.TrimSpace(m.authorSearch.Value())
		return m.findAuthor(library.IsValidIdentifierFormat(q))
	}

	var cmd tea.Cmd
	m.authorSearch, cmd = m.authorSearch.Update(msg)
	m.authors.SetQuery(m.authorSearch.Value())
	return m, cmd
}

func (m Model) findAuthor(byGUID bool) (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.authorSearch.Value())
	switch {
	case q == "":
		m.setNotice(library.NoticeFor(library.ErrEmptyQuery, ""))
		return m, nil
	case byGUID && !library.IsValidIdentifierFormat(q):
		m.setNotice(library.NoticeFor(library.ErrInvalidID, ""))
		return m, nil
	}
	text := "Looking up author by name..."
	if byGUID {
		text = "Looking up author by GUID..."
	}
	m.setNotice(library.Notice{Level: library.LevelInfo, Text: text})
	return m, findAuthorCmd(m.ctx, m.authors, q, byGUID)
}

// moveSelection applies list navigation keys to sel.
func (m Model) moveSelection(msg tea.KeyMsg, sel, count int) (int, bool) {
	if count == 0 {
		return 0, false
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if sel < count-1 {
			sel++
		}
	case key.Matches(msg, m.keys.Up):
		if sel > 0 {
			sel--
		}
	case key.Matches(msg, m.keys.Top):
		sel = 0
	case key.Matches(msg, m.keys.Bottom):
		sel = count - 1
	default:
		return sel, false
	}
	return sel, true
}
