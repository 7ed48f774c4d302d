package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lector/internal/library"
	"github.com/five82/lector/internal/prefs"
)

// View represents the current active view.
type View int

const (
	ViewBooks View = iota
	ViewAuthors
	ViewDiagnostics
)

func (v View) String() string {
	switch v {
	case ViewAuthors:
		return "Authors"
	case ViewDiagnostics:
		return "Log"
	default:
		return "Books"
	}
}

// focusArea says which part of the current view receives keys.
type focusArea int

const (
	focusList focusArea = iota
	focusForm
	focusSearch
)

// noticeTTL is how long info and success notices stay on screen.
const noticeTTL = 6 * time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Books     *library.Books
	Authors   *library.Authors
	LogPath   string
	PollTick  time.Duration
	ThemeName string
	StartView string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	books     *library.Books
	authors   *library.Authors
	logPath   string
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	focus       focusArea
	width       int
	height      int
	ready       bool

	// Data state, copied out of the controllers after every message
	bookView       library.BooksView
	authorView     library.AuthorsView
	selectedBook   int
	selectedAuthor int

	// Inputs
	bookForm     fieldSet
	authorForm   fieldSet
	bookSearch   textinput.Model
	authorSearch textinput.Model

	notice   library.Notice
	noticeAt time.Time

	modal    Modal
	showHelp bool

	diag diagState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	startView := ViewBooks
	if strings.EqualFold(strings.TrimSpace(opts.StartView), prefs.ViewAuthors) {
		startView = ViewAuthors
	}

	m := Model{
		ctx:         ctx,
		books:       opts.Books,
		authors:     opts.Authors,
		logPath:     opts.LogPath,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: startView,
		bookForm: newFieldSet(
			// Room past 35 so an over-long title gets the length warning.
			fieldSpec{label: "Title", placeholder: "up to 35 characters", limit: 80},
			fieldSpec{label: "Published", placeholder: "2024-05-01 or 2024-05-01T09:30", limit: 40},
			fieldSpec{label: "Author GUID", placeholder: "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx", limit: 64},
		),
		authorForm: newFieldSet(
			fieldSpec{label: "First name", limit: 80},
			fieldSpec{label: "Last name", limit: 80},
			fieldSpec{label: "Birth date", placeholder: "1965-07-31", limit: 40},
		),
		bookSearch:   newSearchInput("book id"),
		authorSearch: newSearchInput("GUID or full name"),
		diag:         newDiagState(),
	}
	m.syncViews()
	return m
}

func newSearchInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		listBooksCmd(m.ctx, m.books),
		listAuthorsCmd(m.ctx, m.authors),
	}
	if m.logPath != "" {
		cmds = append(cmds, loadLogCmd(m.logPath))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case listedMsg:
		m.syncViews()
		return m, nil

	case actionMsg:
		return m.handleAction(msg)

	case lookupMsg:
		return m.handleLookup(msg)

	case confirmMsg:
		return m.handleConfirm(msg)

	case logLoadedMsg:
		m.diag.apply(msg)
		return m, nil
	}

	return m.forwardInput(msg)
}

// forwardInput passes cursor blinks and other input messages to whichever
// text input has focus.
func (m Model) forwardInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus == focusForm && m.currentView == ViewAuthors:
		cmd = m.authorForm.update(msg)
	case m.focus == focusForm:
		cmd = m.bookForm.update(msg)
	case m.focus == focusSearch && m.currentView == ViewAuthors:
		m.authorSearch, cmd = m.authorSearch.Update(msg)
	case m.focus == focusSearch:
		m.bookSearch, cmd = m.bookSearch.Update(msg)
	case m.diag.filtering:
		m.diag.filter, cmd = m.diag.filter.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey routes keyboard input. Modal and help overlays come first, then
// whichever text input has focus, then global and view keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		m.savePrefs()
		return m, tea.Quit
	}

	switch m.focus {
	case focusForm:
		return m.handleFormKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	}
	if m.currentView == ViewDiagnostics && m.diag.filtering {
		return m.handleDiagFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ViewBooks):
		return m.switchView(ViewBooks)

	case key.Matches(msg, m.keys.ViewAuthors):
		return m.switchView(ViewAuthors)

	case key.Matches(msg, m.keys.ViewDiagnostics):
		return m.switchView(ViewDiagnostics)

	case key.Matches(msg, m.keys.Tab):
		return m.switchView((m.currentView + 1) % 3)

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView((m.currentView + 2) % 3)
	}

	switch m.currentView {
	case ViewBooks:
		return m.handleBooksKey(msg)
	case ViewAuthors:
		return m.handleAuthorsKey(msg)
	case ViewDiagnostics:
		return m.handleDiagKey(msg)
	}
	return m, nil
}

// switchView changes view. A view with an open form gets its form focused
// again so the user can carry on typing.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.focus = focusList
	m.syncViews()
	switch v {
	case ViewBooks:
		if m.bookView.Form.Visible() {
			m.focus = focusForm
			return m, m.bookForm.focusAt(m.bookForm.focus)
		}
	case ViewAuthors:
		if m.authorView.Form.Visible() {
			m.focus = focusForm
			return m, m.authorForm.focusAt(m.authorForm.focus)
		}
	case ViewDiagnostics:
		if m.logPath != "" {
			return m, loadLogCmd(m.logPath)
		}
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}

	m.syncViews()
	if !m.notice.IsZero() && m.notice.Level <= library.LevelSuccess && now.Sub(m.noticeAt) > noticeTTL {
		m.notice = library.Notice{}
	}

	if m.currentView == ViewDiagnostics && m.logPath != "" {
		cmds = append(cmds, loadLogCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	m.setNotice(msg.notice)
	m.syncViews()

	// A successful save hides the form in the controller; follow it.
	switch msg.view {
	case ViewBooks:
		if !m.bookView.Form.Visible() {
			m.bookForm.reset()
			if m.currentView == ViewBooks && m.focus == focusForm {
				m.focus = focusList
			}
		}
	case ViewAuthors:
		if !m.authorView.Form.Visible() {
			m.authorForm.reset()
			if m.currentView == ViewAuthors && m.focus == focusForm {
				m.focus = focusList
			}
		}
	}
	return m, nil
}

func (m Model) handleLookup(msg lookupMsg) (tea.Model, tea.Cmd) {
	m.syncViews()
	if msg.err != nil {
		m.setNotice(library.NoticeFor(msg.err, msgLookupFailed))
		return m, nil
	}

	var kind library.LookupKind
	noun := "book"
	switch msg.view {
	case ViewBooks:
		kind = m.bookView.Search.Result.Kind
	case ViewAuthors:
		kind = m.authorView.Search.Result.Kind
		noun = "author"
	}

	// LookupNone means the search was reset while the request was out.
	switch kind {
	case library.LookupFound:
		m.setNotice(library.Notice{Level: library.LevelSuccess, Text: "Found " + noun})
	case library.LookupNotFound:
		m.setNotice(library.Notice{Level: library.LevelWarn, Text: "No " + noun + " matches that query"})
	case library.LookupFailed:
		m.setNotice(library.Notice{Level: library.LevelError, Text: msgLookupFailed})
	}
	return m, nil
}

func (m Model) handleConfirm(msg confirmMsg) (tea.Model, tea.Cmd) {
	if msg.action != actionDeleteBook {
		return m, nil
	}
	if !msg.yes {
		m.books.CancelRemove()
		m.syncViews()
		m.setNotice(library.Notice{Level: library.LevelInfo, Text: "Delete cancelled"})
		return m, nil
	}
	m.setNotice(library.Notice{Level: library.LevelInfo, Text: "Deleting book..."})
	return m, removeBookCmd(m.ctx, m.books)
}

// syncViews copies controller state into the model so View never locks.
func (m *Model) syncViews() {
	if m.books != nil {
		m.bookView = m.books.Snapshot()
		m.selectedBook = clampIndex(m.selectedBook, len(m.bookView.List.Records))
	}
	if m.authors != nil {
		m.authorView = m.authors.Snapshot()
		m.selectedAuthor = clampIndex(m.selectedAuthor, len(m.authorView.List.Records))
	}
}

func (m *Model) setNotice(n library.Notice) {
	m.notice = n
	m.noticeAt = time.Now()
}

// layout sizes inputs and viewports after a resize.
func (m *Model) layout() {
	side := m.width - m.listWidth() - 4
	m.bookForm.setWidth(side - 16)
	m.authorForm.setWidth(side - 16)
	m.bookSearch.Width = side - 6
	m.authorSearch.Width = side - 6
	m.diag.resize(m.width-2, m.contentHeight()-2)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	start := prefs.ViewBooks
	if m.currentView == ViewAuthors {
		start = prefs.ViewAuthors
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, StartView: start}); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// contentHeight is the space left under the header, command bar and
// notice line.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 3 {
		return 3
	}
	return h
}

// listWidth is the width of the record list; the side pane gets the rest.
func (m Model) listWidth() int {
	return m.width * 3 / 5
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderNotice())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBooks:
		return m.renderBooks()
	case ViewAuthors:
		return m.renderAuthors()
	case ViewDiagnostics:
		return m.renderDiagnostics()
	default:
		return ""
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
