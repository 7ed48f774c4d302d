package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lector/internal/logtail"
)

// diagState holds the diagnostics view: the tail of lector's own log file.
type diagState struct {
	viewport  viewport.Model
	entries   []logtail.Entry
	err       error
	follow    bool
	showTime  bool
	filtering bool
	filter    textinput.Model
	query     string
}

func newDiagState() diagState {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "text to match"
	ti.CharLimit = 80
	return diagState{
		viewport: viewport.New(80, 20),
		follow:   true,
		showTime: true,
		filter:   ti,
	}
}

func (d *diagState) resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	d.viewport.Width = width
	d.viewport.Height = height
	d.viewport.SetContent(d.render())
}

func (d *diagState) apply(msg logLoadedMsg) {
	d.err = msg.err
	if msg.err == nil {
		d.entries = msg.entries
	}
	d.viewport.SetContent(d.render())
	if d.follow {
		d.viewport.GotoBottom()
	}
}

// visible returns the entries that pass the active filter.
func (d diagState) visible() []logtail.Entry {
	return logtail.Filter(d.entries, d.query)
}

func (d diagState) render() string {
	if d.err != nil {
		return "Could not read log: " + d.err.Error()
	}
	entries := d.visible()
	if len(entries) == 0 {
		if d.query != "" {
			return "No log lines match " + d.query
		}
		return "Nothing logged yet."
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if d.showTime && !e.Time.IsZero() {
			lines = append(lines, e.Time.Format("15:04:05")+"  "+e.Message)
			continue
		}
		lines = append(lines, e.Message)
	}
	return strings.Join(lines, "\n")
}

func (m Model) handleDiagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.diag
	switch {
	case key.Matches(msg, m.keys.Search):
		d.filtering = true
		d.filter.SetValue(d.query)
		d.filter.CursorEnd()
		return m, d.filter.Focus()

	case key.Matches(msg, m.keys.ToggleWrap):
		d.showTime = !d.showTime
		d.viewport.SetContent(d.render())
		return m, nil

	case msg.String() == " ":
		d.follow = !d.follow
		if d.follow {
			d.viewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.logPath != "" {
			return m, loadLogCmd(m.logPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		d.follow = false
		d.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		d.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		d.viewport.ScrollDown(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		d.follow = false
		d.viewport.ScrollUp(1)
		return m, nil
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleDiagFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.diag
	switch msg.Type {
	case tea.KeyEsc:
		d.query = ""
		d.filter.Reset()
	case tea.KeyEnter:
		d.query = strings.TrimSpace(d.filter.Value())
	default:
		var cmd tea.Cmd
		d.filter, cmd = d.filter.Update(msg)
		return m, cmd
	}
	d.filtering = false
	d.filter.Blur()
	d.viewport.SetContent(d.render())
	d.viewport.GotoBottom()
	return m, nil
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	title := "Log"
	if m.logPath != "" {
		title = "Log " + truncateMiddle(m.logPath, m.width/2)
	}
	if m.diag.query != "" {
		title += "  /" + truncate(m.diag.query, 18)
	}

	body := m.diag.viewport.View()
	if m.diag.filtering {
		lines := strings.Split(body, "\n")
		if len(lines) > 0 {
			lines = lines[:len(lines)-1]
		}
		body = m.diag.filter.View() + "\n" + strings.Join(lines, "\n")
	}
	if m.logPath == "" {
		body = styles.MutedText.Render("Logging is disabled.")
	}

	follow := ternary(m.diag.follow, "following", "paused")
	return m.renderTitledBox(title+"  ["+follow+"]", body, m.width, height, true)
}
