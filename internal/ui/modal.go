package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmMsg carries the answer of a confirmModal.
type confirmMsg struct {
	action string
	yes    bool
}

// confirmModal asks a yes/no question. Nothing happens until the user
// answers; any key other than yes or no is ignored.
type confirmModal struct {
	action   string
	title    string
	question string
}

func newConfirmModal(action, title, question string) confirmModal {
	return confirmModal{action: action, title: title, question: question}
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		return c, c.answer(true), true
	case key.Matches(keyMsg, keys.No), keyMsg.String() == "ctrl+c":
		return c, c.answer(false), true
	}
	return c, nil, false
}

func (c confirmModal) answer(yes bool) tea.Cmd {
	action := c.action
	return func() tea.Msg { return confirmMsg{action: action, yes: yes} }
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(c.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 36)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.question))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("This cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y") + styles.FaintText.Render(": Delete  •  ") +
		styles.AccentText.Render("n/esc") + styles.FaintText.Render(": Keep"))

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(44).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
