package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question and runs onConfirm on yes.
type confirmModal struct {
	title     string
	body      string
	onConfirm tea.Cmd
}

func newConfirmModal(title, body string, onConfirm tea.Cmd) confirmModal {
	return confirmModal{title: title, body: body, onConfirm: onConfirm}
}

// Update implements Modal.
func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case keyMsg.String() == "y", key.Matches(keyMsg, keys.Confirm):
		return c, c.onConfirm, true
	case keyMsg.String() == "n", key.Matches(keyMsg, keys.Escape):
		return c, nil, true
	}
	return c, nil, false
}

// View implements Modal.
func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.body))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y/enter"))
	b.WriteString(styles.MutedText.Render(" confirm   "))
	b.WriteString(styles.AccentText.Render("n/esc"))
	b.WriteString(styles.MutedText.Render(" cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Warning)).
		Padding(1, 2).
		Width(44).
		Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
