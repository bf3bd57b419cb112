package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"1-5", "Home/Foods/Cart/Orders/Profile"},
				{"l", "Activity log"},
				{"s / S", "Sign in / sign out"},
				{"b", "Back"},
				{"m", "Menu (narrow terminals)"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
			},
		},
		{
			title: "Search",
			items: []helpItem{
				{"/", "Focus search"},
				{"enter", "Submit / open result"},
				{"esc", "Leave search"},
				{"t", "Food or restaurant (home)"},
			},
		},
		{
			title: "Menu",
			items: []helpItem{
				{"a / enter", "Add to cart"},
				{"c", "Next cuisine"},
				{"r", "Reload"},
			},
		},
		{
			title: "Cart",
			items: []helpItem{
				{"x", "Remove item"},
				{"X", "Empty cart"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"Space", "Follow log (activity)"},
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"e/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
