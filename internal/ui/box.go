package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTitledBox frames content with the title set into the top border:
//
//	┌──── Menu ────┐
//	│ ...          │
//	└──────────────┘
//
// Content lines beyond height-2 are dropped; missing lines are padded.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	inner := max(width-2, 0)
	titleWidth := lipgloss.Width(title)
	if titleWidth+2 > inner {
		title = truncate(title, max(inner-2, 0))
		titleWidth = lipgloss.Width(title)
	}
	leftPad := max((inner-titleWidth-2)/2, 0)
	rightPad := max(inner-titleWidth-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", inner), borderStyle) +
		bg.Render("┘", borderStyle)

	body := lipgloss.NewStyle().Width(inner).MaxWidth(inner).Background(lipgloss.Color(bgColor))
	lines := strings.Split(content, "\n")
	rows := make([]string, 0, max(height-2, 0))
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, bg.Render("│", borderStyle)+body.Render(line)+bg.Render("│", borderStyle))
	}
	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}

// listWindow returns the [start, end) slice of a list of n rows that keeps
// cursor visible in a window of size rows.
func listWindow(n, cursor, size int) (int, int) {
	if size <= 0 || n <= 0 {
		return 0, 0
	}
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	start = max(start, 0)
	if start+size > n {
		start = n - size
	}
	return start, start + size
}
