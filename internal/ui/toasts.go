package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodbites/internal/storefront"
)

// renderToasts stacks the live notices, oldest on top. Empty when there are
// none.
func (m Model) renderToasts() string {
	active := m.notices.Active()
	if len(active) == 0 {
		return ""
	}
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	width := min(toastWidth, max(m.width-2, 10))

	boxes := make([]string, 0, len(active))
	for _, n := range active {
		style := styles.NoticeStyle(n.Kind)
		text := bg.Render(noticeIcon(n.Kind), style) + bg.Space() + bg.Render(truncate(n.Text, width-6), styles.Text)
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.GetForeground()).
			BorderBackground(lipgloss.Color(m.theme.SurfaceAlt)).
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Width(width - 2).
			Padding(0, 1).
			Render(text)
		boxes = append(boxes, box)
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

func noticeIcon(kind storefront.NoticeKind) string {
	switch kind {
	case storefront.NoticeSuccess:
		return "✓"
	case storefront.NoticeError:
		return "✗"
	default:
		return "•"
	}
}
