package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// BgStyle paints text on a fixed background. lipgloss resets the background
// after every styled segment, so spaces between segments would otherwise
// show the terminal's own color.
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle creates a helper for the given background color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render styles text word by word and joins the words with painted spaces.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return style.Render(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns one painted space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n painted spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Join joins already rendered parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// FillLine pads rendered content to width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}

// overlayRight writes block over the bottom-right corner of base, leaving
// bottom rows untouched. Both are multi-line rendered strings.
func overlayRight(base, block string, width, bottom int) string {
	if block == "" {
		return base
	}
	lines := strings.Split(base, "\n")
	blockLines := strings.Split(block, "\n")
	blockWidth := lipgloss.Width(block)
	left := max(width-blockWidth, 0)

	start := len(lines) - bottom - len(blockLines)
	for i, bl := range blockLines {
		row := start + i
		if row < 0 || row >= len(lines) {
			continue
		}
		prefix := ansi.Truncate(lines[row], left, "")
		if pad := left - ansi.StringWidth(prefix); pad > 0 {
			prefix += strings.Repeat(" ", pad)
		}
		lines[row] = prefix + bl
	}
	return strings.Join(lines, "\n")
}
