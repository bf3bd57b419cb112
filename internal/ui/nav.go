package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodbites/internal/route"
	"github.com/five82/foodbites/internal/storefront"
)

type navLink struct {
	key   string
	label string
	path  string
}

var navLinks = []navLink{
	{"1", "Home", route.Home},
	{"2", "Menu", route.Foods},
	{"3", "Cart", route.Cart},
	{"4", "Orders", route.Orders},
	{"5", "Profile", route.Profile},
}

const logoText = "🍔 foodbites"

// compact reports whether the nav links collapse behind the menu toggle.
func (m Model) compact() bool {
	return m.width < LayoutCompactWidth
}

// cartBadgeText is what the cart badge shows: the item count, or the
// flying food's emoji while an add is in flight.
func (m Model) cartBadgeText() string {
	if flight := m.menu.Flight(); flight != nil {
		return fmt.Sprintf("%s 🛒 %d", flight.Emoji, m.basket.count())
	}
	return fmt.Sprintf("🛒 %d", m.basket.count())
}

// cartBadgePoint is the screen cell of the cart glyph in the nav, where a
// fly-to-cart trail ends. The badge is right-aligned, so the flight emoji
// shown to its left does not move the glyph.
func (m Model) cartBadgePoint() storefront.Point {
	w := lipgloss.Width(fmt.Sprintf("🛒 %d", m.basket.count())) + 1
	return storefront.Point{X: max(m.width-w, 0), Y: 0}
}

// renderNav renders the top bar: logo, links, session state and cart badge.
func (m Model) renderNav() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	current := m.history.Current().Path

	left := bg.Render(logoText, styles.Logo)
	if m.compact() {
		label := "☰ menu (m)"
		if m.navOpen {
			label = "✕ close (m)"
		}
		left += bg.Spaces(2) + bg.Render(label, styles.MutedText)
	} else {
		for _, link := range navLinks {
			left += bg.Spaces(2) + m.renderNavLink(link, link.path == current, styles, bg)
		}
	}

	var right []string
	if m.snapshot.IsOffline() {
		right = append(right, bg.Render("offline", styles.DangerText))
	}
	switch {
	case m.session == nil || !m.session.SignedIn():
		right = append(right, bg.Render("s sign in", styles.FaintText))
	case m.snapshot.HasAccount && m.snapshot.Account.Profile.Username != "":
		right = append(right, bg.Render("● "+m.snapshot.Account.Profile.Username, styles.SuccessText))
	default:
		right = append(right, bg.Render("● signed in", styles.SuccessText))
	}
	badgeStyle := styles.AccentText
	if m.menu.Flight() != nil {
		badgeStyle = styles.Highlight
	}
	right = append(right, bg.Render(m.cartBadgeText(), badgeStyle))

	rightText := bg.Join(right, "  ")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(rightText)-1, 1)
	return bg.FillLine(left+bg.Spaces(gap)+rightText+bg.Space(), m.width)
}

func (m Model) renderNavLink(link navLink, active bool, styles Styles, bg BgStyle) string {
	if active {
		return bg.Render(link.key, styles.WarningText) + bg.Space() + bg.Render(link.label, styles.AccentText.Bold(true).Underline(true))
	}
	return bg.Render(link.key, styles.FaintText) + bg.Space() + bg.Render(link.label, styles.Text)
}

// renderNavMenu renders the collapsed links as a vertical list.
func (m Model) renderNavMenu() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	current := m.history.Current().Path

	lines := make([]string, 0, len(navLinks))
	for _, link := range navLinks {
		marker := ternary(link.path == current, "▸ ", "  ")
		lines = append(lines, bg.FillLine(bg.Render(marker, styles.AccentText)+m.renderNavLink(link, link.path == current, styles, bg), m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
