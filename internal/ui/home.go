package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodbites/internal/route"
	"github.com/five82/foodbites/internal/storefront"
)

// homeState holds the dashboard's search box and result selection.
type homeState struct {
	input  textinput.Model
	cursor int
}

func newHomeState() homeState {
	return homeState{input: newSearchInput("What are you craving?")}
}

// handleHomeKey processes keyboard input for the dashboard.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := m.dash.Results()
	m.home.cursor = clampCursor(m.home.cursor, len(results))

	switch {
	case key.Matches(msg, m.keys.Search):
		cmd := m.home.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleType):
		cmd := m.dash.ToggleKind()
		m.savePrefs()
		return m, cmd

	case key.Matches(msg, m.keys.Confirm):
		loc, ok := m.dash.ResultLocation(m.home.cursor)
		if !ok {
			loc, ok = m.dash.SubmitLocation()
		}
		if !ok {
			return m, nil
		}
		cmd := m.navigate(loc, false)
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.home.cursor > 0 {
			m.home.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.home.cursor < len(results)-1 {
			m.home.cursor++
		}
	}
	return m, nil
}

// handleHomeInput feeds the dashboard search box. Each change issues a new
// search; enter submits to the menu.
func (m Model) handleHomeInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.home.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.home.input.Blur()
		loc, ok := m.dash.SubmitLocation()
		if !ok {
			return m, nil
		}
		cmd := m.navigate(loc, false)
		return m, cmd
	}

	before := m.home.input.Value()
	var cmd tea.Cmd
	m.home.input, cmd = m.home.input.Update(msg)
	if after := m.home.input.Value(); after != before {
		m.home.cursor = 0
		return m, tea.Batch(cmd, m.dash.SetSearch(after, m.dash.Kind()))
	}
	return m, cmd
}

// renderHome renders the dashboard.
func (m Model) renderHome() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	inner := max(m.width-2, 0)

	var lines []string
	lines = append(lines, bg.Render(m.welcomeLine(), styles.Text.Bold(true)))

	if m.session != nil && m.session.SignedIn() {
		if banner := storefront.AccountError(m.snapshot.LastError); banner != "" {
			lines = append(lines, bg.Render("! "+banner, styles.DangerText))
		}
		if m.snapshot.HasAccount {
			lines = append(lines, bg.Render("Orders placed:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprint(m.snapshot.Account.OrdersCount), styles.AccentText))
		}
	} else {
		lines = append(lines, bg.Render("Press s to sign in and see your orders.", styles.MutedText))
	}
	lines = append(lines, "")

	lines = append(lines, m.renderSearchBar(styles, bg))
	if errText := m.dash.Err(); errText != "" {
		lines = append(lines, bg.Render("! "+errText, styles.DangerText))
	}

	results := m.dash.Results()
	cursor := clampCursor(m.home.cursor, len(results))
	switch {
	case m.dash.Loading():
		lines = append(lines, bg.Render(m.spinner.View()+" Searching...", styles.MutedText))
	case m.dash.Term() != "" && len(results) == 0 && m.dash.Err() == "":
		lines = append(lines, bg.Render("No results.", styles.FaintText))
	default:
		room := max(m.contentHeight()-len(lines)-6, 1)
		start, end := listWindow(len(results), cursor, room)
		for i := start; i < end; i++ {
			r := results[i]
			marker := ternary(i == cursor, "▸ ", "  ")
			nameStyle := styles.Text
			if i == cursor {
				nameStyle = styles.Highlight
			}
			row := bg.Render(marker, styles.AccentText) + bg.Render(r.Emoji, styles.Text) + bg.Space() +
				bg.Render(truncate(r.Name, 40), nameStyle) +
				bg.Spaces(2) + bg.Render(r.Detail, styles.MutedText)
			lines = append(lines, bg.FillLine(row, inner))
		}
	}

	lines = append(lines, "", m.renderQuickLinks(styles, bg))
	return m.renderTitledBox("Home", strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}

func (m Model) welcomeLine() string {
	if m.snapshot.HasAccount && m.snapshot.Account.Profile.Username != "" {
		return fmt.Sprintf("Welcome back, %s!", m.snapshot.Account.Profile.Username)
	}
	return "Welcome to foodbites"
}

// renderSearchBar shows the search box with the food/restaurant toggle.
func (m Model) renderSearchBar(styles Styles, bg BgStyle) string {
	input := m.home.input.View()
	if !m.home.input.Focused() && m.home.input.Value() == "" {
		input = bg.Render("press / to search", styles.FaintText)
	}
	kind := func(label, value string) string {
		if m.dash.Kind() == value {
			return bg.Render("["+label+"]", styles.AccentText.Bold(true))
		}
		return bg.Render(label, styles.FaintText)
	}
	return bg.Render("Search", styles.MutedText) + bg.Space() +
		kind("Food", route.TypeFood) + bg.Space() + kind("Restaurant", route.TypeRestaurant) +
		bg.Space() + bg.Render("(t)", styles.FaintText) + bg.Spaces(2) + input
}

// renderQuickLinks is the dashboard's grid of destinations.
func (m Model) renderQuickLinks(styles Styles, bg BgStyle) string {
	links := []struct{ key, label string }{
		{"2", "Browse the menu"},
		{"3", fmt.Sprintf("Your cart (%d)", len(m.basket.items))},
		{"4", "Your orders"},
		{"5", "Profile"},
	}
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, bg.Render(l.key, styles.WarningText)+bg.Space()+bg.Render(l.label, styles.Text))
	}
	return bg.Join(parts, "   ")
}
