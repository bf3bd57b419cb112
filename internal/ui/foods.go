package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/foodbites/internal/route"
	"github.com/five82/foodbites/internal/storefront"
)

// foodsState holds the menu screen's search box and selection.
type foodsState struct {
	input  textinput.Model
	cursor int
}

// Rows above the first list row inside the foods box: top border, filter
// line and a blank separator.
const foodsListTop = 3

func newFoodsState() foodsState {
	return foodsState{input: newSearchInput("Search foods...")}
}

// newSearchInput builds a single-line input with a steady cursor.
func newSearchInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// handleFoodsKey processes keyboard input for the menu screen.
func (m Model) handleFoodsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.menu.Visible()
	m.foods.cursor = clampCursor(m.foods.cursor, len(visible))

	switch {
	case key.Matches(msg, m.keys.Search):
		cmd := m.foods.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextCuisine):
		return m, m.menu.SelectCuisine(m.menu.NextCuisine())

	case key.Matches(msg, m.keys.Refresh):
		return m, m.menu.Refresh()

	case key.Matches(msg, m.keys.AddToCart), key.Matches(msg, m.keys.Confirm):
		if len(visible) == 0 {
			return m, nil
		}
		item := visible[m.foods.cursor]
		return m, m.menu.AddToCart(item, m.foodRowPoint(m.foods.cursor, len(visible)), m.cartBadgePoint())

	case key.Matches(msg, m.keys.Up):
		if m.foods.cursor > 0 {
			m.foods.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.foods.cursor < len(visible)-1 {
			m.foods.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.foods.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.foods.cursor = max(len(visible)-1, 0)
	}
	return m, nil
}

// handleFoodsInput feeds the search box. Every change updates the draft,
// which filters the list at once and settles into the location later.
func (m Model) handleFoodsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.foods.input.Blur()
		return m, nil
	}

	before := m.foods.input.Value()
	var cmd tea.Cmd
	m.foods.input, cmd = m.foods.input.Update(msg)
	if after := m.foods.input.Value(); after != before {
		m.foods.cursor = 0
		return m, tea.Batch(cmd, m.menu.Edit(after))
	}
	return m, cmd
}

// followScrollTarget moves the selection onto the highlighted item once the
// menu asks for it to be brought into view.
func (m *Model) followScrollTarget() {
	id := m.menu.ScrollTarget()
	if id == "" {
		return
	}
	for i, item := range m.menu.Visible() {
		if item.ID == id {
			m.foods.cursor = i
			break
		}
	}
	m.menu.ClearScroll()
}

// foodRowPoint is the screen cell of list row i, where a fly-to-cart trail
// starts.
func (m Model) foodRowPoint(i, total int) storefront.Point {
	start, _ := listWindow(total, m.foods.cursor, m.foodsListHeight())
	y := navRows + foodsListTop + (i - start)
	if m.compact() && m.navOpen {
		y += len(navLinks)
	}
	return storefront.Point{X: 2, Y: y}
}

func (m Model) foodsListHeight() int {
	return max(m.contentHeight()-foodsListTop-1, 1)
}

// renderFoods renders the menu screen.
func (m Model) renderFoods() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	width := m.width
	height := m.contentHeight()
	inner := max(width-2, 0)

	visible := m.menu.Visible()
	cursor := clampCursor(m.foods.cursor, len(visible))

	title := "Menu"
	if cuisine := m.menu.Location().Get(route.ParamCuisine); cuisine != "" {
		title += " · " + cuisine
	}
	if !m.menu.InitialLoad() {
		title += fmt.Sprintf(" (%d)", len(visible))
	}
	if m.menu.Loading() && !m.menu.InitialLoad() {
		title += " " + m.spinner.View()
	}

	lines := []string{m.renderFoodsFilters(styles, bg, inner), ""}

	switch {
	case m.menu.InitialLoad() && m.menu.Loading():
		lines = append(lines, bg.Render(m.spinner.View()+" Loading menu...", styles.MutedText))
	case len(visible) == 0 && !m.menu.Loading():
		lines = append(lines, bg.Render(storefront.MsgNoItems, styles.MutedText))
	default:
		start, end := listWindow(len(visible), cursor, m.foodsListHeight())
		for i := start; i < end; i++ {
			lines = append(lines, m.renderFoodRow(visible[i], i == cursor, inner, styles, bg))
		}
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}

// renderFoodsFilters renders the search box and cuisine selector line.
func (m Model) renderFoodsFilters(styles Styles, bg BgStyle, inner int) string {
	search := m.foods.input.View()
	if !m.foods.input.Focused() && m.foods.input.Value() == "" {
		search = bg.Render("press / to search", styles.FaintText)
	}
	cuisine := m.menu.Location().Get(route.ParamCuisine)
	if cuisine == "" {
		cuisine = "All"
	}
	parts := []string{
		bg.Render("Search:", styles.MutedText) + bg.Space() + search,
		bg.Render("Cuisine:", styles.MutedText) + bg.Space() + bg.Render(cuisine, styles.AccentText) +
			bg.Space() + bg.Render("(c)", styles.FaintText),
	}
	if kind := m.menu.Location().Get(route.ParamType); kind != "" {
		parts = append(parts, bg.Render("type:", styles.FaintText)+bg.Space()+bg.Render(kind, styles.MutedText))
	}
	return bg.FillLine(bg.Join(parts, "   "), inner)
}

// renderFoodRow renders one list row: marker, emoji, name, restaurant,
// price, plus the add-to-cart state for the item in flight.
func (m Model) renderFoodRow(item storefront.FoodView, selected bool, inner int, styles Styles, bg BgStyle) string {
	highlighted := item.ID != "" && item.ID == m.menu.Highlighted()

	marker := "  "
	switch {
	case selected:
		marker = "▸ "
	case highlighted:
		marker = "★ "
	}

	nameStyle := styles.Text
	if highlighted {
		nameStyle = styles.Highlight
	}

	price := formatPrice(item.Price)
	status := ""
	if item.ID != "" && item.ID == m.menu.LoadingID() {
		status = m.spinner.View() + " adding"
		if flight := m.menu.Flight(); flight != nil && flight.ItemID == item.ID {
			status = flight.Emoji + " ⇢ 🛒"
		}
	}

	restaurantWidth := 0
	if item.Restaurant != "" && inner >= LayoutCompactWidth-2 {
		restaurantWidth = 22
	}
	descWidth := 0
	if inner >= LayoutDetailWidth-2 {
		descWidth = 40
	}
	nameWidth := max(inner-2-3-restaurantWidth-descWidth-len(price)-14, 10)

	parts := []string{
		bg.Render(marker, styles.AccentText) + bg.Render(item.Emoji, styles.Text) + bg.Space(),
		bg.Render(padRight(truncate(item.Name, nameWidth), nameWidth), nameStyle),
	}
	if restaurantWidth > 0 {
		parts = append(parts, bg.Render(padRight(truncate(item.Restaurant, restaurantWidth), restaurantWidth), styles.MutedText))
	}
	if descWidth > 0 {
		parts = append(parts, bg.Render(padRight(truncate(item.Description, descWidth), descWidth), styles.FaintText))
	}
	parts = append(parts, bg.Render(price, styles.SuccessText))
	if status != "" {
		parts = append(parts, bg.Render(status, styles.WarningText))
	}

	row := bg.Join(parts, " ")
	if selected {
		return lipgloss.NewStyle().Background(lipgloss.Color(m.theme.SelectionBg)).Width(inner).Render(row)
	}
	return bg.FillLine(row, inner)
}

// clampCursor keeps cursor inside a list of n rows.
func clampCursor(cursor, n int) int {
	if n <= 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
