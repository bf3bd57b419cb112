package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/storefront"
)

type ordersState struct {
	cursor int
}

// handleOrdersKey processes keyboard input for the orders screen.
func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snapshot.Account.Orders)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.orders.cursor > 0 {
			m.orders.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.orders.cursor < n-1 {
			m.orders.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.orders.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.orders.cursor = max(n-1, 0)
	}
	return m, nil
}

// accountGate returns the line to show instead of account data, if any:
// signed out, still loading, or failed.
func (m Model) accountGate(styles Styles, bg BgStyle, what string) (string, bool) {
	if m.session == nil || !m.session.SignedIn() {
		return bg.Render(fmt.Sprintf("Sign in to see your %s. Press s.", what), styles.MutedText), true
	}
	if banner := storefront.AccountError(m.snapshot.LastError); banner != "" && !m.snapshot.HasAccount {
		return bg.Render("! "+banner, styles.DangerText), true
	}
	if !m.snapshot.HasAccount {
		return bg.Render(m.spinner.View()+" Loading "+what+"...", styles.MutedText), true
	}
	return "", false
}

// renderOrders renders the signed-in user's orders.
func (m Model) renderOrders() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	inner := max(m.width-2, 0)
	height := m.contentHeight()
	title := "Orders"

	if gate, blocked := m.accountGate(styles, bg, "orders"); blocked {
		return m.renderTitledBox(title, gate, m.width, height, true)
	}

	orders := m.snapshot.Account.Orders
	title = fmt.Sprintf("Orders (%d)", m.snapshot.Account.OrdersCount)
	if len(orders) == 0 {
		return m.renderTitledBox(title, bg.Render("No orders yet.", styles.MutedText), m.width, height, true)
	}

	var lines []string
	if banner := storefront.AccountError(m.snapshot.LastError); banner != "" {
		lines = append(lines, bg.Render("! "+banner, styles.DangerText), "")
	}
	cursor := clampCursor(m.orders.cursor, len(orders))
	start, end := listWindow(len(orders), cursor, max(height-2-len(lines), 1))
	for i := start; i < end; i++ {
		lines = append(lines, m.renderOrderRow(orders[i], i == cursor, inner, styles, bg))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

func (m Model) renderOrderRow(o api.Order, selected bool, inner int, styles Styles, bg BgStyle) string {
	status := o.Status
	if status == "" {
		status = "pending"
	}
	parts := []string{
		bg.Render(ternary(selected, "▸", " "), styles.AccentText),
		bg.Render("#"+truncateMiddle(o.ID, 10), styles.MutedText),
		bg.Render(padRight(formatOrderDate(o.CreatedAt), 16), styles.FaintText),
		styles.StatusStyle(status).Render(titleCase(status)),
		bg.Render(formatPrice(o.TotalAmount), styles.SuccessText),
		bg.Render(truncate(summarizeItems(o.Items), max(inner-60, 10)), styles.Text),
	}
	return bg.FillLine(bg.Join(parts, " "), inner)
}

// formatOrderDate shortens the backend's ISO timestamp.
func formatOrderDate(raw string) string {
	if raw == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return truncate(raw, 16)
	}
	return t.Local().Format("2006-01-02 15:04")
}

// summarizeItems renders "2× Margherita, 1× Tacos".
func summarizeItems(items []api.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		parts = append(parts, fmt.Sprintf("%d× %s", qty, it.Name))
	}
	return strings.Join(parts, ", ")
}
