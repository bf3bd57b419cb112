package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodbites/internal/cart"
)

// cartState mirrors the local cart for rendering and the nav badge.
type cartState struct {
	items  []cart.Item
	total  float64
	cursor int
	err    error
}

func (c *cartState) apply(msg cartLoadedMsg) {
	c.err = msg.err
	if msg.err != nil {
		return
	}
	c.items = msg.items
	c.total = msg.total
	c.cursor = clampCursor(c.cursor, len(c.items))
}

// count is the badge number: distinct entries, not units.
func (c cartState) count() int {
	return len(c.items)
}

// handleCartKey processes keyboard input for the cart screen.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.basket.items)
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.basket.cursor > 0 {
			m.basket.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.basket.cursor < n-1 {
			m.basket.cursor++
		}
	case key.Matches(msg, m.keys.Remove):
		if n == 0 {
			return m, nil
		}
		item := m.basket.items[clampCursor(m.basket.cursor, n)]
		return m, removeCartItemCmd(m.ctx, m.cart, item.ID)
	case key.Matches(msg, m.keys.ClearCart):
		if n == 0 {
			return m, nil
		}
		m.modal = newConfirmModal("Empty cart?",
			fmt.Sprintf("Remove %s from your cart.", pluralize(n, "item", "items")),
			clearCartCmd(m.ctx, m.cart))
	}
	return m, nil
}

// renderCart renders the cart screen.
func (m Model) renderCart() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	inner := max(m.width-2, 0)
	height := m.contentHeight()

	var lines []string
	switch {
	case m.basket.err != nil:
		lines = append(lines, bg.Render("! Failed to load cart", styles.DangerText))
	case len(m.basket.items) == 0:
		lines = append(lines, bg.Render("Your cart is empty. Press 2 to browse the menu.", styles.MutedText))
	default:
		cursor := clampCursor(m.basket.cursor, len(m.basket.items))
		start, end := listWindow(len(m.basket.items), cursor, max(height-5, 1))
		nameWidth := max(inner-30, 10)
		for i := start; i < end; i++ {
			item := m.basket.items[i]
			marker := ternary(i == cursor, "▸ ", "  ")
			row := bg.Render(marker, styles.AccentText) +
				bg.Render(item.Emoji, styles.Text) + bg.Space() +
				bg.Render(padRight(truncate(item.Name, nameWidth), nameWidth), styles.Text) +
				bg.Render(fmt.Sprintf("×%-3d", item.Quantity), styles.MutedText) + bg.Space() +
				bg.Render(formatPrice(item.Subtotal()), styles.SuccessText)
			lines = append(lines, bg.FillLine(row, inner))
		}
		lines = append(lines, "",
			bg.Render("Total:", styles.MutedText)+bg.Space()+bg.Render(formatPrice(m.basket.total), styles.SuccessText)+
				bg.Spaces(3)+bg.Render("x remove   X empty cart", styles.FaintText))
	}

	title := fmt.Sprintf("Cart (%d)", m.basket.count())
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

func removeCartItemCmd(ctx context.Context, store CartStore, id string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return cartMutatedMsg{action: "remove", err: store.Remove(ctx, id)}
	}
}

func clearCartCmd(ctx context.Context, store CartStore) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return cartMutatedMsg{action: "clear", err: store.Clear(ctx)}
	}
}
