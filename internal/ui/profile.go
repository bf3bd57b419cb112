package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderProfile renders the signed-in user's details.
func (m Model) renderProfile() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	height := m.contentHeight()

	if gate, blocked := m.accountGate(styles, bg, "profile"); blocked {
		return m.renderTitledBox("Profile", gate, m.width, height, true)
	}

	p := m.snapshot.Account.Profile
	rows := [][2]string{
		{"Username", p.Username},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Address", p.Address},
		{"Member since", formatOrderDate(p.CreatedAt)},
		{"Orders", fmt.Sprint(m.snapshot.Account.OrdersCount)},
	}
	if claims, err := m.session.Claims(); err == nil && claims.ExpiresAt != nil {
		expiry := claims.ExpiresAt.Time.Local().Format("2006-01-02 15:04")
		if claims.Expired(time.Now()) {
			expiry += " (expired)"
		}
		rows = append(rows, [2]string{"Token expires", expiry})
	}

	lines := make([]string, 0, len(rows)+2)
	for _, r := range rows {
		value := r[1]
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		lines = append(lines, bg.Render(padRight(r[0], 15), styles.MutedText)+bg.Render(value, styles.Text))
	}
	lines = append(lines, "", bg.Render("S to sign out", styles.FaintText))

	return m.renderTitledBox("Profile", strings.Join(lines, "\n"), m.width, height, true)
}
