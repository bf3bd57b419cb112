package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodbites/internal/route"
	"github.com/five82/foodbites/internal/storefront"
)

// loginState holds the token prompt. reason is the last invalidation
// message, shown above the prompt after an expiry redirect.
type loginState struct {
	input  textinput.Model
	reason string
}

func newLoginState() loginState {
	ti := textinput.New()
	ti.Placeholder = "paste your bearer token"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 4096
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return loginState{input: ti}
}

// handleLoginKey processes keys while the prompt is not focused.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Search) || key.Matches(msg, m.keys.Confirm) {
		cmd := m.login.input.Focus()
		return m, cmd
	}
	return m, nil
}

// handleLoginInput feeds the token prompt; enter stores the token.
func (m Model) handleLoginInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.login.input.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.submitToken()
	}
	var cmd tea.Cmd
	m.login.input, cmd = m.login.input.Update(msg)
	return m, cmd
}

// submitToken stores the typed token and returns to where the user was.
func (m Model) submitToken() (tea.Model, tea.Cmd) {
	token := strings.TrimSpace(m.login.input.Value())
	if token == "" {
		return m, m.notices.Push(storefront.NoticeError, "Token is empty")
	}
	if m.session == nil {
		return m, m.notices.Push(storefront.NoticeError, "Sign-in is not available")
	}
	if err := m.session.Set(token); err != nil {
		m.log.Warn().Err(err).Msg("store token failed")
		return m, m.notices.Push(storefront.NoticeError, "Failed to store token")
	}
	m.login.input.SetValue("")
	m.login.input.Blur()
	m.login.reason = ""
	if m.poller != nil {
		m.poller.Kick()
	}
	m.log.Info().Msg("signed in")

	notice := m.notices.Push(storefront.NoticeSuccess, "Signed in")
	prev := m.history.Current()
	next, ok := m.history.Back()
	if !ok || next.Path == route.Login {
		next = route.New(route.Home)
		m.history.Replace(next)
	}
	nav := m.enter(prev, next)
	return m, tea.Batch(notice, nav, fetchSnapshotCmd(m.store))
}

// renderLogin renders the sign-in screen.
func (m Model) renderLogin() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	var lines []string
	if m.login.reason != "" {
		lines = append(lines, bg.Render("! "+msgSessionExpired, styles.DangerText),
			bg.Render(m.login.reason, styles.FaintText), "")
	}
	if m.session != nil && m.session.SignedIn() && !m.login.input.Focused() {
		lines = append(lines,
			bg.Render("You are signed in.", styles.SuccessText),
			bg.Render("Press enter to replace the token, or S to sign out.", styles.MutedText))
	} else {
		lines = append(lines,
			bg.Render("Paste the token issued by the foodbites backend.", styles.Text),
			bg.Render("It is stored with owner-only permissions in the data directory.", styles.MutedText),
			"",
			bg.Render("Token:", styles.MutedText)+bg.Space()+m.login.input.View(),
			"",
			bg.Render("enter save   esc cancel", styles.FaintText))
	}
	return m.renderTitledBox("Sign in", strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}
