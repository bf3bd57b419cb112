package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/foodbites/internal/logtail"
)

// activityState is the log viewer. follow keeps the view pinned to the
// newest line and re-reads the file on every tick.
type activityState struct {
	viewport viewport.Model
	lines    []string
	follow   bool
	err      error
}

func newActivityState() activityState {
	return activityState{viewport: viewport.New(0, 0), follow: true}
}

// resizeActivity fits the viewport inside the content box.
func (m *Model) resizeActivity() {
	m.activity.viewport.Width = max(m.width-2, 0)
	m.activity.viewport.Height = max(m.contentHeight()-3, 1)
	if m.activity.follow {
		m.activity.viewport.GotoBottom()
	}
}

func readLogCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		raw, err := logtail.Read(path, ActivityTailLines)
		if err != nil {
			return logLinesMsg{err: err}
		}
		return logLinesMsg{lines: logtail.Format(raw)}
	}
}

func (m *Model) applyLogLines(msg logLinesMsg) {
	m.activity.err = msg.err
	if msg.err != nil {
		return
	}
	m.activity.lines = msg.lines
	m.activity.viewport.SetContent(strings.Join(msg.lines, "\n"))
	if m.activity.follow {
		m.activity.viewport.GotoBottom()
	}
}

// handleActivityKey scrolls the log. Scrolling away from the bottom stops
// following; space toggles it.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.activity.follow = !m.activity.follow
		if m.activity.follow {
			m.activity.viewport.GotoBottom()
			return m, readLogCmd(m.logPath)
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.activity.viewport.GotoTop()
		m.activity.follow = false
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activity.viewport.GotoBottom()
		m.activity.follow = true
		return m, nil
	}

	var cmd tea.Cmd
	m.activity.viewport, cmd = m.activity.viewport.Update(msg)
	if !m.activity.viewport.AtBottom() {
		m.activity.follow = false
	}
	return m, cmd
}

// renderActivity renders the tail of the foodbites log file.
func (m Model) renderActivity() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	inner := max(m.width-2, 0)

	status := bg.Render("paused", styles.WarningText)
	if m.activity.follow {
		status = bg.Render("following", styles.SuccessText)
	}
	header := bg.Render(truncateMiddle(m.logPath, max(inner-30, 10)), styles.FaintText) +
		bg.Spaces(2) + status + bg.Spaces(2) + bg.Render("space toggle", styles.FaintText)

	var body string
	switch {
	case m.logPath == "":
		body = bg.Render("Logging to a file is disabled.", styles.MutedText)
	case m.activity.err != nil:
		body = bg.Render("! "+m.activity.err.Error(), styles.DangerText)
	case len(m.activity.lines) == 0:
		body = bg.Render("No log entries yet.", styles.MutedText)
	default:
		body = m.activity.viewport.View()
	}
	return m.renderTitledBox("Activity", header+"\n"+body, m.width, m.contentHeight(), true)
}
