package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lodgemusic/lodgectl/internal/logtail"
)

var logLevels = []string{"", "info", "warn", "error"}

// logState holds the Logs tab state.
type logState struct {
	entries  []logtail.Entry
	err      error
	follow   bool
	minLevel string
	query    string
	viewport viewport.Model
}

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

func newLogState() logState {
	return logState{follow: true, viewport: viewport.New(80, 20)}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsMsg{}
		}
		entries, err := logtail.Tail(path, LogTailLines)
		return logsMsg{entries: entries, err: err}
	}
}

func (m *Model) handleLogs(msg logsMsg) {
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.entries = msg.entries
	}
	m.refreshLogViewport()
}

func (m *Model) resizeLogViewport() {
	m.logs.viewport.Width = maxInt(m.width-2, 10)
	m.logs.viewport.Height = maxInt(m.height-chromeLines, 3)
	m.refreshLogViewport()
}

func (m *Model) refreshLogViewport() {
	styles := m.theme.Styles()
	filtered := logtail.Filter(m.logs.entries, m.logs.minLevel, m.logs.query)
	lines := make([]string, 0, len(filtered))
	for _, e := range filtered {
		lines = append(lines, formatLogEntry(styles, e))
	}
	m.logs.viewport.SetContent(strings.Join(lines, "\n"))
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

func formatLogEntry(styles Styles, e logtail.Entry) string {
	var b strings.Builder
	b.WriteString(styles.FaintText.Render(clockTime(e.Time)))
	b.WriteString(" ")
	if e.Level != "" {
		b.WriteString(styles.StatusStyle(e.Level).Render(strings.ToUpper(e.Level)))
		b.WriteString(" ")
	}
	if e.Component != "" {
		b.WriteString(styles.AccentText.Render("[" + e.Component + "]"))
		b.WriteString(" ")
	}
	b.WriteString(styles.Text.Render(e.Message))
	for _, k := range e.AttrKeys() {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(k + "=" + e.Attrs[k]))
	}
	return b.String()
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logs.viewport.GotoBottom()
		}
	case key.Matches(msg, m.keys.CycleLevel):
		m.logs.minLevel = cycleLevel(m.logs.minLevel)
		m.refreshLogViewport()
	case key.Matches(msg, m.keys.Refresh):
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Up):
		m.logs.follow = false
		m.logs.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.logs.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		m.logs.follow = false
		m.logs.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logs.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Escape):
		m.logs.query = ""
		m.refreshLogViewport()
	default:
		var cmd tea.Cmd
		m.logs.viewport, cmd = m.logs.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func cycleLevel(current string) string {
	for i, l := range logLevels {
		if l == current {
			return logLevels[(i+1)%len(logLevels)]
		}
	}
	return logLevels[0]
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	level := m.logs.minLevel
	if level == "" {
		level = "all"
	}
	status := []string{
		styles.MutedText.Render("Level: ") + styles.AccentText.Render(level),
		styles.MutedText.Render("Follow: ") + styles.AccentText.Render(onOff(m.logs.follow)),
	}
	if m.logs.query != "" {
		status = append(status, styles.MutedText.Render("Filter: ")+styles.AccentText.Render(m.logs.query))
	}
	if m.logPath != "" {
		status = append(status, styles.FaintText.Render(truncate(m.logPath, 50)))
	}
	header := strings.Join(status, "  ")

	body := m.logs.viewport.View()
	switch {
	case m.logs.err != nil:
		body = styles.DangerText.Render(m.logs.err.Error())
	case len(m.logs.entries) == 0:
		body = styles.FaintText.Render("No log entries yet")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
