package tui

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/pcmon/internal/logparse"
	"github.com/npratt/pcmon/internal/poller"
	"github.com/npratt/pcmon/internal/termtext"
)

// tickInterval is the interval for refreshing the "updated" age.
const tickInterval = time.Second

// channelClosedMsg signals that the update channel was closed.
type channelClosedMsg struct{}

// tickMsg signals a periodic tick.
type tickMsg time.Time

// waitForUpdate creates a command that waits for the next update from the
// channel. Returns channelClosedMsg if the channel is closed.
func waitForUpdate(ch <-chan poller.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}
		return updateMsg{update: u}
	}
}

// doTick creates a command that waits for the tick interval and sends a tickMsg.
func doTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case updateMsg:
		m.handleUpdate(msg.update)
		return m, waitForUpdate(m.updates)

	case channelClosedMsg:
		// Polling ended; keep the last data on screen until the user quits.
		slog.Info("update channel closed")
		m.status = statusStopped
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, doTick()

	case spinner.TickMsg:
		if m.status != statusConnecting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, keys.Next):
		m.trend.step(1)
		return m, nil

	case key.Matches(msg, keys.Prev):
		m.trend.step(-1)
		return m, nil

	case key.Matches(msg, keys.Pick):
		id, err := strconv.Atoi(msg.String())
		if err == nil {
			m.trend.selectConsumer(id)
		}
		return m, nil

	case key.Matches(msg, keys.Top):
		m.logView.GotoTop()
		return m, nil

	case key.Matches(msg, keys.Bottom):
		m.logView.GotoBottom()
		return m, nil

	case key.Matches(msg, keys.Up, keys.Down):
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

// handleUpdate applies one poller update to the model.
func (m *model) handleUpdate(u poller.Update) {
	switch u := u.(type) {
	case poller.StatsUpdate:
		if m.status == statusStopped {
			return
		}
		m.status = statusRunning
		m.stats = u.Stats
		m.updatedAt = u.FetchedAt
		m.resize()

	case poller.LogsUpdate:
		if m.status == statusStopped {
			return
		}
		if m.status == statusConnecting {
			m.status = statusRunning
		}
		m.defective = u.Defective
		m.trend.setStore(u.Store)
		m.setLogLines(u.Lines)

	case poller.StoppedUpdate:
		m.status = statusStopped
		m.stopReason = u.Reason
		slog.Info("polling stopped", "reason", u.Reason)
	}
}

// setLogLines replaces the log panel content, following the tail when the
// panel was already scrolled to the bottom.
func (m *model) setLogLines(lines []string) {
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}
	follow := m.logView.AtBottom() || len(m.logLines) == 0
	m.logLines = lines
	m.renderLogs(follow)
}

// renderLogs re-renders the log panel at the current width.
func (m *model) renderLogs(follow bool) {
	rendered := make([]string, len(m.logLines))
	for i, line := range m.logLines {
		rendered[i] = renderLogLine(line, m.logView.Width)
	}
	m.logView.SetContent(strings.Join(rendered, "\n"))
	if follow {
		m.logView.GotoBottom()
	}
}

// renderLogLine sanitizes and styles one raw log line.
func renderLogLine(line string, width int) string {
	text := termtext.Clean(line)
	if width > 0 {
		text = truncate(text, width)
	}
	if _, ok := logparse.ParseRejection(line); ok {
		return styles.LogRejection.Render(text)
	}
	return styles.LogLine.Render(text)
}
