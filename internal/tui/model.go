package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/pcmon/internal/apiclient"
	"github.com/npratt/pcmon/internal/poller"
)

// Dashboard statuses.
const (
	statusConnecting = "connecting"
	statusRunning    = "running"
	statusStopped    = "stopped"
)

// Layout size constants.
const (
	// maxEntityRows caps the producer/consumer listing height.
	maxEntityRows = 4
	// minLogRows is the smallest log panel worth drawing.
	minLogRows = 3
	// maxLogLines is the number of log lines kept in the panel.
	maxLogLines = 1000
)

// keyMap defines the dashboard key bindings.
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Pick   key.Binding
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Pick, k.Up, k.Down, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Pick},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next consumer")),
	Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev consumer")),
	Pick:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "pick consumer")),
	Up:     key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/k", "scroll up")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/j", "scroll down")),
	Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// model is the bubbletea model for the TUI.
type model struct {
	// Update source
	updates <-chan poller.Update

	// State
	status     string
	stopReason string
	source     string
	stats      *apiclient.StatsResponse
	updatedAt  time.Time
	now        time.Time
	defective  int
	logLines   []string

	// Panes
	trend   *trendPane
	logView viewport.Model
	help    help.Model
	spinner spinner.Model

	// UI state
	width  int
	height int

	// Callbacks
	onQuit func()
}

// updateMsg wraps a poller update for the bubbletea message system.
type updateMsg struct {
	update poller.Update
}

// newModel creates a new model with the given configuration.
func newModel(updates <-chan poller.Update, onQuit func(), source string, chartHeight int) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusConnecting

	return model{
		updates: updates,
		status:  statusConnecting,
		source:  source,
		trend:   newTrendPane(chartHeight),
		logView: viewport.New(0, 0),
		help:    help.New(),
		spinner: sp,
		onQuit:  onQuit,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitForUpdate(m.updates),
		doTick(),
		m.spinner.Tick,
	)
}

// Update, handleKey and handleUpdate are implemented in update.go
// View is implemented in view.go

// entityRows returns the number of rows the producer/consumer listing uses,
// including its heading.
func (m model) entityRows() int {
	if m.stats == nil {
		return 2
	}
	rows := max(len(m.stats.Producers), len(m.stats.Consumers), 1)
	return min(rows, maxEntityRows) + 1
}

// resize recomputes the log panel dimensions for the current terminal size.
func (m *model) resize() {
	m.help.Width = safeWidth(m.width - 4)
	footer := lipgloss.Height(m.help.View(keys))
	// Border (2) + header, counters, selectors (3) + three dividers.
	fixed := 2 + 3 + 3 + footer + m.entityRows() + m.trend.chart.Rows()
	m.logView.Width = safeWidth(m.width - 4)
	m.logView.Height = max(minLogRows, m.height-fixed)
	if len(m.logLines) > 0 {
		m.renderLogs(m.logView.AtBottom())
	}
}
