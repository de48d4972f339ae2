// Package tui provides the terminal dashboard for a running simulation using
// bubbletea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/pcmon/internal/poller"
)

// DefaultChartHeight is the plot height used when none is configured.
const DefaultChartHeight = 12

// TUI is the terminal dashboard fed by a poller.
type TUI struct {
	updates     <-chan poller.Update
	onQuit      func()
	source      string
	chartHeight int
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI reading from the given update channel.
func New(updates <-chan poller.Update, opts ...Option) *TUI {
	t := &TUI{
		updates:     updates,
		chartHeight: DefaultChartHeight,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithOnQuit sets the callback invoked when the user quits.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// WithSource sets the service address shown in the header.
func WithSource(source string) Option {
	return func(t *TUI) {
		t.source = source
	}
}

// WithChartHeight sets the trend chart plot height in rows.
func WithChartHeight(rows int) Option {
	return func(t *TUI) {
		if rows > 0 {
			t.chartHeight = rows
		}
	}
}

// Run starts the TUI and blocks until it exits.
func (t *TUI) Run() error {
	m := newModel(t.updates, t.onQuit, t.source, t.chartHeight)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
