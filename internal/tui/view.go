package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 60
	minHeight = 32
)

// View implements tea.Model. This renders the full TUI display.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Handle too small terminal
	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	sections := []string{
		m.renderHeader(),
		m.renderCounters(),
		m.renderDivider(),
		m.renderEntities(),
		m.renderDivider(),
		m.renderSelectors(),
		m.trend.chart.View(safeWidth(m.width - 4)),
		m.renderDivider(),
		m.logView.View(),
		m.renderFooter(),
	}
	content := strings.Join(sections, "\n")

	rendered := styles.Container.
		Width(safeWidth(m.width - 2)).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, rendered)
}

// renderTooSmall renders a minimal message for terminals that are too small.
func (m model) renderTooSmall() string {
	return fmt.Sprintf("Terminal too small (%dx%d). Need %dx%d minimum.",
		m.width, m.height, minWidth, minHeight)
}

// renderHeader renders the title, status, service address and update time.
func (m model) renderHeader() string {
	w := safeWidth(m.width - 4)

	left := styles.Title.Render("pcmon") + " " + m.renderStatus()
	if m.source != "" {
		left += " " + styles.Source.Render(m.source)
	}
	right := styles.Updated.Render("updated " + formatAge(m.updatedAt, m.now))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		strings.Repeat(" ", max(1, w-lipgloss.Width(left)-lipgloss.Width(right))),
		right,
	)
}

// renderStatus renders the status indicator with appropriate styling.
func (m model) renderStatus() string {
	switch m.status {
	case statusConnecting:
		return m.spinner.View() + styles.StatusConnecting.Render(strings.ToUpper(m.status))
	case statusRunning:
		return styles.StatusRunning.Render(strings.ToUpper(m.status))
	default:
		text := strings.ToUpper(m.status)
		if m.stopReason != "" {
			text += " (" + m.stopReason + ")"
		}
		return styles.StatusStopped.Render(text)
	}
}

// renderCounters renders the headline counters row.
func (m model) renderCounters() string {
	var produced, consumed int
	var efficiency, throughput float64
	if m.stats != nil {
		st := m.stats.Statistics
		produced, consumed = st.TotalProduced, st.TotalConsumed
		efficiency, throughput = st.EfficiencyPercent, st.ThroughputPerSec
	}

	counter := func(label string, value string, style lipgloss.Style) string {
		return styles.CounterLabel.Render(label+": ") + style.Render(value)
	}
	return strings.Join([]string{
		counter("produced", strconv.Itoa(produced), styles.Produced),
		counter("consumed", strconv.Itoa(consumed), styles.Consumed),
		counter("efficiency", fmt.Sprintf("%.1f%%", efficiency), styles.Efficiency),
		counter("throughput", fmt.Sprintf("%.2f/s", throughput), styles.Efficiency),
		counter("defective", strconv.Itoa(m.defective), styles.Defective),
	}, "  ")
}

// renderEntities renders producers and consumers side by side.
func (m model) renderEntities() string {
	w := safeWidth(m.width - 4)
	colW := safeWidth(w/2 - 1)
	rows := m.entityRows() - 1

	left := []string{styles.SectionTitle.Render("Producers")}
	right := []string{styles.SectionTitle.Render("Consumers")}
	for i := 0; i < rows; i++ {
		left = append(left, m.entityLine("P", i, true, colW))
		right = append(right, m.entityLine("K", i, false, colW))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(colW).Render(strings.Join(left, "\n")),
		"  ",
		lipgloss.NewStyle().Width(colW).Render(strings.Join(right, "\n")),
	)
}

// entityLine renders row i of the producer or consumer column.
func (m model) entityLine(prefix string, i int, producers bool, width int) string {
	if m.stats == nil {
		if i == 0 {
			return styles.Muted.Render("waiting...")
		}
		return ""
	}
	list := m.stats.Consumers
	if producers {
		list = m.stats.Producers
	}
	if i >= len(list) {
		return ""
	}
	if i == maxEntityRows-1 && len(list) > maxEntityRows {
		return styles.Muted.Render(fmt.Sprintf("+%d more", len(list)-i))
	}
	return styles.Entity.Render(truncate(formatEntity(prefix, list[i]), width))
}

// renderSelectors renders one selector per known consumer, highlighting
// the one the chart follows.
func (m model) renderSelectors() string {
	ids := m.trend.store.ConsumerIDs()
	if len(ids) == 0 {
		return styles.Muted.Render("no consumers yet")
	}
	selected, _ := m.trend.selected()

	parts := []string{styles.CounterLabel.Render("consumer:")}
	for _, id := range ids {
		label := strconv.Itoa(id)
		if id == selected {
			parts = append(parts, styles.SelectorSelected.Render(label))
		} else {
			parts = append(parts, styles.Selector.Render(label))
		}
	}
	return strings.Join(parts, "")
}

// renderDivider renders a horizontal divider line.
func (m model) renderDivider() string {
	w := safeWidth(m.width - 4) // Account for container borders
	return styles.Divider.Render(strings.Repeat("─", w))
}

// renderFooter renders the key binding help.
func (m model) renderFooter() string {
	return styles.Footer.Render(m.help.View(keys))
}

// safeWidth returns a width that is at least 1 to prevent negative values.
func safeWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
