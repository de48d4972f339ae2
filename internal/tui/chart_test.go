package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/pcmon/internal/timeseries"
)

func TestChart_EmptyPlaceholder(t *testing.T) {
	c := NewChart(5)
	out := c.View(60)

	if !strings.Contains(out, "Waiting for consumer data") {
		t.Errorf("empty chart should show placeholder:\n%s", out)
	}
	if got := lipgloss.Height(out); got != c.Rows() {
		t.Errorf("height = %d, want %d", got, c.Rows())
	}
}

func TestChart_RendersSeries(t *testing.T) {
	c := NewChart(5)
	c.Update([]string{"0s", "4s", "9s"}, []int{3, 5, 12}, "Consumer 1")

	out := c.View(40)
	lines := strings.Split(out, "\n")

	if len(lines) != c.Rows() {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), c.Rows(), out)
	}
	if !strings.Contains(lines[0], "Consumer 1") || !strings.Contains(lines[0], "latest 12") {
		t.Errorf("title line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "12") {
		t.Errorf("top row should carry the max label: %q", lines[1])
	}
	if !strings.Contains(lines[5], "3") {
		t.Errorf("bottom row should carry the min label: %q", lines[5])
	}
	if strings.Count(out, string(pointRune)) != 3 {
		t.Errorf("expected 3 plotted points:\n%s", out)
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "0s") || !strings.Contains(last, "9s") {
		t.Errorf("label axis = %q", last)
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w > 40 {
			t.Errorf("line %d is %d wide, want <= 40", i, w)
		}
	}
}

func TestChart_FlatSeries(t *testing.T) {
	c := NewChart(4)
	c.Update([]string{"0s", "2s"}, []int{7, 7}, "Consumer 3")

	out := c.View(30)
	if strings.Count(out, string(pointRune)) != 2 {
		t.Errorf("expected 2 plotted points:\n%s", out)
	}
}

func TestChart_KeepsMostRecentPointsWhenNarrow(t *testing.T) {
	c := NewChart(3)
	labels := make([]string, 50)
	values := make([]int, 50)
	for i := range values {
		labels[i] = "t"
		values[i] = i
	}
	labels[49] = "49s"
	c.Update(labels, values, "Consumer 1")

	out := c.View(20)
	if !strings.Contains(out, "49s") {
		t.Errorf("latest label should be visible:\n%s", out)
	}
	if c.Len() != 50 {
		t.Errorf("Len = %d, want 50 (full series retained)", c.Len())
	}
}

func TestTrendPane_SelectionFollowsStore(t *testing.T) {
	p := newTrendPane(4)

	store := timeseries.Store{
		1: {{Elapsed: 0, Count: 1}},
		3: {{Elapsed: 2, Count: 4}},
	}
	p.setStore(store)
	if p.chart.Title() != "Consumer 1" {
		t.Errorf("default selection should be lowest id, chart = %q", p.chart.Title())
	}

	p.step(1)
	if p.chart.Title() != "Consumer 3" {
		t.Errorf("after next, chart = %q", p.chart.Title())
	}
	p.step(1)
	if p.chart.Title() != "Consumer 1" {
		t.Errorf("next should wrap, chart = %q", p.chart.Title())
	}
	p.step(-1)
	if p.chart.Title() != "Consumer 3" {
		t.Errorf("prev should wrap, chart = %q", p.chart.Title())
	}
}

func TestTrendPane_UnknownSelectionKeepsChart(t *testing.T) {
	p := newTrendPane(4)
	p.setStore(timeseries.Store{1: {{Elapsed: 0, Count: 1}}})

	p.selectConsumer(2)
	if p.chart.Title() != "Consumer 1" {
		t.Errorf("chart changed for unseen consumer: %q", p.chart.Title())
	}
	if id, ok := p.selected(); !ok || id != 2 {
		t.Errorf("selected = %d, %v; want 2, true", id, ok)
	}

	p.setStore(timeseries.Store{
		1: {{Elapsed: 0, Count: 1}},
		2: {{Elapsed: 5, Count: 1}},
	})
	if p.chart.Title() != "Consumer 2" {
		t.Errorf("chart should follow consumer 2 once seen: %q", p.chart.Title())
	}
}
