package tui

import (
	"strconv"
	"strings"

	"github.com/npratt/pcmon/internal/timeseries"
	"github.com/npratt/pcmon/internal/trend"
)

// Chart glyphs.
const (
	pointRune = '•'
	lineRune  = '·'
	axisRune  = '┤'
	baseRune  = '─'
)

// Chart is a terminal line chart for one labeled series. It keeps the last
// series it was given until the next Update.
type Chart struct {
	height int
	labels []string
	values []int
	title  string
}

// NewChart creates an empty chart with the given plot height in rows.
func NewChart(height int) *Chart {
	return &Chart{height: max(3, height)}
}

// Update implements trend.Widget.
func (c *Chart) Update(labels []string, values []int, title string) {
	c.labels = labels
	c.values = values
	c.title = title
}

// Title returns the title of the rendered series.
func (c *Chart) Title() string {
	return c.title
}

// Len returns the number of points in the rendered series.
func (c *Chart) Len() int {
	return len(c.values)
}

// Rows returns the number of terminal rows View produces.
func (c *Chart) Rows() int {
	// title + plot + baseline + labels
	return c.height + 3
}

// View renders the chart into width columns.
func (c *Chart) View(width int) string {
	if len(c.values) == 0 {
		lines := make([]string, c.Rows())
		lines[0] = styles.ChartTitle.Render("Consumer trend")
		lines[c.Rows()/2] = styles.Muted.Render("Waiting for consumer data...")
		return strings.Join(lines, "\n")
	}

	lo, hi := c.values[0], c.values[0]
	for _, v := range c.values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	axisW := max(len(strconv.Itoa(lo)), len(strconv.Itoa(hi))) + 1
	plotW := safeWidth(width - axisW - 1)

	// Keep the most recent points when the series is wider than the plot.
	labels, values := c.labels, c.values
	if len(values) > plotW {
		labels = labels[len(labels)-plotW:]
		values = values[len(values)-plotW:]
	}

	grid := newGrid(plotW, c.height)
	prevX, prevY := -1, -1
	for i, v := range values {
		x := column(i, len(values), plotW)
		y := c.row(v, lo, hi)
		if prevX >= 0 {
			connect(grid, prevX, prevY, x, y)
		}
		grid.writeRune(x, y, pointRune)
		prevX, prevY = x, y
	}

	var b strings.Builder
	b.WriteString(styles.ChartTitle.Render(c.title))
	b.WriteString(styles.Muted.Render("  latest " + strconv.Itoa(c.values[len(c.values)-1])))
	b.WriteString("\n")

	plotLines := strings.Split(grid.String(), "\n")
	for y, line := range plotLines {
		label := ""
		switch y {
		case 0:
			label = strconv.Itoa(hi)
		case len(plotLines) - 1:
			label = strconv.Itoa(lo)
		}
		b.WriteString(styles.Muted.Render(padLeft(label, axisW-1)))
		b.WriteRune(axisRune)
		b.WriteString(styles.ChartLine.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", axisW-1))
	b.WriteRune('└')
	b.WriteString(strings.Repeat(string(baseRune), plotW))
	b.WriteString("\n")

	first, last := labels[0], labels[len(labels)-1]
	gap := plotW - len(first) - len(last)
	axis := first
	if len(labels) > 1 && gap > 0 {
		axis += strings.Repeat(" ", gap) + last
	}
	b.WriteString(strings.Repeat(" ", axisW))
	b.WriteString(styles.Muted.Render(axis))

	return b.String()
}

// row maps a value to a plot row, highest value on row 0.
func (c *Chart) row(v, lo, hi int) int {
	if hi == lo {
		return c.height / 2
	}
	return (c.height - 1) - (v-lo)*(c.height-1)/(hi-lo)
}

// column spreads n points across width columns.
func column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return i * (width - 1) / (n - 1)
}

// connect draws interpolated dots between two plotted points.
func connect(g *charGrid, x0, y0, x1, y1 int) {
	steps := max(x1-x0, abs(y1-y0))
	for s := 1; s < steps; s++ {
		x := x0 + (x1-x0)*s/steps
		y := y0 + (y1-y0)*s/steps
		g.writeRune(x, y, lineRune)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func padLeft(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return strings.Repeat(" ", w-len(s)) + s
}

// charGrid is a 2D character grid for rendering.
type charGrid struct {
	width  int
	height int
	cells  [][]rune
}

// newGrid creates a new character grid filled with spaces.
func newGrid(width, height int) *charGrid {
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	return &charGrid{width: width, height: height, cells: cells}
}

// writeRune writes a single rune at the given position.
func (g *charGrid) writeRune(x, y int, r rune) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.cells[y][x] = r
	}
}

// String converts the grid to a string.
func (g *charGrid) String() string {
	lines := make([]string, 0, len(g.cells))
	for _, row := range g.cells {
		lines = append(lines, string(row))
	}
	return strings.Join(lines, "\n")
}

// trendPane ties the chart to the consumer selection. The selection's
// callback redraws the chart from the latest store.
type trendPane struct {
	chart     *Chart
	adapter   *trend.Adapter
	selection *trend.Selection
	store     timeseries.Store
}

func newTrendPane(height int) *trendPane {
	p := &trendPane{chart: NewChart(height), store: timeseries.Store{}}
	p.adapter = trend.NewAdapter(p.chart)
	p.selection = trend.NewSelection(func(int) {
		p.adapter.Refresh(p.store, p.selection)
	})
	return p
}

// setStore replaces the store and redraws the selected series.
func (p *trendPane) setStore(store timeseries.Store) {
	p.store = store
	p.adapter.Refresh(p.store, p.selection)
}

// selectConsumer selects id, redrawing if it is already known.
func (p *trendPane) selectConsumer(id int) {
	p.selection.Select(id)
}

// step moves the selection delta positions through the known consumers,
// wrapping at either end.
func (p *trendPane) step(delta int) {
	ids := p.store.ConsumerIDs()
	if len(ids) == 0 {
		return
	}
	cur, _ := p.selection.Resolve(p.store)
	idx := 0
	for i, id := range ids {
		if id == cur {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(ids) + len(ids)) % len(ids)
	p.selection.Select(ids[idx])
}

// selected returns the consumer the chart is following.
func (p *trendPane) selected() (int, bool) {
	return p.selection.Resolve(p.store)
}
