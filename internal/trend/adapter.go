package trend

import (
	"strconv"

	"github.com/npratt/pcmon/internal/timeseries"
)

// Widget renders one labeled line series.
type Widget interface {
	Update(labels []string, values []int, title string)
}

// Adapter pushes the selected consumer's series to a Widget.
type Adapter struct {
	widget Widget
}

// NewAdapter creates an Adapter bound to w.
func NewAdapter(w Widget) *Adapter {
	return &Adapter{widget: w}
}

// Refresh renders the series selected by sel. It returns false and leaves the
// widget untouched when the selected consumer has no series in store.
func (a *Adapter) Refresh(store timeseries.Store, sel *Selection) bool {
	id, ok := sel.Resolve(store)
	if !ok {
		return false
	}
	series, ok := store[id]
	if !ok {
		return false
	}

	labels, values := Project(series)
	a.widget.Update(labels, values, Title(id))
	return true
}

// Project splits a series into "<elapsed>s" labels and counts.
func Project(series timeseries.Series) ([]string, []int) {
	labels := make([]string, len(series))
	values := make([]int, len(series))
	for i, p := range series {
		labels[i] = strconv.Itoa(p.Elapsed) + "s"
		values[i] = p.Count
	}
	return labels, values
}

// Title is the chart title for a consumer.
func Title(id int) string {
	return "Consumer " + strconv.Itoa(id)
}
