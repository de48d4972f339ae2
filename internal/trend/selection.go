// Package trend maps a reconstructed series store onto a chart widget for
// the selected consumer.
package trend

import "github.com/npratt/pcmon/internal/timeseries"

// Selection is the single selected consumer. The zero value means "first
// known consumer". It has one writer: whoever handles selection input.
type Selection struct {
	id       int
	set      bool
	onSelect func(id int)
}

// NewSelection creates an unset selection. onSelect, if non-nil, runs after
// every Select.
func NewSelection(onSelect func(id int)) *Selection {
	return &Selection{onSelect: onSelect}
}

// Select overwrites the selection and triggers onSelect.
func (s *Selection) Select(id int) {
	s.id = id
	s.set = true
	if s.onSelect != nil {
		s.onSelect(id)
	}
}

// Current returns the explicit selection, if any.
func (s *Selection) Current() (int, bool) {
	return s.id, s.set
}

// Resolve returns the explicit selection, or the lowest consumer id in store
// when nothing has been selected yet.
func (s *Selection) Resolve(store timeseries.Store) (int, bool) {
	if s.set {
		return s.id, true
	}
	ids := store.ConsumerIDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}
