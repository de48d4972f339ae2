package trend

import (
	"reflect"
	"testing"

	"github.com/npratt/pcmon/internal/testutil"
	"github.com/npratt/pcmon/internal/timeseries"
)

type recordingWidget struct {
	calls  int
	labels []string
	values []int
	title  string
}

func (w *recordingWidget) Update(labels []string, values []int, title string) {
	w.calls++
	w.labels = labels
	w.values = values
	w.title = title
}

func TestSelection_DefaultsToLowestConsumer(t *testing.T) {
	sel := NewSelection(nil)

	if _, ok := sel.Current(); ok {
		t.Error("new selection should be unset")
	}
	if _, ok := sel.Resolve(timeseries.Store{}); ok {
		t.Error("empty store should not resolve")
	}

	store := timeseries.Store{3: {{Elapsed: 0, Count: 1}}, 2: {{Elapsed: 0, Count: 1}}}
	id, ok := sel.Resolve(store)
	if !ok || id != 2 {
		t.Errorf("Resolve = %d, %v; want 2, true", id, ok)
	}
}

func TestSelection_SelectOverwritesAndNotifies(t *testing.T) {
	var notified []int
	sel := NewSelection(func(id int) { notified = append(notified, id) })

	sel.Select(4)
	sel.Select(1)

	if id, ok := sel.Current(); !ok || id != 1 {
		t.Errorf("Current = %d, %v; want 1, true", id, ok)
	}
	if !reflect.DeepEqual(notified, []int{4, 1}) {
		t.Errorf("onSelect calls = %v", notified)
	}

	// An explicit selection wins over the default even if absent from store.
	id, ok := sel.Resolve(timeseries.Store{2: {{Elapsed: 0, Count: 1}}})
	if !ok || id != 1 {
		t.Errorf("Resolve = %d, %v; want 1, true", id, ok)
	}
}

func TestAdapter_Refresh(t *testing.T) {
	w := &recordingWidget{}
	a := NewAdapter(w)
	sel := NewSelection(nil)

	store := timeseries.Store{
		1: {{Elapsed: 0, Count: 3}, {Elapsed: 4, Count: 5}},
	}
	if !a.Refresh(store, sel) {
		t.Fatal("Refresh returned false for a known consumer")
	}

	if !reflect.DeepEqual(w.labels, []string{"0s", "4s"}) {
		t.Errorf("labels = %v", w.labels)
	}
	if !reflect.DeepEqual(w.values, []int{3, 5}) {
		t.Errorf("values = %v", w.values)
	}
	if w.title != "Consumer 1" {
		t.Errorf("title = %q", w.title)
	}
}

func TestAdapter_SelectedConsumerNotYetSeen(t *testing.T) {
	w := &recordingWidget{}
	a := NewAdapter(w)
	r := timeseries.New()
	sel := NewSelection(nil)

	first := r.Reconstruct([]string{
		testutil.ProgressLine("10:00:00", 1, 11, 1),
		testutil.ProgressLine("10:00:03", 1, 12, 2),
	})
	a.Refresh(first, sel)

	sel.Select(2)
	if a.Refresh(first, sel) {
		t.Error("Refresh should be a no-op for an unseen consumer")
	}
	if w.calls != 1 || w.title != "Consumer 1" {
		t.Errorf("widget changed: calls=%d title=%q", w.calls, w.title)
	}

	later := r.Reconstruct([]string{
		testutil.ProgressLine("10:00:00", 1, 11, 1),
		testutil.ProgressLine("10:00:03", 1, 12, 2),
		testutil.ProgressLine("10:00:05", 2, 21, 1),
	})
	if !a.Refresh(later, sel) {
		t.Fatal("Refresh should render consumer 2 once it appears")
	}
	if w.title != "Consumer 2" || !reflect.DeepEqual(w.labels, []string{"5s"}) {
		t.Errorf("widget = %q %v", w.title, w.labels)
	}
}

func TestProject_Empty(t *testing.T) {
	labels, values := Project(nil)
	if len(labels) != 0 || len(values) != 0 {
		t.Errorf("Project(nil) = %v, %v", labels, values)
	}
}
