package engine

import (
	"testing"

	"github.com/leengari/relalg/internal/query/operations/testutil"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func TestAddObserver(t *testing.T) {
	eng := New()
	observer := &MockObserver{}

	eng.AddObserver(observer)

	if len(eng.observers) != 1 {
		t.Errorf("Expected 1 observer, got %d", len(eng.observers))
	}
}

func TestRemoveObserver(t *testing.T) {
	eng := New()
	observer := &MockObserver{}

	eng.AddObserver(observer)
	eng.RemoveObserver(observer)

	if len(eng.observers) != 0 {
		t.Errorf("Expected 0 observers, got %d", len(eng.observers))
	}
}

func TestNotifyWithNoObservers(t *testing.T) {
	eng := New()

	// Should not panic
	eng.notify(Event{Type: EventOpStart, OpID: "test-op"})
}

func TestNotifyWithMultipleObservers(t *testing.T) {
	eng := New()
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}

	eng.AddObserver(observer1)
	eng.AddObserver(observer2)

	eng.notify(Event{Type: EventOpStart, OpID: "test-op", Data: "select (year < 1980)"})

	for i, o := range []*MockObserver{observer1, observer2} {
		if len(o.Events) != 1 {
			t.Fatalf("Observer%d: Expected 1 event, got %d", i+1, len(o.Events))
		}
		if o.Events[0].Type != EventOpStart {
			t.Errorf("Observer%d: Expected EventOpStart, got %v", i+1, o.Events[0].Type)
		}
		if o.Events[0].Timestamp.IsZero() {
			t.Errorf("Observer%d: Expected timestamp to be set", i+1)
		}
	}
}

func TestOperatorLifecycleEvents(t *testing.T) {
	logger, _ := testutil.CaptureLogs(0)
	eng := New(WithLogger(logger))
	defer eng.Close()
	observer := &MockObserver{}
	eng.AddObserver(observer)

	def := testutil.MovieSchemas[0]
	_, err := eng.CreateTable(def.Name, def.Attributes, def.Domains, def.Key)
	testutil.AssertNoError(t, err, "create")
	testutil.AssertNoError(t, eng.Insert("movie", testutil.Film0), "insert")

	_, err = eng.Select("movie", "year < 1980")
	testutil.AssertNoError(t, err, "select")

	types := make([]EventType, len(observer.Events))
	for i, ev := range observer.Events {
		types[i] = ev.Type
	}
	expected := []EventType{EventCreateTable, EventInsert, EventOpStart, EventOpEnd}
	if len(types) != len(expected) {
		t.Fatalf("Expected events %v, got %v", expected, types)
	}
	for i := range expected {
		if types[i] != expected[i] {
			t.Errorf("Event %d: expected %s, got %s", i, expected[i], types[i])
		}
	}

	start, end := observer.Events[2], observer.Events[3]
	if start.OpID == "" || start.OpID != end.OpID {
		t.Errorf("Expected start and end to share an operation ID, got %q and %q", start.OpID, end.OpID)
	}
}

func TestOperatorErrorEvent(t *testing.T) {
	logger, _ := testutil.CaptureLogs(0)
	eng := New(WithLogger(logger))
	defer eng.Close()
	observer := &MockObserver{}
	eng.AddObserver(observer)

	def := testutil.MovieSchemas[0]
	_, err := eng.CreateTable(def.Name, def.Attributes, def.Domains, def.Key)
	testutil.AssertNoError(t, err, "create")

	_, err = eng.Select("movie", "year <")
	testutil.AssertError(t, err, "malformed condition")

	last := observer.Events[len(observer.Events)-1]
	if last.Type != EventOpError {
		t.Errorf("Expected EventOpError, got %s", last.Type)
	}
}
