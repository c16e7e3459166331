package diag

import (
	"sync"
)

// Kind classifies a recorded diagnostic event.
type Kind string

const (
	// Recoverable failures, isolated to a single item.
	PatternSourceError  Kind = "Skipped (Unreadable Ignore File)"
	InvalidPattern      Kind = "Skipped (Invalid Ignore Pattern)"
	ClassificationError Kind = "Skipped (Binary Check Failed)"
	ReadError           Kind = "Skipped (Read Error)"
	DecodeError         Kind = "Skipped (Not Valid UTF-8)"
	WalkError           Kind = "Skipped (Walk Error)"

	// Filter outcomes.
	Ignored           Kind = "Ignored (Gitignore/Custom Rule)"
	HiddenDir         Kind = "Ignored (Hidden Directory)"
	ExtensionFiltered Kind = "Filtered (Extension Mismatch)"
	SizeLimit         Kind = "Skipped (Size Limit Exceeded)"
	Binary            Kind = "Skipped (Binary File)"
	NotRegular        Kind = "Skipped (Not a Regular File)"
)

// IsFailure reports whether the kind describes something that went wrong, as
// opposed to a file that was filtered out on purpose.
func (k Kind) IsFailure() bool {
	switch k {
	case PatternSourceError, InvalidPattern, ClassificationError, ReadError, DecodeError, WalkError:
		return true
	}
	return false
}

// Event is a single diagnostic. Path is relative to the scan root where one
// is known, otherwise absolute.
type Event struct {
	Kind  Kind   `json:"kind"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Err   error  `json:"-"`
}

// Sink receives diagnostic events from the core components.
type Sink interface {
	Record(Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Record(Event) {}

// Tracker keeps every recorded event in order
type Tracker struct {
	items []Event
	mutex sync.Mutex
}

// NewTracker creates a new Tracker
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		items: make([]Event, 0, capacity),
	}
}

// Record adds an event to the tracker
func (t *Tracker) Record(e Event) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.items = append(t.items, e)
}

// Items returns a copy of the tracked events
func (t *Tracker) Items() []Event {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	out := make([]Event, len(t.items))
	copy(out, t.items)
	return out
}

// Count returns how many events of the given kind were recorded.
func (t *Tracker) Count(kind Kind) int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	n := 0
	for _, e := range t.items {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// LogSink writes events to a Logger. Failures go to WARN, filter outcomes to DEBUG.
type LogSink struct {
	Logger Logger
}

func (s LogSink) Record(e Event) {
	if s.Logger == nil {
		return
	}
	if e.Kind.IsFailure() {
		if e.Err != nil {
			s.Logger.Warn("%s: %s: %v", e.Kind, e.Path, e.Err)
		} else {
			s.Logger.Warn("%s: %s", e.Kind, e.Path)
		}
		return
	}
	s.Logger.Debug("%s: %s", e.Kind, e.Path)
}

// Multi fans an event out to several sinks.
type Multi []Sink

func (m Multi) Record(e Event) {
	for _, s := range m {
		if s != nil {
			s.Record(e)
		}
	}
}
