package report

import (
	"sync"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
)

// EventKind identifies a Reporter notification.
type EventKind string

const (
	EventVisited    EventKind = "visited"
	EventDuplicates EventKind = "duplicates"
	EventSequence   EventKind = "sequence"
)

// Event is one recorded notification. Enum is the name passed to the most
// recent OnEnumVisited.
type Event struct {
	Kind       EventKind
	Enum       string
	Duplicates []analyzer.DuplicateFinding
	Sequence   analyzer.SequenceFinding
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	current string
	events  []Event
}

func (r *Recorder) OnEnumVisited(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = name
	r.events = append(r.events, Event{Kind: EventVisited, Enum: name})
}

func (r *Recorder) OnDuplicatesFound(findings []analyzer.DuplicateFinding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Kind: EventDuplicates, Enum: r.current, Duplicates: findings})
}

func (r *Recorder) OnSequenceInconsistency(finding analyzer.SequenceFinding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Kind: EventSequence, Enum: r.current, Sequence: finding})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ForEnum returns the events recorded for one enum.
func (r *Recorder) ForEnum(name string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Enum == name {
			out = append(out, e)
		}
	}
	return out
}
