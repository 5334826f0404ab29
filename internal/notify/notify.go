// Package notify carries schedule events to whoever displays them.
package notify

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Kind names an event type.
type Kind string

const (
	TaskAdded         Kind = "task_added"
	TaskDeleted       Kind = "task_deleted"
	TaskUpdated       Kind = "task_updated"
	ConflictsDetected Kind = "conflicts_detected"
)

// Event is a single notification.
type Event struct {
	Kind      Kind
	TaskID    string
	Message   string
	Conflicts int // tasks involved in a conflict, set for ConflictsDetected
	At        time.Time
}

// String returns the message shown to the user.
func (e Event) String() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case TaskAdded:
		return "New task added"
	case TaskDeleted:
		return "Task deleted"
	case TaskUpdated:
		return "Task updated"
	case ConflictsDetected:
		return fmt.Sprintf("%d tasks have scheduling conflicts", e.Conflicts)
	default:
		return string(e.Kind)
	}
}

// Notifier receives events.
type Notifier interface {
	Notify(Event)
}

// Func adapts a plain function to a Notifier.
type Func func(Event)

// Notify calls f(e).
func (f Func) Notify(e Event) {
	f(e)
}

// Nop discards every event.
var Nop Notifier = Func(func(Event) {})

// Multi fans an event out to several notifiers in order.
type Multi []Notifier

// Notify delivers e to each non-nil notifier.
func (m Multi) Notify(e Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(e)
		}
	}
}

// Recorder keeps every event it receives.
type Recorder struct {
	Events []Event
}

// Notify appends e.
func (r *Recorder) Notify(e Event) {
	r.Events = append(r.Events, e)
}

// Kinds returns the kinds received, in order.
func (r *Recorder) Kinds() []Kind {
	kinds := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Last returns the most recent event.
func (r *Recorder) Last() (Event, bool) {
	if len(r.Events) == 0 {
		return Event{}, false
	}
	return r.Events[len(r.Events)-1], true
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}

// Logger writes events to a zerolog logger.
type Logger struct {
	Log zerolog.Logger
}

// Notify logs e at info level, or warn for conflicts.
func (l Logger) Notify(e Event) {
	ev := l.Log.Info()
	if e.Kind == ConflictsDetected {
		ev = l.Log.Warn().Int("conflicts", e.Conflicts)
	}
	if e.TaskID != "" {
		ev = ev.Str("task_id", e.TaskID)
	}
	ev.Str("kind", string(e.Kind)).Time("at", e.At).Msg(e.String())
}
