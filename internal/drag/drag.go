// Package drag turns pointer gestures on a timeline into task reschedules.
//
// A Controller is either idle or running a single session. Begin captures the
// boundary being dragged, Move converts the pointer offset into a time delta
// and proposes a new interval to the store, End closes the session.
package drag

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/gantt/internal/notify"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/timeline"
)

// Kind is the gesture a session performs.
type Kind int

const (
	Move Kind = iota
	ResizeLeft
	ResizeRight
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case ResizeLeft:
		return "resize-left"
	case ResizeRight:
		return "resize-right"
	default:
		return "unknown"
	}
}

// Basis maps pointer distance to time: Width pointer units span the window.
type Basis struct {
	Window timeline.Window
	Width  float64
}

// Valid returns true if the basis can convert a pointer offset.
func (b Basis) Valid() bool {
	return b.Width > 0 && b.Window.Duration() > 0
}

// Delta converts a pointer offset into a time offset, rounded to the millisecond.
func (b Basis) Delta(dx float64) time.Duration {
	ms := dx * float64(b.Window.Duration().Milliseconds()) / b.Width
	return time.Duration(math.Round(ms)) * time.Millisecond
}

// BasisFunc reports the current window and track width.
type BasisFunc func() Basis

// Store is the part of the schedule the controller reads and writes.
type Store interface {
	Task(id string) (*task.Task, bool)
	UpdateTask(id string, patch task.Patch) (*task.Task, error)
}

type session struct {
	taskID     string
	kind       Kind
	anchorX    float64
	anchorDate time.Time
	basis      Basis // set only when the basis is snapshotted
}

// Controller runs drag sessions against a Store.
type Controller struct {
	store    Store
	basis    BasisFunc
	notifier notify.Notifier
	log      zerolog.Logger
	snapshot bool

	active *session
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where TaskUpdated is sent when a session ends.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger for session traces.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithSnapshotBasis freezes the basis at Begin. By default the basis is
// re-derived on every Move, so a view change mid-drag changes sensitivity.
func WithSnapshotBasis() Option {
	return func(c *Controller) {
		c.snapshot = true
	}
}

// New creates an idle controller.
func New(store Store, basis BasisFunc, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		basis:    basis,
		notifier: notify.Nop,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin starts a session on taskID. It returns false if a session is already
// running or the task does not exist.
func (c *Controller) Begin(taskID string, kind Kind, pointerX float64) bool {
	if c.active != nil {
		return false
	}
	t, ok := c.store.Task(taskID)
	if !ok {
		return false
	}

	s := &session{
		taskID:     taskID,
		kind:       kind,
		anchorX:    pointerX,
		anchorDate: t.StartDate,
	}
	if kind == ResizeRight {
		s.anchorDate = t.EndDate
	}
	if c.snapshot {
		s.basis = c.basis()
	}
	c.active = s

	c.log.Debug().
		Str("task_id", taskID).
		Stringer("kind", kind).
		Float64("x", pointerX).
		Time("anchor", s.anchorDate).
		Msg("drag begin")
	return true
}

// Move proposes a new interval for the pointer at pointerX. It returns true if
// the store accepted the proposal.
func (c *Controller) Move(pointerX float64) bool {
	s := c.active
	if s == nil {
		return false
	}

	basis := s.basis
	if !c.snapshot {
		basis = c.basis()
	}
	if !basis.Valid() {
		return false
	}

	t, ok := c.store.Task(s.taskID)
	if !ok {
		return false
	}

	proposed := s.anchorDate.Add(basis.Delta(pointerX - s.anchorX))
	patch, ok := propose(s.kind, t, proposed)
	if !ok {
		return false
	}
	if _, err := c.store.UpdateTask(s.taskID, patch); err != nil {
		c.log.Debug().Str("task_id", s.taskID).Err(err).Msg("drag proposal rejected")
		return false
	}
	return true
}

// propose builds the patch for a drag of kind that puts the dragged boundary
// at at. Resizes that would leave less than a day are refused.
func propose(kind Kind, t *task.Task, at time.Time) (task.Patch, bool) {
	switch kind {
	case Move:
		start, end := task.Shift(t.StartDate, t.EndDate, at.Sub(t.StartDate))
		return task.Reschedule(start, end), true

	case ResizeLeft:
		if !at.Before(t.EndDate) || t.EndDate.Sub(at) < task.Day {
			return task.Patch{}, false
		}
		return task.SetStart(at), true

	case ResizeRight:
		if !at.After(t.StartDate) || at.Sub(t.StartDate) < task.Day {
			return task.Patch{}, false
		}
		return task.SetEnd(at), true

	default:
		return task.Patch{}, false
	}
}

// End closes the current session and returns the task it was dragging.
// Calling End while idle is a no-op.
func (c *Controller) End() (string, bool) {
	s := c.active
	c.active = nil
	if s == nil {
		return "", false
	}

	c.log.Debug().Str("task_id", s.taskID).Stringer("kind", s.kind).Msg("drag end")
	c.notifier.Notify(notify.Event{
		Kind:    notify.TaskUpdated,
		TaskID:  s.taskID,
		Message: "Task updated",
		At:      time.Now(),
	})
	return s.taskID, true
}

// Active returns true while a session is running.
func (c *Controller) Active() bool {
	return c.active != nil
}

// Session returns the dragged task and gesture of the running session.
func (c *Controller) Session() (taskID string, kind Kind, ok bool) {
	if c.active == nil {
		return "", 0, false
	}
	return c.active.taskID, c.active.kind, true
}
