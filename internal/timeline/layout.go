package timeline

import (
	"math"
	"time"

	"github.com/javiermolinar/gantt/internal/task"
)

// Minimum bar widths in percent of the window.
const (
	// MinDayWidth is one hour's worth of a 24-slot day.
	MinDayWidth = 8.33
	// MinWidth applies to week and month views.
	MinWidth = 1.0
)

// Placement is where a bar renders inside a window.
type Placement struct {
	Left           float64 // percent offset from the window start, 0-100
	Width          float64 // percent of the window, Left+Width <= 100
	ContinuesLeft  bool    // task starts before the window
	ContinuesRight bool    // task ends after the window
}

// IsPartial returns true if the bar is clipped on either side.
func (p Placement) IsPartial() bool {
	return p.ContinuesLeft || p.ContinuesRight
}

// Right returns the percent offset of the bar's right edge.
func (p Placement) Right() float64 {
	return p.Left + p.Width
}

// Layout places the interval [start, end] inside w.
// Returns false if the interval is not visible at all.
func Layout(start, end time.Time, w Window) (Placement, bool) {
	if w.IsZero() || end.Before(w.Start) || start.After(w.End) {
		return Placement{}, false
	}
	total := float64(w.Duration())
	if total <= 0 {
		return Placement{}, false
	}

	visibleStart := start
	if w.Start.After(visibleStart) {
		visibleStart = w.Start
	}
	visibleEnd := end
	if w.End.Before(visibleEnd) {
		visibleEnd = w.End
	}

	left := float64(visibleStart.Sub(w.Start)) / total * 100
	width := float64(visibleEnd.Sub(visibleStart)) / total * 100

	minWidth := MinWidth
	if w.Mode == ModeDay {
		minWidth = MinDayWidth
	}
	left = math.Max(0, left)
	width = math.Max(width, minWidth)
	width = math.Min(width, 100-left)

	return Placement{
		Left:           left,
		Width:          width,
		ContinuesLeft:  start.Before(w.Start),
		ContinuesRight: end.After(w.End),
	}, true
}

// LayoutTask places a task inside w. A nil task is never visible.
func LayoutTask(t *task.Task, w Window) (Placement, bool) {
	if t == nil {
		return Placement{}, false
	}
	return Layout(t.StartDate, t.EndDate, w)
}

// Continuation counts tasks running in from before the window and tasks
// running on past its end.
func Continuation(tasks []*task.Task, w Window) (fromPrevious, intoNext int) {
	for _, t := range tasks {
		if t.StartDate.Before(w.Start) && !t.EndDate.Before(w.Start) {
			fromPrevious++
		}
		if !t.StartDate.After(w.End) && t.EndDate.After(w.End) {
			intoNext++
		}
	}
	return fromPrevious, intoNext
}

// ActiveAt returns the tasks whose interval contains instant, ends included.
func ActiveAt(tasks []*task.Task, instant time.Time) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if !t.StartDate.After(instant) && !t.EndDate.Before(instant) {
			result = append(result, t)
		}
	}
	return result
}

// Columns converts a placement into whole terminal cells for a track of
// width cells. The bar is at least one cell wide and never exceeds the track.
func Columns(p Placement, width int) (start, span int) {
	if width <= 0 {
		return 0, 0
	}
	start = int(math.Floor(p.Left / 100 * float64(width)))
	end := int(math.Ceil(p.Right() / 100 * float64(width)))
	start = min(max(start, 0), width-1)
	end = min(max(end, start+1), width)
	return start, end - start
}
