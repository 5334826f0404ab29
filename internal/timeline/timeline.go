// Package timeline derives the visible time window for a view mode and maps
// task intervals onto it.
package timeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/gantt/internal/dateutil"
)

// ErrUnknownMode is returned when parsing an unsupported view mode.
var ErrUnknownMode = errors.New("view mode must be 'day', 'week' or 'month'")

// Mode is the granularity of the visible timeline.
type Mode string

const (
	ModeDay   Mode = "day"   // 24 hourly buckets
	ModeWeek  Mode = "week"  // 7 daily buckets, Sunday first
	ModeMonth Mode = "month" // one bucket per calendar day
)

// Valid returns true if the mode is a known value.
func (m Mode) Valid() bool {
	switch m {
	case ModeDay, ModeWeek, ModeMonth:
		return true
	default:
		return false
	}
}

// ParseMode parses a case-insensitive mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// DateRange returns the ordered bucket start times visible for anchor in mode.
// Civil time is evaluated in anchor's location; callers normalize the anchor
// to the zone the timeline should be drawn in.
func DateRange(anchor time.Time, mode Mode) []time.Time {
	switch mode {
	case ModeDay:
		midnight := dateutil.TruncateToDay(anchor)
		dates := make([]time.Time, 0, 24)
		for hour := range 24 {
			dates = append(dates, time.Date(midnight.Year(), midnight.Month(), midnight.Day(), hour, 0, 0, 0, midnight.Location()))
		}
		return dates

	case ModeWeek:
		sunday := dateutil.StartOfWeek(anchor)
		dates := make([]time.Time, 0, 7)
		for i := range 7 {
			dates = append(dates, sunday.AddDate(0, 0, i))
		}
		return dates

	case ModeMonth:
		first := dateutil.StartOfMonth(anchor)
		n := dateutil.DaysInMonth(anchor)
		dates := make([]time.Time, 0, n)
		for i := range n {
			dates = append(dates, first.AddDate(0, 0, i))
		}
		return dates

	default:
		return nil
	}
}

// Window is the visible slice of the timeline.
type Window struct {
	Mode    Mode
	Anchor  time.Time
	Buckets []time.Time
	Start   time.Time // first instant shown
	End     time.Time // last instant shown (23:59:59.999 of the last day)
}

// NewWindow builds the window for anchor in mode.
// In day mode the boundary is the anchor's calendar day; otherwise it runs
// from the first bucket to the end of the last bucket's day.
func NewWindow(anchor time.Time, mode Mode) Window {
	w := Window{
		Mode:    mode,
		Anchor:  anchor,
		Buckets: DateRange(anchor, mode),
	}
	if len(w.Buckets) == 0 {
		return w
	}

	if mode == ModeDay {
		w.Start = dateutil.TruncateToDay(anchor)
		w.End = dateutil.EndOfDay(anchor)
		return w
	}

	w.Start = w.Buckets[0]
	w.End = dateutil.EndOfDay(w.Buckets[len(w.Buckets)-1])
	return w
}

// Duration returns the span used as the denominator for placement math.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsZero returns true if the window has no buckets.
func (w Window) IsZero() bool {
	return len(w.Buckets) == 0
}

// Contains returns true if t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// BucketIndex returns the index of the bucket containing t, or -1.
func (w Window) BucketIndex(t time.Time) int {
	if w.IsZero() || !w.Contains(t) {
		return -1
	}
	for i := len(w.Buckets) - 1; i >= 0; i-- {
		if !t.Before(w.Buckets[i]) {
			return i
		}
	}
	return -1
}

// Navigate moves anchor one page in direction (negative goes back):
// one day in day mode, seven days in week mode, one calendar month in month mode.
func Navigate(anchor time.Time, mode Mode, direction int) time.Time {
	switch mode {
	case ModeDay:
		return anchor.AddDate(0, 0, direction)
	case ModeWeek:
		return anchor.AddDate(0, 0, 7*direction)
	case ModeMonth:
		return dateutil.AddMonths(anchor, direction)
	default:
		return anchor
	}
}

// Today returns the anchor for now in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc)
}

// Label returns the heading for the window, e.g. "Sunday, March 2, 2025",
// "Mar 2 - 8" or "March 2025".
func Label(w Window) string {
	if w.IsZero() {
		return ""
	}
	switch w.Mode {
	case ModeDay:
		return w.Anchor.Format("Monday, January 2, 2006")
	case ModeWeek:
		first, last := w.Buckets[0], w.Buckets[len(w.Buckets)-1]
		if first.Month() == last.Month() {
			return fmt.Sprintf("%s - %d", first.Format("Jan 2"), last.Day())
		}
		return fmt.Sprintf("%s - %s", first.Format("Jan 2"), last.Format("Jan 2"))
	case ModeMonth:
		return w.Anchor.Format("January 2006")
	default:
		return ""
	}
}

// BucketLabel returns the column header for a bucket.
func BucketLabel(mode Mode, t time.Time) string {
	switch mode {
	case ModeDay:
		return t.Format("3PM")
	case ModeWeek:
		return t.Format("Mon 2")
	case ModeMonth:
		return t.Format("2")
	default:
		return ""
	}
}
