package task

import (
	"math"
	"time"
)

// DurationDays returns the number of started days between start and end.
// A task spanning 25 hours counts as 2 days. Returns 0 if end is not after start.
func DurationDays(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d.Milliseconds()) / float64(Day.Milliseconds())))
}

// OverlapDuration returns how long two intervals intersect.
// Returns 0 if there is no overlap.
func OverlapDuration(start1, end1, start2, end2 time.Time) time.Duration {
	overlapStart := start1
	if start2.After(overlapStart) {
		overlapStart = start2
	}
	overlapEnd := end1
	if end2.Before(overlapEnd) {
		overlapEnd = end2
	}
	if !overlapEnd.After(overlapStart) {
		return 0
	}
	return overlapEnd.Sub(overlapStart)
}

// Shift returns the interval moved by delta with its length preserved.
func Shift(start, end time.Time, delta time.Duration) (time.Time, time.Time) {
	return start.Add(delta), end.Add(delta)
}
