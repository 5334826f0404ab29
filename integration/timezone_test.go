package integration

import (
	"math"
	"testing"
	"time"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/conflict"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/timeline"
)

func loadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	cfg := config.Default()
	cfg.View.Timezone = name
	if err := cfg.Validate(); err != nil {
		t.Fatalf("timezone %s: %v", name, err)
	}
	return cfg.Location()
}

func TestWeekWindowFollowsTimezone(t *testing.T) {
	tokyo := loadLocation(t, "Asia/Tokyo")

	// Saturday evening in UTC is already Sunday morning in Tokyo.
	standup := &task.Task{
		ID:        "s",
		Title:     "Standup",
		StartDate: time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 1, 22, 0, 0, 0, time.UTC),
		Priority:  task.PriorityLow,
	}

	utcWeek := timeline.NewWindow(now, timeline.ModeWeek)
	if _, ok := timeline.LayoutTask(standup, utcWeek); ok {
		t.Errorf("task should fall in the previous UTC week (window starts %v)", utcWeek.Start)
	}

	tokyoWeek := timeline.NewWindow(now.In(tokyo), timeline.ModeWeek)
	if got := tokyoWeek.Buckets[0]; got.Weekday() != time.Sunday || got.Day() != 2 || got.Location() != tokyo {
		t.Errorf("first Tokyo bucket = %v", got)
	}
	p, ok := timeline.LayoutTask(standup, tokyoWeek)
	if !ok || p.IsPartial() {
		t.Fatalf("placement in Tokyo = %+v, %t", p, ok)
	}
	// 05:00 Sunday is 5/168 of the week.
	if want := 5.0 / 168 * 100; math.Abs(p.Left-want) > 1e-6 {
		t.Errorf("left = %f, want %f", p.Left, want)
	}
}

func TestDayWindowAcrossDaylightSaving(t *testing.T) {
	ny := loadLocation(t, "America/New_York")

	// Clocks jump from 02:00 to 03:00 on 2025-03-09.
	anchor := time.Date(2025, 3, 9, 15, 0, 0, 0, ny)
	w := timeline.NewWindow(anchor, timeline.ModeDay)

	if len(w.Buckets) != 24 {
		t.Fatalf("got %d buckets", len(w.Buckets))
	}
	if got, want := w.Duration(), 23*time.Hour-time.Millisecond; got != want {
		t.Errorf("duration = %v, want %v", got, want)
	}

	lunch := &task.Task{
		ID:        "l",
		Title:     "Lunch",
		StartDate: time.Date(2025, 3, 9, 12, 0, 0, 0, ny),
		EndDate:   time.Date(2025, 3, 9, 13, 0, 0, 0, ny),
		Priority:  task.PriorityLow,
	}
	p, ok := timeline.LayoutTask(lunch, w)
	if !ok {
		t.Fatal("lunch should be visible")
	}
	// Only eleven real hours pass between midnight and noon that day.
	total := float64(w.Duration())
	if want := float64(11*time.Hour) / total * 100; math.Abs(p.Left-want) > 1e-9 {
		t.Errorf("left = %f, want %f", p.Left, want)
	}
	if p.Width < timeline.MinDayWidth {
		t.Errorf("width %f below the day minimum", p.Width)
	}
}

func TestConflictsIgnoreDisplayZone(t *testing.T) {
	tokyo := loadLocation(t, "Asia/Tokyo")
	members := []task.Member{{ID: "1", Name: "Alice Johnson"}}

	// The same instants expressed in different zones still overlap.
	a := &task.Task{
		ID:         "a",
		Title:      "Review",
		StartDate:  time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC),
		AssignedTo: []string{"1"},
		Priority:   task.PriorityMedium,
	}
	b := &task.Task{
		ID:         "b",
		Title:      "Call",
		StartDate:  time.Date(2025, 3, 5, 20, 0, 0, 0, tokyo), // 11:00 UTC
		EndDate:    time.Date(2025, 3, 5, 22, 0, 0, 0, tokyo),
		AssignedTo: []string{"1"},
		Priority:   task.PriorityMedium,
	}
	if !conflict.Detect([]*task.Task{a, b}, members).Has("a", "b") {
		t.Error("expected a conflict across zones")
	}

	// Ending exactly when the other starts is not a conflict in any zone.
	b.StartDate = time.Date(2025, 3, 5, 21, 0, 0, 0, tokyo) // 12:00 UTC
	if conflict.Detect([]*task.Task{a, b}, members).Len() != 0 {
		t.Error("touching intervals should not conflict")
	}
}
