package collab

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/gantt/internal/schedule"
	"github.com/javiermolinar/gantt/internal/task"
)

var clock = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)

func fixed() time.Time { return clock }

func roster() []task.Member {
	return []task.Member{
		{ID: "1", Name: "Alice Johnson"},
		{ID: "2", Name: "Bob Smith"},
	}
}

func TestNext(t *testing.T) {
	p := New(WithRand(rand.New(rand.NewPCG(1, 2))), WithClock(fixed))
	last := &task.Task{
		ID:        "x",
		StartDate: clock,
		EndDate:   clock.Add(48 * time.Hour),
	}

	got, msg, ok := p.Next([]*task.Task{last}, roster())
	if !ok {
		t.Fatal("Next() = false")
	}
	if got.ID != "collab-1741176000000" {
		t.Errorf("id = %q", got.ID)
	}
	if got.Title != "Collaborator Task 1" {
		t.Errorf("title = %q", got.Title)
	}
	if !got.StartDate.Equal(last.EndDate.Add(task.Day)) || !got.EndDate.Equal(last.EndDate.Add(3*task.Day)) {
		t.Errorf("interval = %v..%v", got.StartDate, got.EndDate)
	}
	if len(got.AssignedTo) != 1 {
		t.Fatalf("assignees = %v", got.AssignedTo)
	}

	var who task.Member
	for _, m := range roster() {
		if m.ID == got.AssignedTo[0] {
			who = m
		}
	}
	if who.Name == "" {
		t.Fatalf("assigned to unknown member %q", got.AssignedTo[0])
	}
	if got.Description != "Added by "+who.Name || msg != who.Name+" added a new task" {
		t.Errorf("description %q, message %q", got.Description, msg)
	}
	if !got.Priority.Valid() {
		t.Errorf("priority = %q", got.Priority)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("produced invalid task: %v", err)
	}
}

func TestNext_NothingToFollow(t *testing.T) {
	p := New()
	if _, _, ok := p.Next(nil, roster()); ok {
		t.Error("Next() with no tasks = true")
	}
	if _, _, ok := p.Next([]*task.Task{{ID: "a"}}, nil); ok {
		t.Error("Next() with no members = true")
	}
	if p.Produced() != 0 {
		t.Errorf("Produced() = %d", p.Produced())
	}
}

func TestNext_FeedsStore(t *testing.T) {
	store := schedule.New()
	err := store.Seed(roster(), []*task.Task{{
		ID:        "seed",
		Title:     "Seed",
		StartDate: clock,
		EndDate:   clock.Add(task.Day),
		Priority:  task.PriorityMedium,
	}})
	if err != nil {
		t.Fatal(err)
	}

	p := New(WithClock(fixed))
	for i := range 3 {
		tk, msg, ok := p.Next(store.Tasks(), store.Members())
		if !ok {
			t.Fatalf("step %d: Next() = false", i)
		}
		if err := store.InsertTask(tk, msg); err != nil {
			t.Fatalf("step %d: InsertTask() error: %v", i, err)
		}
		p.Commit()
	}

	tasks := store.Tasks()
	if len(tasks) != 4 {
		t.Fatalf("got %d tasks, want 4", len(tasks))
	}
	// Same clock every step: ids are disambiguated.
	if tasks[2].ID != "collab-1741176000000-2" || tasks[3].ID != "collab-1741176000000-3" {
		t.Errorf("ids = %s, %s", tasks[2].ID, tasks[3].ID)
	}
	// Each produced task chains off the previous one.
	for i := 1; i < len(tasks); i++ {
		if !tasks[i].StartDate.Equal(tasks[i-1].EndDate.Add(task.Day)) {
			t.Errorf("task %d does not follow task %d", i, i-1)
		}
	}
	if !strings.HasPrefix(tasks[3].Title, "Collaborator Task 3") || p.Produced() != 3 {
		t.Errorf("title = %q, produced = %d", tasks[3].Title, p.Produced())
	}
}

func TestNext_RejectedTaskKeepsNumber(t *testing.T) {
	store := schedule.New()
	err := store.Seed(roster(), []*task.Task{{
		ID:        "seed",
		Title:     "Seed",
		StartDate: clock,
		EndDate:   clock.Add(task.Day),
		Priority:  task.PriorityMedium,
	}})
	if err != nil {
		t.Fatal(err)
	}
	p := New(WithClock(fixed))

	// A roster the store does not know makes the insert fail.
	strangers := []task.Member{{ID: "9", Name: "Zed Stranger"}}
	rejected, msg, ok := p.Next(store.Tasks(), strangers)
	if !ok {
		t.Fatal("Next() = false")
	}
	if err := store.InsertTask(rejected, msg); !errors.Is(err, task.ErrUnknownAssignee) {
		t.Fatalf("InsertTask() error = %v, want %v", err, task.ErrUnknownAssignee)
	}
	if p.Produced() != 0 {
		t.Errorf("Produced() = %d after a rejected insert", p.Produced())
	}

	accepted, msg, _ := p.Next(store.Tasks(), store.Members())
	if accepted.Title != rejected.Title {
		t.Errorf("title = %q, want %q reused", accepted.Title, rejected.Title)
	}
	if err := store.InsertTask(accepted, msg); err != nil {
		t.Fatalf("InsertTask() error: %v", err)
	}
	p.Commit()

	next, _, _ := p.Next(store.Tasks(), store.Members())
	if next.Title != "Collaborator Task 2" || p.Produced() != 1 {
		t.Errorf("title = %q, produced = %d", next.Title, p.Produced())
	}
}
