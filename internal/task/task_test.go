package task

import (
	"errors"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func validTask() *Task {
	return &Task{
		ID:        "1",
		Title:     "Project Planning",
		StartDate: day(0),
		EndDate:   day(5),
		Priority:  PriorityHigh,
	}
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{name: "valid", mutate: func(*Task) {}},
		{name: "empty id", mutate: func(t *Task) { t.ID = " " }, wantErr: ErrEmptyTaskID},
		{name: "empty title", mutate: func(t *Task) { t.Title = "" }, wantErr: ErrEmptyTitle},
		{name: "end equals start", mutate: func(t *Task) { t.EndDate = t.StartDate }, wantErr: ErrEndBeforeStart},
		{name: "end before start", mutate: func(t *Task) { t.EndDate = day(-1) }, wantErr: ErrEndBeforeStart},
		{name: "negative progress", mutate: func(t *Task) { t.Progress = -1 }, wantErr: ErrInvalidProgress},
		{name: "progress over 100", mutate: func(t *Task) { t.Progress = 101 }, wantErr: ErrInvalidProgress},
		{name: "unknown priority", mutate: func(t *Task) { t.Priority = "urgent" }, wantErr: ErrInvalidPriority},
		{name: "self dependency", mutate: func(t *Task) { t.Dependencies = []string{"1"} }, wantErr: ErrSelfDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := validTask()
			tt.mutate(tsk)
			err := tsk.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{input: "low", want: PriorityLow},
		{input: "Medium", want: PriorityMedium},
		{input: " HIGH ", want: PriorityHigh},
		{input: "urgent", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPriority) {
				t.Errorf("ParsePriority(%q) error = %v, want ErrInvalidPriority", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMember_Validate(t *testing.T) {
	if err := (&Member{ID: "1", Name: "Alice Johnson"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (&Member{Name: "Alice"}).Validate(); !errors.Is(err, ErrEmptyMemberID) {
		t.Errorf("got %v, want ErrEmptyMemberID", err)
	}
	if err := (&Member{ID: "1"}).Validate(); !errors.Is(err, ErrEmptyMemberName) {
		t.Errorf("got %v, want ErrEmptyMemberName", err)
	}
}

func TestTask_Overlaps(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{name: "overlapping", start: 3, end: 8, want: true},
		{name: "contained", start: 1, end: 2, want: true},
		{name: "touching end", start: 5, end: 8, want: false},
		{name: "touching start", start: -3, end: 0, want: false},
		{name: "disjoint", start: 6, end: 9, want: false},
	}

	a := validTask()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Task{ID: "2", StartDate: day(tt.start), EndDate: day(tt.end)}
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.want)
			}
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("b.Overlaps(a) = %v, want %v", got, tt.want)
			}
		})
	}

	if a.Overlaps(nil) {
		t.Error("expected no overlap with nil task")
	}
}

func TestTask_Clone(t *testing.T) {
	orig := validTask()
	orig.AssignedTo = []string{"1", "2"}
	orig.Dependencies = []string{"0"}

	c := orig.Clone()
	c.AssignedTo[0] = "9"
	c.Dependencies = append(c.Dependencies, "5")
	c.Title = "Changed"

	if orig.AssignedTo[0] != "1" {
		t.Errorf("clone shares AssignedTo backing array")
	}
	if len(orig.Dependencies) != 1 {
		t.Errorf("clone shares Dependencies")
	}
	if orig.Title != "Project Planning" {
		t.Errorf("clone changed original title")
	}
}

func TestTask_IsAssignedAndDuration(t *testing.T) {
	tsk := validTask()
	tsk.AssignedTo = []string{"3"}

	if !tsk.IsAssigned("3") {
		t.Error("expected member 3 to be assigned")
	}
	if tsk.IsAssigned("4") {
		t.Error("expected member 4 not to be assigned")
	}
	if got := tsk.Duration(); got != 5*Day {
		t.Errorf("Duration() = %v, want %v", got, 5*Day)
	}
}

func TestPatch_Apply(t *testing.T) {
	orig := validTask()
	orig.AssignedTo = []string{"1"}

	title := "Renamed"
	progress := 40
	p := Patch{
		Title:      &title,
		Progress:   &progress,
		AssignedTo: []string{"2", "2", "3"},
	}
	got := p.Apply(orig)

	if got.Title != "Renamed" || got.Progress != 40 {
		t.Errorf("patch fields not applied: %+v", got)
	}
	if len(got.AssignedTo) != 2 || got.AssignedTo[0] != "2" || got.AssignedTo[1] != "3" {
		t.Errorf("AssignedTo = %v, want [2 3]", got.AssignedTo)
	}
	if orig.Title != "Project Planning" || orig.AssignedTo[0] != "1" {
		t.Errorf("Apply modified the original task")
	}
	if !got.StartDate.Equal(orig.StartDate) || !got.EndDate.Equal(orig.EndDate) {
		t.Errorf("untouched dates changed")
	}
}

func TestPatch_IsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if SetStart(day(1)).IsEmpty() {
		t.Error("SetStart patch should not be empty")
	}
	if (Patch{AssignedTo: []string{}}).IsEmpty() {
		t.Error("clearing assignees is a change")
	}

	p := Reschedule(day(1), day(2))
	if !p.StartDate.Equal(day(1)) || !p.EndDate.Equal(day(2)) {
		t.Errorf("Reschedule = %v..%v", p.StartDate, p.EndDate)
	}
	if e := SetEnd(day(3)); e.StartDate != nil || !e.EndDate.Equal(day(3)) {
		t.Errorf("SetEnd should only set EndDate")
	}
}
