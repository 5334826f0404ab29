// Package collab simulates a teammate adding tasks to the schedule.
package collab

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/javiermolinar/gantt/internal/task"
)

// Producer manufactures collaborator tasks. Each task starts one day after
// the last task in the list ends and lasts two days.
type Producer struct {
	rng      *rand.Rand
	now      func() time.Time
	produced int
}

// Option configures a Producer.
type Option func(*Producer)

// WithRand sets the random source used to pick the collaborator and priority.
func WithRand(r *rand.Rand) Option {
	return func(p *Producer) {
		if r != nil {
			p.rng = r
		}
	}
}

// WithClock overrides time.Now for id generation.
func WithClock(now func() time.Time) Option {
	return func(p *Producer) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a producer.
func New(opts ...Option) *Producer {
	p := &Producer{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Produced returns how many tasks the schedule has accepted from the producer.
func (p *Producer) Produced() int {
	return p.produced
}

// Commit records that the last task from Next was accepted. Titles are
// numbered by accepted tasks, so a rejected task does not use up a number.
func (p *Producer) Commit() {
	p.produced++
}

// Next returns the next collaborator task and the notification text for it.
// It returns false when there are no tasks to follow or no members to act as
// the collaborator. Call Commit once the task is stored.
func (p *Producer) Next(tasks []*task.Task, members []task.Member) (*task.Task, string, bool) {
	if len(tasks) == 0 || len(members) == 0 {
		return nil, "", false
	}

	who := members[p.rng.IntN(len(members))]
	last := tasks[len(tasks)-1]
	priorities := task.Priorities()

	t := &task.Task{
		ID:           p.nextID(tasks),
		Title:        fmt.Sprintf("Collaborator Task %d", p.produced+1),
		Description:  "Added by " + who.Name,
		StartDate:    last.EndDate.Add(task.Day),
		EndDate:      last.EndDate.Add(3 * task.Day),
		AssignedTo:   []string{who.ID},
		Priority:     priorities[p.rng.IntN(len(priorities))],
		Dependencies: []string{},
	}
	return t, who.Name + " added a new task", true
}

// nextID returns "collab-<unix ms>", suffixed if that id is already taken.
func (p *Producer) nextID(tasks []*task.Task) string {
	base := fmt.Sprintf("collab-%d", p.now().UnixMilli())
	taken := func(id string) bool {
		return slices.ContainsFunc(tasks, func(t *task.Task) bool { return t.ID == id })
	}
	id := base
	for n := 2; taken(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}
