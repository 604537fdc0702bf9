package vending

import (
	"sort"
	"time"
)

// Scheduler runs one-shot callbacks against a frame-driven clock.
// Tasks fire inside Advance, on the caller's goroutine.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	tasks  []*task
}

type task struct {
	id  uint64
	due time.Duration
	fn  func()
}

// Timer is a handle to a scheduled task.
type Timer struct {
	s  *Scheduler
	id uint64
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by d.
func (s *Scheduler) After(d time.Duration, fn func()) Timer {
	s.nextID++
	s.tasks = append(s.tasks, &task{id: s.nextID, due: s.now + d, fn: fn})
	return Timer{s: s, id: s.nextID}
}

// Advance moves the clock forward and runs every task that is now due,
// earliest first. Tasks scheduled by a running task wait for a later Advance
// unless already due.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	for {
		t := s.popDue()
		if t == nil {
			return
		}
		t.fn()
	}
}

func (s *Scheduler) popDue() *task {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool { return s.tasks[i].due < s.tasks[j].due })
	if s.tasks[0].due > s.now {
		return nil
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t
}

// Pending returns the number of tasks not yet fired.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Dispose drops every pending task.
func (s *Scheduler) Dispose() {
	s.tasks = nil
}

// Stop cancels the timer. It reports whether the task was still pending.
func (t Timer) Stop() bool {
	if t.s == nil {
		return false
	}
	for i, tk := range t.s.tasks {
		if tk.id == t.id {
			t.s.tasks = append(t.s.tasks[:i], t.s.tasks[i+1:]...)
			return true
		}
	}
	return false
}
