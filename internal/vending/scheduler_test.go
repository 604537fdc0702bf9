package vending

import (
	"testing"
	"time"
)

func TestSchedulerFiresInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(300*time.Millisecond, func() { order = append(order, "late") })
	s.After(100*time.Millisecond, func() { order = append(order, "early") })

	s.Advance(99 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("fired too early: %v", order)
	}

	s.Advance(time.Second)
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("order = %v, want [early late]", order)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestSchedulerFiresAtExactDue(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(1500*time.Millisecond, func() { fired = true })

	for i := 0; i < 149; i++ {
		s.Advance(10 * time.Millisecond)
	}
	if fired {
		t.Fatal("fired at 1490ms")
	}
	s.Advance(10 * time.Millisecond)
	if !fired {
		t.Error("did not fire at 1500ms")
	}
}

func TestTimerStop(t *testing.T) {
	s := NewScheduler()
	fired := false
	tm := s.After(10*time.Millisecond, func() { fired = true })

	if !tm.Stop() {
		t.Error("Stop() on pending timer returned false")
	}
	if tm.Stop() {
		t.Error("second Stop() returned true")
	}
	s.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}

	var zero Timer
	if zero.Stop() {
		t.Error("zero Timer Stop() returned true")
	}
}

func TestSchedulerDispose(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(time.Millisecond, func() { fired++ })
	s.After(time.Second, func() { fired++ })

	s.Dispose()
	s.Advance(time.Hour)
	if fired != 0 {
		t.Errorf("disposed tasks fired %d times", fired)
	}
}
