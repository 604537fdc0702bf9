package vending

import (
	"time"

	"github.com/Faultbox/emoji-vend/pkg/math"
)

// FirstSegment is the default duration of the sideways push off the shelf.
const FirstSegment = 500 * time.Millisecond

// completionEpsilon absorbs float error from summing per-frame increments, so a
// run whose frame deltas add up to exactly the total duration always finishes.
const completionEpsilon = 1e-9

// AnimationState is a snapshot of the dispense animation.
type AnimationState struct {
	Active   bool
	Progress float64 // [0,1]; reset to 0 once a run finishes
	Item     ItemID
}

// Animator moves one item along an L-shaped path: shelf to corner, then corner
// to the chute. Both legs are linear.
type Animator struct {
	first time.Duration

	item     Item
	active   bool
	progress float64
}

// NewAnimator creates an animator whose first leg lasts first.
func NewAnimator(first time.Duration) *Animator {
	if first <= 0 {
		first = FirstSegment
	}
	return &Animator{first: first}
}

// Start begins a run for item from progress 0.
func (a *Animator) Start(item Item) {
	a.item = item
	a.active = true
	a.progress = 0
}

// Abort stops the current run without completing it.
func (a *Animator) Abort() {
	a.active = false
	a.progress = 0
}

// Active reports whether a run is in progress.
func (a *Animator) Active() bool {
	return a.active
}

// State returns the current animation snapshot.
func (a *Animator) State() AnimationState {
	st := AnimationState{Active: a.active, Progress: a.progress}
	if a.active {
		st.Item = a.item.ID
	}
	return st
}

// Total returns the full run duration for item.
func (a *Animator) Total(item Item) time.Duration {
	return a.first + item.FallDuration
}

// Step advances the run by dt and returns the item's new position.
// done is true on the frame the run reaches the end; the position is then
// exactly the item's end point and the animator is idle again.
func (a *Animator) Step(dt time.Duration) (pos math.Vec3, done bool) {
	if !a.active {
		return math.Vec3{}, false
	}
	total := a.Total(a.item).Seconds()
	if dt < 0 {
		dt = 0
	}

	progress := a.progress + dt.Seconds()/total
	if progress >= 1-completionEpsilon {
		progress = 1
	}
	a.progress = progress

	if progress >= 1 {
		a.active = false
		a.progress = 0
		return a.item.End(), true
	}
	return a.positionAt(progress), false
}

// positionAt maps overall progress to a point on the L-shaped path.
func (a *Animator) positionAt(progress float64) math.Vec3 {
	total := a.Total(a.item).Seconds()
	boundary := a.first.Seconds() / total

	if progress < boundary {
		local := progress / boundary
		return math.Lerp(a.item.Shelf, a.item.Corner(), float32(local))
	}
	local := (progress - boundary) / (a.item.FallDuration.Seconds() / total)
	return math.Lerp(a.item.Corner(), a.item.End(), float32(local))
}
