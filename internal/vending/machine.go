package vending

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/emoji-vend/internal/logger"
	"github.com/Faultbox/emoji-vend/pkg/math"
)

// NoSelectionMessage is shown when OK is pressed before choosing an emoji.
const NoSelectionMessage = "Please select one of the emoji buttons."

// Default timings.
const (
	SelectPulse     = 200 * time.Millisecond
	ConfirmPulse    = 300 * time.Millisecond
	CancelPulse     = 300 * time.Millisecond
	CompletionDelay = 1500 * time.Millisecond
)

// Validation errors. None of them is fatal; the machine is unchanged when one is returned.
var (
	ErrNoSelection   = errors.New("no item selected")
	ErrInputDisabled = errors.New("input disabled while dispensing")
	ErrUnknownItem   = errors.New("unknown item")
	ErrUnknownButton = errors.New("unknown button")
)

// State is the selection state machine's state.
type State int

// Machine states.
const (
	StateIdle State = iota
	StateSelected
	StateConfirming
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateConfirming:
		return "confirming"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Host receives the machine's outputs. Calls happen synchronously from the
// event methods and from Update.
type Host interface {
	SetLoading(loading bool)
	SetMessage(msg string)
	SetCursorStyle(style CursorStyle)
	SelectionChanged(id ItemID)
	HoverChanged(b Button)
	AnimationComplete()
}

// CuePlayer plays a feedback clip from the start.
type CuePlayer interface {
	Play(c Cue) error
}

// Options tunes the machine's timings. Zero values take the defaults.
type Options struct {
	FirstSegment    time.Duration
	CompletionDelay time.Duration
	Logger          *zap.Logger
}

// Machine is one vending machine widget: selection, dispense animation, face
// and reset. It is not safe for concurrent use; drive it from the frame loop.
type Machine struct {
	host   Host
	cues   CuePlayer
	log    *zap.Logger
	timers *Scheduler
	anim   *Animator

	completionDelay time.Duration

	selected     ItemID
	hovered      Button
	inputEnabled bool
	message      string

	pulses      Pulses
	pulseTimers map[Pulse]Timer

	resetRequested    bool
	animationComplete bool

	pointer   math.Vec2
	face      Face
	positions map[ItemID]math.Vec3

	closed bool
}

// New creates a machine at rest. host and cues may be nil.
func New(host Host, cues CuePlayer, opts Options) *Machine {
	if host == nil {
		host = nopHost{}
	}
	if opts.CompletionDelay <= 0 {
		opts.CompletionDelay = CompletionDelay
	}
	if opts.Logger == nil {
		opts.Logger = logger.Named("vending")
	}

	m := &Machine{
		host:            host,
		cues:            cues,
		log:             opts.Logger,
		timers:          NewScheduler(),
		anim:            NewAnimator(opts.FirstSegment),
		completionDelay: opts.CompletionDelay,
		inputEnabled:    true,
		pulseTimers:     make(map[Pulse]Timer),
		face:            NewFace(),
		positions:       make(map[ItemID]math.Vec3, len(catalog)),
	}
	m.snapToShelves()
	return m
}

// Loaded tells the host that assets are ready. Call once after loading.
func (m *Machine) Loaded() {
	m.host.SetLoading(false)
}

// State returns the current selection state.
func (m *Machine) State() State {
	switch {
	case !m.inputEnabled:
		return StateConfirming
	case m.selected != ItemNone:
		return StateSelected
	default:
		return StateIdle
	}
}

// Selected returns the selected item, or ItemNone.
func (m *Machine) Selected() ItemID { return m.selected }

// Hovered returns the hovered button, or ButtonNone.
func (m *Machine) Hovered() Button { return m.hovered }

// InputEnabled reports whether clicks are accepted.
func (m *Machine) InputEnabled() bool { return m.inputEnabled }

// Message returns the user-facing message, empty when none.
func (m *Machine) Message() string { return m.message }

// Animation returns the dispense animation snapshot.
func (m *Machine) Animation() AnimationState { return m.anim.State() }

// AnimationCompleted reports whether a dispense has finished since the last reset.
func (m *Machine) AnimationCompleted() bool { return m.animationComplete }

// ActivePulse returns the press pulse currently driving the eyebrows.
func (m *Machine) ActivePulse() Pulse { return m.pulses.Active() }

// Face returns the rendered face node positions.
func (m *Machine) Face() Face { return m.face }

// ResetPending reports whether a reset has been requested but not applied.
func (m *Machine) ResetPending() bool { return m.resetRequested }

// ItemPosition returns the rendered position of an item.
func (m *Machine) ItemPosition(id ItemID) (math.Vec3, bool) {
	p, ok := m.positions[id]
	return p, ok
}

// Click handles a press on any button.
func (m *Machine) Click(b Button) error {
	switch b {
	case ButtonOK:
		return m.Confirm()
	case ButtonCancel:
		return m.Cancel()
	}
	id, ok := b.Item()
	if !ok {
		return fmt.Errorf("click %q: %w", b, ErrUnknownButton)
	}
	return m.SelectItem(id)
}

// SelectItem chooses id, replacing any previous selection.
func (m *Machine) SelectItem(id ItemID) error {
	if !m.inputEnabled {
		return ErrInputDisabled
	}
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("select %q: %w", id, ErrUnknownItem)
	}

	m.setMessage("")
	m.play(CueEmoji)
	m.setSelected(id)
	m.pulse(PulseSelect, SelectPulse)
	return nil
}

// Cancel clears the selection. Input stays enabled.
func (m *Machine) Cancel() error {
	if !m.inputEnabled {
		return ErrInputDisabled
	}

	m.play(CueCancel)
	m.setSelected(ItemNone)
	m.pulse(PulseCancel, CancelPulse)
	return nil
}

// Confirm dispenses the selected item. Without a selection it only shows
// NoSelectionMessage and returns ErrNoSelection.
func (m *Machine) Confirm() error {
	if !m.inputEnabled {
		return ErrInputDisabled
	}
	if m.selected == ItemNone {
		m.setMessage(NoSelectionMessage)
		m.log.Debug("confirm without selection")
		return ErrNoSelection
	}
	item, _ := Lookup(m.selected)

	m.play(CueCheck)
	m.host.SetCursorStyle(CursorAuto)
	m.inputEnabled = false
	m.animationComplete = false
	m.pulse(PulseConfirm, ConfirmPulse)
	m.anim.Start(item)

	m.log.Info("dispensing",
		zap.String("item", string(item.ID)),
		zap.Duration("duration", m.anim.Total(item)),
	)
	return nil
}

// ClearSelection drops the selection without feedback, the way the host does
// once the dispense popup is dismissed. Ignored while input is disabled.
func (m *Machine) ClearSelection() {
	if !m.inputEnabled || m.selected == ItemNone {
		return
	}
	m.setSelected(ItemNone)
}

// HoverEnter marks b as hovered. Ignored while input is disabled.
func (m *Machine) HoverEnter(b Button) {
	if !m.inputEnabled || !b.Valid() {
		return
	}
	m.host.SetCursorStyle(CursorPointer)
	m.setHovered(b)
}

// HoverExit clears the hover target. Ignored while input is disabled.
func (m *Machine) HoverExit() {
	if !m.inputEnabled {
		return
	}
	m.host.SetCursorStyle(CursorAuto)
	m.setHovered(ButtonNone)
}

// SetPointer stores the latest normalized pointer sample. Components outside
// [-1,1] are clamped.
func (m *Machine) SetPointer(x, y float32) {
	m.pointer = math.Vec2{X: x, Y: y}.ClampUnit()
}

// RequestReset asks for every item to return to its shelf on the next idle frame.
func (m *Machine) RequestReset() {
	m.resetRequested = true
}

// Update advances the machine by one frame of dt.
func (m *Machine) Update(dt time.Duration) {
	if m.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}

	m.timers.Advance(dt)
	m.applyReset()
	m.face.step(m.pointer, m.pulses)
	m.stepAnimation(dt)
}

// Close cancels every pending timer. The machine ignores Update afterwards.
func (m *Machine) Close() {
	m.timers.Dispose()
	m.pulseTimers = make(map[Pulse]Timer)
	m.closed = true
}

func (m *Machine) stepAnimation(dt time.Duration) {
	st := m.anim.State()
	if !st.Active {
		return
	}
	pos, done := m.anim.Step(dt)
	m.positions[st.Item] = pos
	if !done {
		return
	}

	m.log.Debug("dispense settled", zap.String("item", string(st.Item)))
	m.timers.After(m.completionDelay, m.finishDispense)
}

// finishDispense runs after the settle delay.
func (m *Machine) finishDispense() {
	if m.closed {
		return
	}
	m.animationComplete = true
	m.inputEnabled = true
	m.host.AnimationComplete()
	m.log.Info("dispense complete", zap.String("item", string(m.selected)))
}

// applyReset snaps items home. A reset requested mid-flight waits until the
// animation has finished.
func (m *Machine) applyReset() {
	if !m.resetRequested || m.anim.Active() {
		return
	}
	m.snapToShelves()
	m.resetRequested = false
	m.animationComplete = false
}

func (m *Machine) snapToShelves() {
	for _, it := range catalog {
		m.positions[it.ID] = it.Shelf
	}
}

// pulse raises kind for d. Re-pulsing restarts the timer.
func (m *Machine) pulse(kind Pulse, d time.Duration) {
	if t, ok := m.pulseTimers[kind]; ok {
		t.Stop()
	}
	m.pulses.set(kind, true)
	m.pulseTimers[kind] = m.timers.After(d, func() {
		m.pulses.set(kind, false)
		delete(m.pulseTimers, kind)
	})
}

func (m *Machine) play(c Cue) {
	if m.cues == nil {
		return
	}
	if err := m.cues.Play(c); err != nil {
		m.log.Warn("cue playback failed", zap.String("cue", string(c)), zap.Error(err))
	}
}

func (m *Machine) setMessage(msg string) {
	m.message = msg
	m.host.SetMessage(msg)
}

func (m *Machine) setSelected(id ItemID) {
	m.selected = id
	m.host.SelectionChanged(id)
}

func (m *Machine) setHovered(b Button) {
	m.hovered = b
	m.host.HoverChanged(b)
}

type nopHost struct{}

func (nopHost) SetLoading(bool) {}
func (nopHost) SetMessage(string) {}
func (nopHost) SetCursorStyle(CursorStyle) {}
func (nopHost) SelectionChanged(ItemID) {}
func (nopHost) HoverChanged(Button) {}
func (nopHost) AnimationComplete() {}
