// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/emoji-vend/pkg/math"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseLeave
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	Wheel  float32
}

// Input handles all input processing.
type Input struct {
	events  []Event
	pointer Pointer
}

// New creates a new input handler for a viewport of the given size.
func New(width, height int) *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		pointer: Pointer{Width: width, Height: height},
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.push(Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				i.push(Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)})
			case sdl.WINDOWEVENT_LEAVE:
				i.push(Event{Type: EventMouseLeave})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.push(Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.push(Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)})

		case *sdl.MouseButtonEvent:
			typ := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = EventMouseUp
			}
			i.push(Event{Type: typ, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button})

		case *sdl.MouseWheelEvent:
			i.push(Event{Type: EventWheel, Wheel: float32(e.Y)})
		}
	}

	return false
}

// push records e and folds it into the pointer state.
func (i *Input) push(e Event) {
	i.events = append(i.events, e)
	i.pointer.Apply(e)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Pointer returns the current pointer state.
func (i *Input) Pointer() Pointer {
	return i.pointer
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Pointer tracks the mouse in window pixels.
type Pointer struct {
	X, Y          int
	Width, Height int
	Inside        bool
}

// Apply updates the pointer from one event.
func (p *Pointer) Apply(e Event) {
	switch e.Type {
	case EventMouseMove, EventMouseDown, EventMouseUp:
		p.X, p.Y = e.MouseX, e.MouseY
		p.Inside = true
	case EventMouseLeave:
		p.Inside = false
	case EventWindowResize:
		p.Width, p.Height = e.Width, e.Height
	}
}

// NDC returns the pointer in normalized device coordinates.
func (p Pointer) NDC() math.Vec2 {
	return NDC(p.X, p.Y, p.Width, p.Height)
}

// NDC maps a pixel position to [-1, 1] on both axes with y up. A degenerate
// viewport maps to the center.
func NDC(x, y, width, height int) math.Vec2 {
	if width <= 0 || height <= 0 {
		return math.Vec2{}
	}
	ndc := math.Vec2{
		X: 2*float32(x)/float32(width) - 1,
		Y: 1 - 2*float32(y)/float32(height), // Flip Y
	}
	return ndc.ClampUnit()
}
