package states

import (
	"errors"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/emoji-vend/internal/engine/camera"
	"github.com/Faultbox/emoji-vend/internal/engine/input"
	"github.com/Faultbox/emoji-vend/internal/engine/picking"
	"github.com/Faultbox/emoji-vend/internal/logger"
	"github.com/Faultbox/emoji-vend/internal/scene"
	"github.com/Faultbox/emoji-vend/internal/vending"
	"github.com/Faultbox/emoji-vend/pkg/math"
)

// Drawer renders a composed frame. *renderer.Renderer implements it.
type Drawer interface {
	Aspect() float32
	Draw(viewProj math.Mat4, items []scene.DrawItem)
}

// Popup is the post-dispense notice shown by the host.
type Popup interface {
	PopupOpen() bool
	ClosePopup()
}

// yawStep is the camera turn per arrow key press, in radians.
const yawStep = 0.1

// MachineStateConfig contains configuration for the machine state.
type MachineStateConfig struct {
	Machine  *vending.Machine
	Composer *scene.Composer
	Camera   *camera.OrbitCamera
	Drawer   Drawer
	Popup    Popup
	Width    int
	Height   int
}

// MachineState feeds pointer input into the vending machine and draws it.
type MachineState struct {
	config  MachineStateConfig
	log     *zap.Logger
	pointer input.Pointer
}

// NewMachineState creates the interactive state.
func NewMachineState(cfg MachineStateConfig) *MachineState {
	return &MachineState{
		config:  cfg,
		log:     logger.Named("machine"),
		pointer: input.Pointer{Width: cfg.Width, Height: cfg.Height},
	}
}

// Enter is called when entering this state.
func (s *MachineState) Enter() error {
	s.log.Info("entering MachineState")
	return nil
}

// Exit is called when leaving this state.
func (s *MachineState) Exit() error {
	return nil
}

// Update ticks the machine.
func (s *MachineState) Update(dt time.Duration) error {
	s.config.Machine.Update(dt)
	return nil
}

// Render composes the scene and draws it.
func (s *MachineState) Render() error {
	viewProj := s.config.Camera.ViewProjection(s.config.Drawer.Aspect())
	s.config.Drawer.Draw(viewProj, s.config.Composer.Compose(s.config.Machine))
	return nil
}

// HandleInput maps pointer and key events onto machine operations.
func (s *MachineState) HandleInput(event input.Event) error {
	s.pointer.Apply(event)
	m := s.config.Machine

	switch event.Type {
	case input.EventMouseMove:
		ndc := s.pointer.NDC()
		m.SetPointer(ndc.X, ndc.Y)
		s.hover(s.pick())

	case input.EventMouseLeave:
		s.hover(vending.ButtonNone)

	case input.EventMouseDown:
		if event.Button != sdl.BUTTON_LEFT {
			return nil
		}
		if s.closePopup() {
			return nil
		}
		if b := s.pick(); b != vending.ButtonNone {
			s.click(b)
		}

	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER:
			s.closePopup()
		case sdl.SCANCODE_LEFT:
			s.config.Camera.HandleYaw(-yawStep)
		case sdl.SCANCODE_RIGHT:
			s.config.Camera.HandleYaw(yawStep)
		}

	case input.EventWheel:
		s.config.Camera.HandleZoom(event.Wheel)
	}
	return nil
}

// pick returns the button under the pointer.
func (s *MachineState) pick() vending.Button {
	if !s.pointer.Inside {
		return vending.ButtonNone
	}
	inv := s.config.Camera.InvViewProjection(s.config.Drawer.Aspect())
	return s.config.Composer.Pick(picking.ScreenToRay(s.pointer.NDC(), inv))
}

func (s *MachineState) hover(b vending.Button) {
	m := s.config.Machine
	if b == m.Hovered() {
		return
	}
	if b == vending.ButtonNone {
		m.HoverExit()
		return
	}
	m.HoverEnter(b)
}

func (s *MachineState) click(b vending.Button) {
	err := s.config.Machine.Click(b)
	switch {
	case err == nil:
	case errors.Is(err, vending.ErrNoSelection), errors.Is(err, vending.ErrInputDisabled):
		s.log.Debug("click ignored", zap.String("button", string(b)), zap.Error(err))
	default:
		s.log.Warn("click failed", zap.String("button", string(b)), zap.Error(err))
	}
}

// closePopup dismisses the dispense notice and resets the shelves.
// It reports whether a popup was open.
func (s *MachineState) closePopup() bool {
	if s.config.Popup == nil || !s.config.Popup.PopupOpen() {
		return false
	}
	s.config.Popup.ClosePopup()
	s.config.Machine.ClearSelection()
	s.config.Machine.RequestReset()
	s.log.Info("popup closed, resetting")
	return true
}
