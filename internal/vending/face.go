package vending

import (
	"github.com/Faultbox/emoji-vend/pkg/math"
)

// Eye glimmer tracking constants. The glimmers slide over the eye surface in
// the Y/Z plane; X is fixed by the eye node.
const (
	eyeX           = 1.448
	eyeBaseY       = 6.472 - 0.3
	leftEyeBaseZ   = 1.181 - 0.05
	rightEyeBaseZ  = -0.452 - 0.05
	eyeMoveFactorY = 0.5
	eyeMoveFactorZ = -0.5
)

// Bounds is an axis-aligned rectangle in the Y/Z plane.
type Bounds struct {
	MinY, MaxY float32
	MinZ, MaxZ float32
}

// Contains reports whether p lies within the rectangle.
func (b Bounds) Contains(p math.Vec3) bool {
	return p.Y >= b.MinY && p.Y <= b.MaxY && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// Eye glimmer bounds.
var (
	LeftEyeBounds  = Bounds{MinY: 6.36, MaxY: 6.6, MinZ: 1.11, MaxZ: 1.25}
	RightEyeBounds = Bounds{MinY: 6.36, MaxY: 6.6, MinZ: -0.52, MaxZ: -0.38}
)

// EyeOffsets holds both glimmer positions.
type EyeOffsets struct {
	Left  math.Vec3
	Right math.Vec3
}

// TrackPointer maps a normalized pointer sample to glimmer positions.
// It depends only on the sample.
func TrackPointer(p math.Vec2) EyeOffsets {
	y := eyeBaseY + p.Y*eyeMoveFactorY
	dz := p.X * eyeMoveFactorZ
	return EyeOffsets{
		Left:  glimmer(y, leftEyeBaseZ+dz, LeftEyeBounds),
		Right: glimmer(y, rightEyeBaseZ+dz, RightEyeBounds),
	}
}

func glimmer(y, z float32, b Bounds) math.Vec3 {
	return math.V3(eyeX, math.Clamp(y, b.MinY, b.MaxY), math.Clamp(z, b.MinZ, b.MaxZ))
}

// Pulse is a short press reaction.
type Pulse int

// Press pulses, in priority order for the eyebrows.
const (
	PulseNone Pulse = iota
	PulseSelect
	PulseConfirm
	PulseCancel
)

func (p Pulse) String() string {
	switch p {
	case PulseSelect:
		return "select"
	case PulseConfirm:
		return "confirm"
	case PulseCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Pulses holds the three independent pulse flags. Several may overlap when
// buttons are pressed in quick succession.
type Pulses struct {
	Select, Confirm, Cancel bool
}

// Active returns the highest-priority pulse that is set.
func (p Pulses) Active() Pulse {
	switch {
	case p.Select:
		return PulseSelect
	case p.Confirm:
		return PulseConfirm
	case p.Cancel:
		return PulseCancel
	default:
		return PulseNone
	}
}

func (p *Pulses) set(kind Pulse, on bool) {
	switch kind {
	case PulseSelect:
		p.Select = on
	case PulseConfirm:
		p.Confirm = on
	case PulseCancel:
		p.Cancel = on
	}
}

// Rest and pulse heights for the eyebrows and arms.
const (
	EyebrowRestY    = 6.716
	EyebrowSelectY  = 6.8
	EyebrowConfirmY = 6.95
	EyebrowCancelY  = 6.65

	ArmsRestY    = 3.418
	ArmsConfirmY = 3.8
	ArmsCancelY  = 3.3

	// easeRate is the fraction of the remaining distance covered per frame.
	easeRate = 0.1
)

// Rest positions of the eased face nodes.
var (
	LeftEyebrowRest  = math.V3(1.434, EyebrowRestY, 1.311)
	RightEyebrowRest = math.V3(1.434, 6.712, -0.58)
	ArmsRest         = math.V3(0.068, ArmsRestY, 0)
)

// EyebrowTarget returns the eyebrow height for the current pulses.
func EyebrowTarget(p Pulses) float32 {
	switch {
	case p.Select:
		return EyebrowSelectY
	case p.Confirm:
		return EyebrowConfirmY
	case p.Cancel:
		return EyebrowCancelY
	default:
		return EyebrowRestY
	}
}

// ArmsTarget returns the arm height for the current pulses. Select does not move the arms.
func ArmsTarget(p Pulses) float32 {
	switch {
	case p.Confirm:
		return ArmsConfirmY
	case p.Cancel:
		return ArmsCancelY
	default:
		return ArmsRestY
	}
}

// Ease moves current a fixed fraction of the way toward target.
func Ease(current, target float32) float32 {
	return current + (target-current)*easeRate
}

// Face is the rendered state of the tracked and eased face nodes.
type Face struct {
	Eyes         EyeOffsets
	LeftEyebrow  math.Vec3
	RightEyebrow math.Vec3
	Arms         math.Vec3
}

// NewFace returns the face at rest with the pointer centered.
func NewFace() Face {
	return Face{
		Eyes:         TrackPointer(math.Vec2{}),
		LeftEyebrow:  LeftEyebrowRest,
		RightEyebrow: RightEyebrowRest,
		Arms:         ArmsRest,
	}
}

// step advances the face by one frame.
func (f *Face) step(pointer math.Vec2, p Pulses) {
	f.Eyes = TrackPointer(pointer)

	brow := EyebrowTarget(p)
	f.LeftEyebrow.Y = Ease(f.LeftEyebrow.Y, brow)
	f.RightEyebrow.Y = Ease(f.RightEyebrow.Y, brow)
	f.Arms.Y = Ease(f.Arms.Y, ArmsTarget(p))
}
