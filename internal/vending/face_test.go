package vending

import (
	"testing"

	"github.com/Faultbox/emoji-vend/pkg/math"
)

func TestTrackPointerExtremesStayInBounds(t *testing.T) {
	for _, x := range []float32{-1, 0, 1} {
		for _, y := range []float32{-1, 0, 1} {
			eyes := TrackPointer(math.Vec2{X: x, Y: y})
			if !LeftEyeBounds.Contains(eyes.Left) {
				t.Errorf("pointer (%v,%v): left glimmer %v outside %+v", x, y, eyes.Left, LeftEyeBounds)
			}
			if !RightEyeBounds.Contains(eyes.Right) {
				t.Errorf("pointer (%v,%v): right glimmer %v outside %+v", x, y, eyes.Right, RightEyeBounds)
			}
		}
	}
}

func TestTrackPointerCorners(t *testing.T) {
	tests := []struct {
		name        string
		p           math.Vec2
		left, right math.Vec3
	}{
		// y: 6.172 + 0.5 = 6.672 -> 6.6; z: 1.131 - 0.5 -> 1.11, -0.502 - 0.5 -> -0.52
		{"top right", math.Vec2{X: 1, Y: 1}, math.V3(eyeX, 6.6, 1.11), math.V3(eyeX, 6.6, -0.52)},
		// y: 5.672 -> 6.36; z: 1.631 -> 1.25, -0.002 -> -0.38
		{"bottom left", math.Vec2{X: -1, Y: -1}, math.V3(eyeX, 6.36, 1.25), math.V3(eyeX, 6.36, -0.38)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eyes := TrackPointer(tt.p)
			if eyes.Left != tt.left {
				t.Errorf("left = %v, want %v", eyes.Left, tt.left)
			}
			if eyes.Right != tt.right {
				t.Errorf("right = %v, want %v", eyes.Right, tt.right)
			}
		})
	}
}

func TestTrackPointerIsIdempotent(t *testing.T) {
	p := math.Vec2{X: 0.3, Y: 0.9}
	if TrackPointer(p) != TrackPointer(p) {
		t.Error("same sample produced different offsets")
	}
}

func TestPulseTargets(t *testing.T) {
	tests := []struct {
		name  string
		p     Pulses
		brow  float32
		arms  float32
		pulse Pulse
	}{
		{"rest", Pulses{}, EyebrowRestY, ArmsRestY, PulseNone},
		{"select", Pulses{Select: true}, EyebrowSelectY, ArmsRestY, PulseSelect},
		{"confirm", Pulses{Confirm: true}, EyebrowConfirmY, ArmsConfirmY, PulseConfirm},
		{"cancel", Pulses{Cancel: true}, EyebrowCancelY, ArmsCancelY, PulseCancel},
		{"select wins brows", Pulses{Select: true, Cancel: true}, EyebrowSelectY, ArmsCancelY, PulseSelect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EyebrowTarget(tt.p); got != tt.brow {
				t.Errorf("EyebrowTarget = %v, want %v", got, tt.brow)
			}
			if got := ArmsTarget(tt.p); got != tt.arms {
				t.Errorf("ArmsTarget = %v, want %v", got, tt.arms)
			}
			if got := tt.p.Active(); got != tt.pulse {
				t.Errorf("Active = %v, want %v", got, tt.pulse)
			}
		})
	}
}

func TestEaseConverges(t *testing.T) {
	y := float32(EyebrowRestY)
	first := Ease(y, EyebrowConfirmY)
	want := y + (EyebrowConfirmY-y)*0.1
	if first != want {
		t.Errorf("first step = %v, want %v", first, want)
	}

	for i := 0; i < 200; i++ {
		y = Ease(y, EyebrowConfirmY)
	}
	if d := EyebrowConfirmY - y; d > 1e-4 || d < -1e-4 {
		t.Errorf("after 200 frames y = %v, want ~%v", y, EyebrowConfirmY)
	}
}
