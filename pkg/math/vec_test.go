package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := V3(1, 0, 0).Cross(V3(0, 1, 0))
	want := V3(0, 0, 1)
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestLerp(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(3, -2, 3)

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, V3(2, 0, 3)},
	}

	for _, tt := range tests {
		if got := Lerp(a, b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", a, b, tt.t, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float32
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{1.3, 1.25, 1.11, 1.25}, // reversed bounds
		{1.0, 1.25, 1.11, 1.11},
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestVec2ClampUnit(t *testing.T) {
	got := Vec2{X: 3, Y: -7}.ClampUnit()
	want := Vec2{X: 1, Y: -1}
	if got != want {
		t.Errorf("ClampUnit() = %v, want %v", got, want)
	}
}
