package math

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// ClampUnit clamps both components to [-1, 1], the normalized device range.
func (v Vec2) ClampUnit() Vec2 {
	return Vec2{Clamp(v.X, -1, 1), Clamp(v.Y, -1, 1)}
}
