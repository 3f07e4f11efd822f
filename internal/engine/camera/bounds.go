package camera

import (
	gmath "github.com/ToRaNek/TowerDefense/pkg/math"
)

// Bounds is a rectangular clamp region for the camera position.
// Min is expected to be component-wise <= Max; this is not enforced.
type Bounds struct {
	Min gmath.Vec2
	Max gmath.Vec2
}

// NewBounds creates bounds from rectangle coordinates.
func NewBounds(minX, minY, maxX, maxY float64) Bounds {
	return Bounds{
		Min: gmath.Vec2{X: minX, Y: minY},
		Max: gmath.Vec2{X: maxX, Y: maxY},
	}
}

// Clamp constrains a position into the bounds, each axis independently.
func (b Bounds) Clamp(p gmath.Vec2) gmath.Vec2 {
	return gmath.Vec2{
		X: gmath.Clamp(p.X, b.Min.X, b.Max.X),
		Y: gmath.Clamp(p.Y, b.Min.Y, b.Max.Y),
	}
}
