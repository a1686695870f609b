package physics

import "math/rand/v2"

// Rect is an axis-aligned rectangle. Min is inclusive, Max exclusive.
type Rect struct {
	Min Vector2D
	Max Vector2D
}

// NewRect creates a rectangle anchored at the origin.
func NewRect(width, height float64) Rect {
	return Rect{Max: Vector2D{X: width, Y: height}}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Vector2D) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// RandomPoint returns a uniformly distributed point inside the rectangle.
func (r Rect) RandomPoint(rng *rand.Rand) Vector2D {
	return Vector2D{
		X: r.Min.X + rng.Float64()*r.Width(),
		Y: r.Min.Y + rng.Float64()*r.Height(),
	}
}
