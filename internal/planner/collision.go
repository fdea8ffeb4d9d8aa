package planner

// Box is an axis-aligned cuboid given by its minimum corner and extents.
type Box struct {
	X      float64
	Y      float64
	Z      float64
	Length float64
	Width  float64
	Height float64
}

// Overlaps reports whether a and b intersect with positive volume. Boxes that
// merely share a boundary face do not overlap, so flush-adjacent packing
// remains legal.
func Overlaps(a, b Box) bool {
	return a.X < b.X+b.Length && b.X < a.X+a.Length &&
		a.Y < b.Y+b.Width && b.Y < a.Y+a.Width &&
		a.Z < b.Z+b.Height && b.Z < a.Z+a.Height
}
