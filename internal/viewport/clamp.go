package viewport

import (
	"math"

	"circlecrop/pkg/geometry"
)

// Bounds returns the pan bounding box extents for a layout: the offset on
// each axis may range from -extent to 0. Absolute values keep the box
// well-defined even when zoom drops below 1 and the scaled image is
// smaller than the mask.
func Bounds(l Layout) (right, bottom float64) {
	right = math.Abs(l.ScaledWidth - l.MaskDiameter)
	bottom = math.Abs(l.ScaledHeight - l.MaskDiameter)
	return right, bottom
}

// PanBox returns the pan bounding box as a rectangle: admissible offsets
// span [-right, 0] horizontally and [-bottom, 0] vertically.
func PanBox(l Layout) geometry.Rect {
	right, bottom := Bounds(l)
	return geometry.NewRect(-right, -bottom, right, bottom)
}

// Clamp constrains a raw pan offset to the layout's pan box. The high
// bound is zero on both axes (the image's top-left edge cannot move past
// the mask origin); the low bound is the negative excess of the scaled
// image beyond the mask. For any admissible zoom >= 1 this guarantees the
// mask circle is fully covered by image pixels.
//
// Clamp is idempotent: Clamp(l, Clamp(l, p)) == Clamp(l, p).
func Clamp(l Layout, raw geometry.Point) geometry.Point {
	return PanBox(l).Clamp(raw)
}
