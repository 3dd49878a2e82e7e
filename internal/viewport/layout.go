// Package viewport implements the crop viewport geometry: the contain-fit
// layout of an image behind a fixed circular mask, the pan bounding box and
// clamp, and the drag gesture state machine that feeds it.
package viewport

import (
	"math"
)

// Zoom limits recognized by the control panel. The engine itself accepts
// any positive zoom factor; values below MinZoom simply allow the image to
// shrink past the mask, which the clamp math tolerates.
const (
	MinZoom = 1.0
	MaxZoom = 5.0
)

// Container is a snapshot of the hosting element's metrics. OriginX/OriginY
// are the container's page-coordinate offset, used to translate pointer
// events into container-local coordinates.
type Container struct {
	Width   float64
	Height  float64
	OriginX float64
	OriginY float64
}

// ImageSize holds the natural (unscaled) dimensions of the loaded image.
// It is replaced wholesale when a new image is loaded, never partially
// mutated.
type ImageSize struct {
	NaturalWidth  float64
	NaturalHeight float64
}

// Layout is the computed image layout for one input snapshot. MaskDiameter
// is fixed by the un-zoomed contain-fit and does not grow with zoom.
type Layout struct {
	ScaledWidth  float64
	ScaledHeight float64
	MaskDiameter float64
}

// Compute derives the scaled image layout from the container metrics, the
// image's natural size, and the zoom factor. It is pure and total: any
// degenerate input (zero or negative dimension, non-positive zoom) yields
// the all-zero layout rather than NaN or Inf.
//
// The fit is width-anchored on both axes: each fitted dimension is capped
// by the container width, not independently by the container height. The
// mask diameter is the smaller fitted dimension before zoom is applied.
func Compute(c Container, img ImageSize, zoom float64) Layout {
	cw := c.Width
	nw := img.NaturalWidth
	nh := img.NaturalHeight
	if cw <= 0 || nw <= 0 || nh <= 0 || zoom <= 0 {
		return Layout{}
	}

	ratio := nw / nh
	fittedW := math.Min(cw, cw*ratio)
	fittedH := math.Min(cw, cw/ratio)

	return Layout{
		ScaledWidth:  fittedW * zoom,
		ScaledHeight: fittedH * zoom,
		MaskDiameter: math.Min(fittedW, fittedH),
	}
}

// IsZero reports whether the layout is the degenerate all-zero layout.
func (l Layout) IsZero() bool {
	return l.ScaledWidth == 0 && l.ScaledHeight == 0 && l.MaskDiameter == 0
}
