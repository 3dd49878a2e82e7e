// Package render composites the cropped, color-adjusted view: the scaled
// image positioned by the pan offset, masked to the fixed circle, with a
// fixed-width outline. It consumes the viewport engine's output frame and
// never feeds anything back into it.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"circlecrop/internal/adjust"
	"circlecrop/internal/loader"
	"circlecrop/internal/viewport"
	"circlecrop/pkg/geometry"
)

const (
	// Outline stroke width in display pixels.
	strokeWidth = 3.0
	// Blend factor for image pixels outside the crop circle.
	dimFactor = 0.35
)

var (
	backdrop     = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	outlineColor = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
)

// Compositor draws the crop view into a raster buffer. It caches the
// scaled image between frames and invalidates the cache when the photo or
// the scaled dimensions change. All methods are UI-thread only.
type Compositor struct {
	photo     *loader.Photo
	frame     viewport.Frame
	container viewport.Container
	tx        *adjust.Transform

	// Scaled-image cache.
	scaled     *image.NRGBA
	scaledFor  *loader.Photo
	scaledSize image.Point
}

// NewCompositor creates a compositor with neutral adjustments.
func NewCompositor() *Compositor {
	return &Compositor{tx: adjust.Defaults().Compile()}
}

// SetPhoto replaces the source image and drops the scale cache.
func (c *Compositor) SetPhoto(photo *loader.Photo) {
	c.photo = photo
	c.scaled = nil
	c.scaledFor = nil
}

// SetFrame stores the viewport output tuple to draw.
func (c *Compositor) SetFrame(frame viewport.Frame) {
	c.frame = frame
}

// SetContainer stores the container metrics the frame was computed for,
// used to map layout units onto raster pixels.
func (c *Compositor) SetContainer(container viewport.Container) {
	c.container = container
}

// SetParams recompiles the color transform.
func (c *Compositor) SetParams(p adjust.Params) {
	c.tx = p.Compile()
}

// Draw renders the view at the given raster size. Degenerate frames draw
// only the backdrop.
func (c *Compositor) Draw(w, h int) image.Image {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)

	if c.photo == nil || c.photo.Image == nil || c.frame.IsZero() || w <= 0 || h <= 0 {
		return out
	}

	// The raster may be larger than the container on high-DPI outputs;
	// scale all layout geometry by the ratio.
	pix := 1.0
	if c.container.Width > 0 {
		pix = float64(w) / c.container.Width
	}

	maskD := c.frame.MaskDiameter * pix
	mask := geometry.NewRect((float64(w)-maskD)/2, (float64(h)-maskD)/2, maskD, maskD)
	center := mask.Center()
	radius := maskD / 2

	scaled := c.scaledImage(int(c.frame.ScaledWidth*pix+0.5), int(c.frame.ScaledHeight*pix+0.5))
	if scaled == nil {
		return out
	}
	sb := scaled.Bounds()

	// Image surface top-left in raster coordinates.
	off := c.frame.Offset.Scale(pix)
	originX := int(mask.X + off.X + 0.5)
	originY := int(mask.Y + off.Y + 0.5)

	x0 := max(0, originX)
	y0 := max(0, originY)
	x1 := min(w, originX+sb.Dx())
	y1 := min(h, originY+sb.Dy())

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px := scaled.NRGBAAt(x-originX, y-originY)
			r, g, b, a := c.tx.Pixel(px.R, px.G, px.B, px.A)

			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			if dx*dx+dy*dy > radius*radius {
				// Outside the crop circle the image shows dimmed, as a
				// panning aid; it is not part of the cropped output.
				r = dim(r, backdrop.R)
				g = dim(g, backdrop.G)
				b = dim(b, backdrop.B)
				a = 255
			}
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}

	c.strokeOutline(out, center, radius)
	return out
}

// scaledImage returns the photo scaled to the requested pixel size,
// reusing the cached result when nothing changed.
func (c *Compositor) scaledImage(sw, sh int) *image.NRGBA {
	if sw <= 0 || sh <= 0 {
		return nil
	}
	want := image.Pt(sw, sh)
	if c.scaled != nil && c.scaledFor == c.photo && c.scaledSize == want {
		return c.scaled
	}

	dst := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), c.photo.Image, c.photo.Image.Bounds(), xdraw.Src, nil)
	c.scaled = dst
	c.scaledFor = c.photo
	c.scaledSize = want
	return dst
}

// strokeOutline draws the fixed-width circle outline.
func (c *Compositor) strokeOutline(out *image.NRGBA, center geometry.Point, radius float64) {
	if radius <= 0 {
		return
	}
	half := strokeWidth / 2

	x0 := max(0, int(center.X-radius-half-1))
	y0 := max(0, int(center.Y-radius-half-1))
	x1 := min(out.Bounds().Dx(), int(center.X+radius+half+2))
	y1 := min(out.Bounds().Dy(), int(center.Y+radius+half+2))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := geometry.NewPoint(float64(x)+0.5, float64(y)+0.5).Distance(center)
			if d >= radius-half && d <= radius+half {
				out.SetNRGBA(x, y, outlineColor)
			}
		}
	}
}

func dim(v, back uint8) uint8 {
	return uint8(float64(v)*dimFactor + float64(back)*(1-dimFactor))
}
