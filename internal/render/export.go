package render

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"circlecrop/internal/adjust"
	"circlecrop/internal/loader"
	"circlecrop/internal/viewport"
)

// Export produces the final circular crop at source resolution: the
// region of the photo visible inside the mask circle, color-adjusted,
// with the corners outside the circle fully transparent.
func Export(photo *loader.Photo, frame viewport.Frame, params adjust.Params) (*image.NRGBA, error) {
	if photo == nil || photo.Image == nil {
		return nil, fmt.Errorf("no image loaded")
	}
	if frame.IsZero() {
		return nil, fmt.Errorf("viewport layout is degenerate")
	}

	// Display units → source pixels.
	natW := float64(photo.Image.Bounds().Dx())
	k := frame.ScaledWidth / natW
	if k <= 0 {
		return nil, fmt.Errorf("viewport layout is degenerate")
	}

	srcX := -frame.Offset.X / k
	srcY := -frame.Offset.Y / k
	srcD := frame.MaskDiameter / k

	side := int(srcD + 0.5)
	if side < 1 {
		side = 1
	}

	// Resample the fractional source square onto the output with a
	// high-quality kernel; the interactive path uses a cheaper one.
	out := image.NewNRGBA(image.Rect(0, 0, side, side))
	srcRect := image.Rect(int(srcX), int(srcY), int(srcX+srcD+0.5), int(srcY+srcD+0.5))
	srcRect = srcRect.Intersect(photo.Image.Bounds())
	if srcRect.Empty() {
		return nil, fmt.Errorf("crop region is outside the image")
	}
	xdraw.CatmullRom.Scale(out, out.Bounds(), photo.Image, srcRect, xdraw.Src, nil)

	params.Compile().Apply(out)
	maskCircle(out)
	return out, nil
}

// WritePNG encodes an exported crop as PNG.
func WritePNG(w io.Writer, img *image.NRGBA) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// maskCircle zeroes the alpha of every pixel outside the inscribed circle.
func maskCircle(img *image.NRGBA) {
	b := img.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2
	r := min(cx, cy)
	r2 := r * r

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
				img.Pix[i+3] = 0
			}
		}
	}
}
