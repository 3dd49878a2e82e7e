package adjust

import (
	"image"
	"math"
)

// Transform is a Params snapshot compiled for per-pixel application: the
// composed color matrix plus the gamma lookup table. Compile once per
// parameter change, not per pixel.
type Transform struct {
	m       [20]float64
	lut     [256]uint8
	neutral bool
}

// Compile builds the per-pixel transform for the parameter set.
func (p Params) Compile() *Transform {
	t := &Transform{
		m:       p.Matrix(),
		neutral: p.IsNeutral(),
	}

	g := p.Gamma
	if g <= 0 {
		// Degenerate gamma collapses to black rather than dividing by zero.
		for i := range t.lut {
			t.lut[i] = 0
		}
		t.lut[255] = 255
		return t
	}
	exp := 1 / g
	for i := range t.lut {
		v := math.Pow(float64(i)/255, exp) * 255
		t.lut[i] = clamp8(v)
	}
	return t
}

// Pixel transforms one NRGBA pixel.
func (t *Transform) Pixel(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
	if t.neutral {
		return r, g, b, a
	}
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255
	af := float64(a) / 255

	m := &t.m
	nr := m[0]*rf + m[1]*gf + m[2]*bf + m[3]*af + m[4]
	ng := m[5]*rf + m[6]*gf + m[7]*bf + m[8]*af + m[9]
	nb := m[10]*rf + m[11]*gf + m[12]*bf + m[13]*af + m[14]
	na := m[15]*rf + m[16]*gf + m[17]*bf + m[18]*af + m[19]

	return t.lut[clamp8(nr*255)],
		t.lut[clamp8(ng*255)],
		t.lut[clamp8(nb*255)],
		clamp8(na * 255)
}

// Apply transforms an NRGBA image in place.
func (t *Transform) Apply(img *image.NRGBA) {
	if t.neutral || img == nil {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		row := img.Pix[i : i+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = t.Pixel(row[x], row[x+1], row[x+2], row[x+3])
		}
	}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
