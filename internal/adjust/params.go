// Package adjust implements the eight-parameter color adjustment applied
// to the cropped view. Brightness, saturation, contrast, the per-channel
// red/green/blue scales, and alpha compose into a single 4x5 color
// transformation matrix; gamma is applied afterwards through a lookup
// table because it is not expressible as a linear transform.
package adjust

import (
	"gonum.org/v1/gonum/mat"
)

// Rec.601 luminance weights used by the saturation matrix.
const (
	lumR = 0.299
	lumG = 0.587
	lumB = 0.114
)

// Params holds the adjustment parameters fed in by the control panel.
// Every parameter defaults to 1 (neutral) with a recognized range of
// [0,5]; range enforcement is the control panel's responsibility and the
// math here stays defined for any value.
type Params struct {
	Gamma      float64
	Brightness float64
	Saturation float64
	Contrast   float64
	Red        float64
	Green      float64
	Blue       float64
	Alpha      float64
}

// Defaults returns the neutral parameter set.
func Defaults() Params {
	return Params{
		Gamma:      1,
		Brightness: 1,
		Saturation: 1,
		Contrast:   1,
		Red:        1,
		Green:      1,
		Blue:       1,
		Alpha:      1,
	}
}

// IsNeutral reports whether applying the parameters would leave every
// pixel unchanged.
func (p Params) IsNeutral() bool {
	return p == Defaults()
}

// Matrix returns the composed 4x5 color transformation matrix in
// row-major [R,G,B,A,translate] order per output channel, operating on
// color components in the [0,1] range. Gamma is excluded; see Transform.
func (p Params) Matrix() [20]float64 {
	// Composition happens in homogeneous 5x5 form so the contrast
	// translation column carries through the multiplications.
	sat := p.saturationMatrix()
	con := p.contrastMatrix()
	scale := p.channelMatrix()

	var tone mat.Dense
	tone.Mul(con, sat)
	var m mat.Dense
	m.Mul(scale, &tone)

	var out [20]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			out[row*5+col] = m.At(row, col)
		}
	}
	return out
}

// saturationMatrix interpolates between the luminance projection (s=0,
// grayscale) and the identity (s=1), extrapolating beyond 1 for
// oversaturation.
func (p Params) saturationMatrix() *mat.Dense {
	s := p.Saturation
	inv := 1 - s
	return mat.NewDense(5, 5, []float64{
		lumR*inv + s, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + s, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + s, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	})
}

// contrastMatrix scales color components around the 0.5 midpoint.
func (p Params) contrastMatrix() *mat.Dense {
	c := p.Contrast
	t := 0.5 * (1 - c)
	return mat.NewDense(5, 5, []float64{
		c, 0, 0, 0, t,
		0, c, 0, 0, t,
		0, 0, c, 0, t,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	})
}

// channelMatrix folds brightness into the per-channel scales and applies
// the alpha scale.
func (p Params) channelMatrix() *mat.Dense {
	b := p.Brightness
	return mat.NewDense(5, 5, []float64{
		b * p.Red, 0, 0, 0, 0,
		0, b * p.Green, 0, 0, 0,
		0, 0, b * p.Blue, 0, 0,
		0, 0, 0, p.Alpha, 0,
		0, 0, 0, 0, 1,
	})
}
