package adjust

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreNeutral(t *testing.T) {
	assert.True(t, Defaults().IsNeutral())

	p := Defaults()
	p.Brightness = 1.5
	assert.False(t, p.IsNeutral())
}

func TestNeutralMatrixIsIdentity(t *testing.T) {
	m := Defaults().Matrix()
	want := [20]float64{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
	for i := range want {
		assert.InDelta(t, want[i], m[i], 1e-12, "index %d", i)
	}
}

func TestNeutralTransformLeavesPixels(t *testing.T) {
	tr := Defaults().Compile()
	r, g, b, a := tr.Pixel(12, 200, 99, 255)
	assert.Equal(t, [4]uint8{12, 200, 99, 255}, [4]uint8{r, g, b, a})
}

func TestBrightnessScalesChannels(t *testing.T) {
	p := Defaults()
	p.Brightness = 2
	tr := p.Compile()

	r, g, b, a := tr.Pixel(10, 50, 100, 255)
	assert.Equal(t, uint8(20), r)
	assert.Equal(t, uint8(100), g)
	assert.Equal(t, uint8(200), b)
	assert.Equal(t, uint8(255), a)

	// Overflow clamps at 255.
	r, _, _, _ = tr.Pixel(200, 0, 0, 255)
	assert.Equal(t, uint8(255), r)
}

func TestChannelScales(t *testing.T) {
	p := Defaults()
	p.Red = 0
	p.Blue = 2
	tr := p.Compile()

	r, g, b, _ := tr.Pixel(100, 100, 100, 255)
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(100), g)
	assert.Equal(t, uint8(200), b)
}

func TestAlphaScale(t *testing.T) {
	p := Defaults()
	p.Alpha = 0.5
	tr := p.Compile()

	_, _, _, a := tr.Pixel(10, 10, 10, 200)
	assert.Equal(t, uint8(100), a)
}

func TestZeroSaturationIsLuminance(t *testing.T) {
	p := Defaults()
	p.Saturation = 0
	tr := p.Compile()

	r, g, b, _ := tr.Pixel(255, 0, 0, 255)
	// Pure red collapses to its Rec.601 luminance on all channels.
	wantLum := 0.299*255 + 0.5
	want := uint8(wantLum)
	assert.Equal(t, want, r)
	assert.Equal(t, want, g)
	assert.Equal(t, want, b)

	// Gray pixels are unaffected by saturation.
	r, g, b, _ = tr.Pixel(128, 128, 128, 255)
	assert.Equal(t, uint8(128), r)
	assert.Equal(t, uint8(128), g)
	assert.Equal(t, uint8(128), b)
}

func TestContrastPivotsAroundMidpoint(t *testing.T) {
	p := Defaults()
	p.Contrast = 2
	tr := p.Compile()

	// The midpoint is a fixed point; values spread away from it.
	r, _, _, _ := tr.Pixel(128, 128, 128, 255)
	assert.InDelta(t, 128, float64(r), 1.5)

	lo, _, _, _ := tr.Pixel(64, 64, 64, 255)
	hi, _, _, _ := tr.Pixel(192, 192, 192, 255)
	assert.Less(t, lo, uint8(64))
	assert.Greater(t, hi, uint8(192))
}

func TestGammaBrightensMidtones(t *testing.T) {
	p := Defaults()
	p.Gamma = 2
	tr := p.Compile()

	r, _, _, _ := tr.Pixel(64, 64, 64, 255)
	assert.Greater(t, r, uint8(64))

	// Endpoints are fixed points of the gamma curve.
	r, _, _, _ = tr.Pixel(0, 0, 0, 255)
	assert.Equal(t, uint8(0), r)
	r, _, _, _ = tr.Pixel(255, 255, 255, 255)
	assert.Equal(t, uint8(255), r)
}

func TestGammaLUTMonotonic(t *testing.T) {
	for _, gamma := range []float64{0.4, 1, 2.2, 5} {
		p := Defaults()
		p.Gamma = gamma
		tr := p.Compile()
		for i := 1; i < 256; i++ {
			require.GreaterOrEqual(t, tr.lut[i], tr.lut[i-1], "gamma %v index %d", gamma, i)
		}
	}
}

func TestApplyInPlace(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}

	p := Defaults()
	p.Brightness = 2
	p.Compile().Apply(img)

	got := img.NRGBAAt(1, 1)
	assert.Equal(t, color.NRGBA{R: 80, G: 160, B: 240, A: 255}, got)
}
