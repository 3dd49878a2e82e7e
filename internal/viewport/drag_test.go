package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"circlecrop/pkg/geometry"
)

func TestDragIncrementalDeltas(t *testing.T) {
	var d DragSession

	d.Down(geometry.Point{X: 10, Y: 10})
	assert.True(t, d.Active())

	delta, ok := d.Move(geometry.Point{X: 15, Y: 12})
	assert.True(t, ok)
	assert.Equal(t, geometry.Point{X: 5, Y: 2}, delta)

	// Second delta is measured from the previous move, not the origin.
	delta, ok = d.Move(geometry.Point{X: 20, Y: 20})
	assert.True(t, ok)
	assert.Equal(t, geometry.Point{X: 5, Y: 8}, delta)
}

func TestDragRelativeAccumulationMatchesNetDisplacement(t *testing.T) {
	// With every move processed, accumulated deltas equal the net
	// start-to-end displacement even for a non-monotonic gesture.
	var d DragSession
	d.Down(geometry.Point{X: 10, Y: 10})

	moves := []geometry.Point{
		{X: 30, Y: 15},
		{X: 5, Y: 40},  // reverses direction on X
		{X: 25, Y: 25}, // reverses again
	}
	var sum geometry.Point
	for _, pos := range moves {
		delta, ok := d.Move(pos)
		assert.True(t, ok)
		sum = sum.Add(delta)
	}
	assert.Equal(t, geometry.Point{X: 15, Y: 15}, sum)
}

func TestDragRelativeDiffersFromAbsoluteAnchoringUnderClamp(t *testing.T) {
	// When a clamp flattens part of the path, relative accumulation and
	// absolute anchoring to the drag origin produce different offsets.
	// Layout: right extent 200, bottom 0.
	layout := Compute(Container{Width: 400, Height: 400}, ImageSize{NaturalWidth: 800, NaturalHeight: 400}, 1)

	var d DragSession
	d.Down(geometry.Point{X: 0, Y: 0})

	offset := geometry.Point{}
	// Push far past the left bound, then move partially back.
	for _, pos := range []geometry.Point{{X: -300, Y: 0}, {X: -250, Y: 0}} {
		delta, ok := d.Move(pos)
		assert.True(t, ok)
		offset = Clamp(layout, offset.Add(delta))
	}

	// Relative: first move clamps -300 to -200, second applies +50.
	assert.Equal(t, geometry.Point{X: -150, Y: 0}, offset)

	// Absolute anchoring would put the offset at origin+(-250) clamped,
	// i.e. -200: the two semantics diverge once the clamp engages.
	absolute := Clamp(layout, geometry.Point{X: -250, Y: 0})
	assert.NotEqual(t, absolute, offset)
}

func TestDragMoveIgnoredWhenIdle(t *testing.T) {
	var d DragSession

	_, ok := d.Move(geometry.Point{X: 5, Y: 5})
	assert.False(t, ok)

	// Late-arriving move after Up is ignored as well.
	d.Down(geometry.Point{X: 0, Y: 0})
	d.Up()
	_, ok = d.Move(geometry.Point{X: 50, Y: 50})
	assert.False(t, ok)
	assert.False(t, d.Active())
}

func TestDragUpUnconditional(t *testing.T) {
	var d DragSession
	d.Up() // no-op while idle
	assert.False(t, d.Active())

	d.Down(geometry.Point{X: 1, Y: 1})
	d.Up()
	assert.False(t, d.Active())
}

func TestDragHoldsNoStateAcrossGestures(t *testing.T) {
	var d DragSession
	d.Down(geometry.Point{X: 100, Y: 100})
	_, _ = d.Move(geometry.Point{X: 110, Y: 100})
	d.Up()

	// A new gesture anchors to its own down position.
	d.Down(geometry.Point{X: 0, Y: 0})
	delta, ok := d.Move(geometry.Point{X: 3, Y: 4})
	assert.True(t, ok)
	assert.Equal(t, geometry.Point{X: 3, Y: 4}, delta)
}
