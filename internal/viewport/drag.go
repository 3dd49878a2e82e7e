package viewport

import (
	"circlecrop/pkg/geometry"
)

// DragState identifies the drag gesture state.
type DragState int

const (
	DragIdle DragState = iota
	Dragging
)

// DragSession translates raw pointer events into pan offset deltas. It is
// transient per gesture and holds no data across gestures.
//
// Deltas are measured from the previous move event, not from the gesture's
// origin: each Move updates the reference point, so total displacement
// accumulates incrementally rather than being re-anchored to the start
// position.
type DragSession struct {
	state DragState
	last  geometry.Point
}

// Down records the starting pointer position and begins the gesture.
func (d *DragSession) Down(pos geometry.Point) {
	d.last = pos
	d.state = Dragging
}

// Move returns the delta from the previous pointer position and advances
// the reference point. Moves arriving while idle (including late events
// after Up) are ignored and report ok=false.
func (d *DragSession) Move(pos geometry.Point) (delta geometry.Point, ok bool) {
	if d.state != Dragging {
		return geometry.Point{}, false
	}
	delta = pos.Sub(d.last)
	d.last = pos
	return delta, true
}

// Up ends the gesture unconditionally.
func (d *DragSession) Up() {
	d.state = DragIdle
}

// Active reports whether a gesture is in progress.
func (d *DragSession) Active() bool {
	return d.state == Dragging
}
