package viewport

import (
	"circlecrop/pkg/geometry"
)

// Frame is the engine's output tuple, re-emitted on every recompute and
// consumed by the renderer to position the image surface and draw the mask.
type Frame struct {
	Layout
	Offset geometry.Point
}

// Engine owns the pan offset and recomputes the layout whenever any of its
// inputs change. All three trigger sources (resize, zoom, drag) route
// through the same clamp path; nothing writes the offset directly.
//
// The engine performs no locking; callers serialize access to it. Every
// mutation depends only on the current input snapshot, so serialized
// resize, zoom, and drag events may interleave in any order without
// corrupting the offset invariant.
type Engine struct {
	container Container
	image     ImageSize
	zoom      float64
	offset    geometry.Point
	drag      DragSession

	onFrame func(Frame)
}

// NewEngine creates an engine with no image and zoom 1.
func NewEngine() *Engine {
	return &Engine{zoom: 1}
}

// OnFrame registers the listener invoked after every recompute.
func (e *Engine) OnFrame(fn func(Frame)) {
	e.onFrame = fn
}

// SetContainer updates the container metrics and reclamps the existing
// offset against the new bounds.
func (e *Engine) SetContainer(c Container) {
	e.container = c
	e.recompute()
}

// SetImage replaces the image metrics wholesale and resets the pan offset
// to the origin.
func (e *Engine) SetImage(img ImageSize) {
	e.image = img
	e.offset = geometry.Point{}
	e.recompute()
}

// SetZoom updates the zoom factor. The value is accepted as-is; range
// enforcement belongs to the control panel.
func (e *Engine) SetZoom(zoom float64) {
	e.zoom = zoom
	e.recompute()
}

// PointerDown begins a drag gesture at the given page coordinates.
func (e *Engine) PointerDown(pageX, pageY float64) {
	e.drag.Down(e.toLocal(pageX, pageY))
}

// PointerMove advances an active drag gesture. The move's delta relative
// to the previous event is applied to the stored offset through the clamp;
// moves arriving while idle are ignored.
func (e *Engine) PointerMove(pageX, pageY float64) {
	delta, ok := e.drag.Move(e.toLocal(pageX, pageY))
	if !ok {
		return
	}
	layout := Compute(e.container, e.image, e.zoom)
	e.offset = Clamp(layout, e.offset.Add(delta))
	e.emit(Frame{Layout: layout, Offset: e.offset})
}

// PointerUp ends the drag gesture regardless of state.
func (e *Engine) PointerUp() {
	e.drag.Up()
}

// Dragging reports whether a drag gesture is in progress. The host queries
// this for cursor presentation; the engine itself owns no cursor state.
func (e *Engine) Dragging() bool {
	return e.drag.Active()
}

// Frame returns the current output tuple.
func (e *Engine) Frame() Frame {
	return Frame{
		Layout: Compute(e.container, e.image, e.zoom),
		Offset: e.offset,
	}
}

// Offset returns the current pan offset.
func (e *Engine) Offset() geometry.Point {
	return e.offset
}

// Zoom returns the current zoom factor.
func (e *Engine) Zoom() float64 {
	return e.zoom
}

// Container returns the current container metrics.
func (e *Engine) Container() Container {
	return e.container
}

// Image returns the current image metrics.
func (e *Engine) Image() ImageSize {
	return e.image
}

func (e *Engine) toLocal(pageX, pageY float64) geometry.Point {
	return geometry.NewPoint(pageX-e.container.OriginX, pageY-e.container.OriginY)
}

// recompute re-runs the layout against the existing offset so an offset
// invalidated by a resize or zoom change snaps back into the legal region
// without further user input.
func (e *Engine) recompute() {
	layout := Compute(e.container, e.image, e.zoom)
	e.offset = Clamp(layout, e.offset)
	e.emit(Frame{Layout: layout, Offset: e.offset})
}

func (e *Engine) emit(f Frame) {
	if e.onFrame != nil {
		e.onFrame(f)
	}
}
