// Package cropcanvas provides the crop viewport widget: a raster drawn by
// the compositor, with pointer drags routed into the viewport engine and
// size changes reported as container metrics.
package cropcanvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"circlecrop/internal/adjust"
	"circlecrop/internal/app"
	"circlecrop/internal/loader"
	"circlecrop/internal/render"
	"circlecrop/internal/viewport"
)

// CropCanvas displays the pannable, zoomable image behind the circular
// crop mask.
type CropCanvas struct {
	widget.BaseWidget

	state  *app.State
	comp   *render.Compositor
	raster *fynecanvas.Raster

	lastSize fyne.Size
}

// New creates a crop canvas bound to the application state.
func New(state *app.State) *CropCanvas {
	cc := &CropCanvas{
		state: state,
		comp:  render.NewCompositor(),
	}
	cc.raster = fynecanvas.NewRaster(cc.draw)
	cc.ExtendBaseWidget(cc)

	state.On(app.EventImageLoaded, func(data interface{}) {
		cc.comp.SetPhoto(data.(*loader.Photo))
		cc.Refresh()
	})
	state.On(app.EventFrameChanged, func(data interface{}) {
		cc.comp.SetFrame(data.(viewport.Frame))
		cc.comp.SetContainer(state.Container())
		cc.Refresh()
	})
	state.On(app.EventAdjustChanged, func(data interface{}) {
		cc.comp.SetParams(data.(adjust.Params))
		cc.Refresh()
	})

	return cc
}

// Dragged routes pointer drags into the drag session. Fyne reports drags
// only once motion starts, so the first event of a gesture synthesizes
// the pointer-down at the drag's start position.
func (cc *CropCanvas) Dragged(ev *fyne.DragEvent) {
	if !cc.state.Dragging() {
		cc.state.PointerDown(
			float64(ev.Position.X-ev.Dragged.DX),
			float64(ev.Position.Y-ev.Dragged.DY),
		)
	}
	cc.state.PointerMove(float64(ev.Position.X), float64(ev.Position.Y))
}

// DragEnd ends the gesture unconditionally.
func (cc *CropCanvas) DragEnd() {
	cc.state.PointerUp()
}

// Cursor implements desktop.Cursorable; the engine exposes the dragging
// flag and the widget owns the presentation.
func (cc *CropCanvas) Cursor() desktop.Cursor {
	if cc.state.Dragging() {
		return desktop.CrosshairCursor
	}
	if cc.state.Photo() != nil {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// Refresh redraws the raster.
func (cc *CropCanvas) Refresh() {
	cc.raster.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (cc *CropCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &cropCanvasRenderer{canvas: cc}
}

// draw is the raster drawing function.
func (cc *CropCanvas) draw(w, h int) image.Image {
	return cc.comp.Draw(w, h)
}

// checkResize pushes new container metrics into the engine when the
// widget size changes. Fyne positions drag events in widget-local
// coordinates, so the container origin is always zero here.
func (cc *CropCanvas) checkResize(size fyne.Size) {
	if size.Width <= 0 || size.Height <= 0 || size == cc.lastSize {
		return
	}
	cc.lastSize = size
	cc.state.Resized(viewport.Container{
		Width:  float64(size.Width),
		Height: float64(size.Height),
	})
}

type cropCanvasRenderer struct {
	canvas *CropCanvas
}

func (r *cropCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	r.canvas.checkResize(size)
}

func (r *cropCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(240, 240)
}

func (r *cropCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *cropCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *cropCanvasRenderer) Destroy() {}
