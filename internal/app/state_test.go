package app

import (
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circlecrop/internal/adjust"
	"circlecrop/internal/loader"
	"circlecrop/internal/viewport"
	"circlecrop/pkg/geometry"
)

func photoOfSize(w, h int) *loader.Photo {
	return &loader.Photo{Image: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

func TestSetPhotoResetsPan(t *testing.T) {
	s := NewState()
	s.Resized(viewport.Container{Width: 400, Height: 400})
	s.SetPhoto(photoOfSize(800, 400))

	s.PointerDown(0, 0)
	s.PointerMove(-150, 0)
	s.PointerUp()
	require.Equal(t, geometry.Point{X: -150, Y: 0}, s.Frame().Offset)

	s.SetPhoto(photoOfSize(640, 480))
	assert.Equal(t, geometry.Point{}, s.Frame().Offset)
}

func TestImageLoadedEvent(t *testing.T) {
	s := NewState()
	var loaded *loader.Photo
	s.On(EventImageLoaded, func(data interface{}) {
		loaded = data.(*loader.Photo)
	})

	p := photoOfSize(100, 100)
	s.SetPhoto(p)
	assert.Same(t, p, loaded)
}

func TestFrameEventsOnEveryTrigger(t *testing.T) {
	s := NewState()
	var frames []viewport.Frame
	s.On(EventFrameChanged, func(data interface{}) {
		frames = append(frames, data.(viewport.Frame))
	})

	s.Resized(viewport.Container{Width: 400, Height: 400})
	s.SetPhoto(photoOfSize(800, 400))
	s.SetZoom(2)
	s.PointerDown(0, 0)
	s.PointerMove(-30, -10)
	s.PointerUp()

	require.Len(t, frames, 4) // resize, image, zoom, move
	last := frames[len(frames)-1]
	assert.Equal(t, geometry.Point{X: -30, Y: -10}, last.Offset)
}

func TestZoomChangeReclampsThroughEngine(t *testing.T) {
	s := NewState()
	s.Resized(viewport.Container{Width: 400, Height: 400})
	s.SetPhoto(photoOfSize(800, 400))
	s.SetZoom(2)

	s.PointerDown(0, 0)
	s.PointerMove(-600, -200)
	s.PointerUp()
	require.Equal(t, geometry.Point{X: -600, Y: -200}, s.Frame().Offset)

	s.SetZoom(1)
	assert.Equal(t, geometry.Point{X: -200, Y: 0}, s.Frame().Offset)
}

func TestAdjustParamsPassThrough(t *testing.T) {
	s := NewState()
	var got adjust.Params
	s.On(EventAdjustChanged, func(data interface{}) {
		got = data.(adjust.Params)
	})

	p := adjust.Defaults()
	p.Gamma = 2.5
	p.Saturation = 0.2
	s.SetParams(p)

	// Values pass through unmodified; the core does not re-clamp them.
	assert.Equal(t, p, got)
	assert.Equal(t, p, s.Params())
}

func TestBackgroundPhotoDeliveryDuringZoom(t *testing.T) {
	// Decode finishes on the loader goroutine and hands the photo straight
	// to SetPhoto while the zoom slider is moving; engine access must
	// serialize or the offset invariant can tear.
	s := NewState()
	s.Resized(viewport.Container{Width: 400, Height: 400})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.SetPhoto(photoOfSize(800, 400))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.SetZoom(1 + float64(i%5))
		}
	}()
	wg.Wait()

	f := s.Frame()
	right, bottom := viewport.Bounds(f.Layout)
	assert.GreaterOrEqual(t, f.Offset.X, -right)
	assert.LessOrEqual(t, f.Offset.X, 0.0)
	assert.GreaterOrEqual(t, f.Offset.Y, -bottom)
	assert.LessOrEqual(t, f.Offset.Y, 0.0)
}

func TestFrameListenerMayReadStateBack(t *testing.T) {
	// Frame events fire after the engine lock is released, so a listener
	// is free to query State while handling one.
	s := NewState()
	var zooms []float64
	s.On(EventFrameChanged, func(data interface{}) {
		assert.Equal(t, data.(viewport.Frame), s.Frame())
		zooms = append(zooms, s.Zoom())
	})

	s.Resized(viewport.Container{Width: 400, Height: 400})
	s.SetPhoto(photoOfSize(800, 400))
	s.SetZoom(3)

	assert.Equal(t, []float64{1, 1, 3}, zooms)
}

func TestDragStateEvents(t *testing.T) {
	s := NewState()
	var states []bool
	s.On(EventDragStateChanged, func(data interface{}) {
		states = append(states, data.(bool))
	})

	s.PointerDown(0, 0)
	assert.True(t, s.Dragging())
	s.PointerUp()
	assert.False(t, s.Dragging())

	assert.Equal(t, []bool{true, false}, states)
}
