// Package app provides application state, the event bus, and lifecycle
// helpers. State is the single owner of the viewport engine: every pan
// trigger (resize, zoom, drag) routes through it, and collaborators react
// to the typed events it emits.
package app

import (
	"sync"

	"circlecrop/internal/adjust"
	"circlecrop/internal/loader"
	"circlecrop/internal/viewport"
)

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventFrameChanged
	EventAdjustChanged
	EventDragStateChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the loaded photo, the viewport
// engine, and the adjustment parameters. State is safe for concurrent
// use: the engine assumes a single caller at a time, so engineMu
// serializes every engine call — UI events and background decode
// delivery alike — while mu guards the photo/params snapshots and the
// listener table.
type State struct {
	mu sync.RWMutex

	// engineMu also guards pending, the frames the engine produced during
	// the call currently holding the lock.
	engineMu sync.Mutex
	engine   *viewport.Engine
	pending  []viewport.Frame

	photo  *loader.Photo
	params adjust.Params

	listeners map[EventType][]EventListener
}

// NewState creates a new application state with a fresh engine and
// neutral adjustments.
func NewState() *State {
	s := &State{
		engine:    viewport.NewEngine(),
		params:    adjust.Defaults(),
		listeners: make(map[EventType][]EventListener),
	}
	s.engine.OnFrame(func(f viewport.Frame) {
		s.pending = append(s.pending, f)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// withEngine runs one engine call under the engine lock, then emits the
// frames that call produced after the lock is released, so listeners may
// call back into State freely.
func (s *State) withEngine(fn func(*viewport.Engine)) {
	s.engineMu.Lock()
	fn(s.engine)
	frames := s.pending
	s.pending = nil
	s.engineMu.Unlock()

	for _, f := range frames {
		s.Emit(EventFrameChanged, f)
	}
}

// SetPhoto replaces the current photo wholesale. The engine resets the
// pan offset to the origin as part of taking the new image metrics.
// Callable from the loader goroutine.
func (s *State) SetPhoto(photo *loader.Photo) {
	s.mu.Lock()
	s.photo = photo
	s.mu.Unlock()

	s.withEngine(func(e *viewport.Engine) {
		e.SetImage(photo.Metrics())
	})
	s.Emit(EventImageLoaded, photo)
}

// Photo returns the currently loaded photo, or nil.
func (s *State) Photo() *loader.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.photo
}

// Params returns the current adjustment parameters.
func (s *State) Params() adjust.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// SetParams stores new adjustment parameters. They pass through to the
// renderer unmodified; range enforcement happens at the control panel.
func (s *State) SetParams(p adjust.Params) {
	s.mu.Lock()
	s.params = p
	s.mu.Unlock()

	s.Emit(EventAdjustChanged, p)
}

// Resized feeds new container metrics into the engine, which reclamps the
// stored offset against the new bounds.
func (s *State) Resized(c viewport.Container) {
	s.withEngine(func(e *viewport.Engine) {
		e.SetContainer(c)
	})
}

// SetZoom feeds a new zoom factor into the engine.
func (s *State) SetZoom(zoom float64) {
	s.withEngine(func(e *viewport.Engine) {
		e.SetZoom(zoom)
	})
}

// Zoom returns the current zoom factor.
func (s *State) Zoom() float64 {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	return s.engine.Zoom()
}

// Frame returns the engine's current output tuple.
func (s *State) Frame() viewport.Frame {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	return s.engine.Frame()
}

// Container returns the engine's current container metrics.
func (s *State) Container() viewport.Container {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	return s.engine.Container()
}

// PointerDown begins a drag gesture.
func (s *State) PointerDown(pageX, pageY float64) {
	s.withEngine(func(e *viewport.Engine) {
		e.PointerDown(pageX, pageY)
	})
	s.Emit(EventDragStateChanged, true)
}

// PointerMove advances a drag gesture; ignored while idle.
func (s *State) PointerMove(pageX, pageY float64) {
	s.withEngine(func(e *viewport.Engine) {
		e.PointerMove(pageX, pageY)
	})
}

// PointerUp ends the drag gesture unconditionally.
func (s *State) PointerUp() {
	s.withEngine(func(e *viewport.Engine) {
		e.PointerUp()
	})
	s.Emit(EventDragStateChanged, false)
}

// Dragging reports whether a drag gesture is in progress; the canvas uses
// this for cursor presentation.
func (s *State) Dragging() bool {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()
	return s.engine.Dragging()
}
