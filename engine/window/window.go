// Package window is the GLFW window and event source: it supplies the surface descriptor
// and a stream of resize, scale, close, redraw and loop-cleared events.
package window

import (
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/glix/common"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetEventCallback sets the function receiving every window event.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetEventCallback(callback func(ev Event))

	// SetUpdateCallback sets the function called each message loop iteration after events are delivered.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetKeyDownCallback sets the callback for key press events. Close keys are handled before it is called.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMouseMoveCallback(callback func(x, y int32))

	// RequestRedraw schedules one EventRedrawRequested for the next loop iteration.
	// Repeated requests before it is delivered collapse into one.
	RequestRedraw()

	// RequestClose stops the message loop after the current iteration.
	RequestClose()

	// CursorPosition returns the last known cursor position in window pixels.
	//
	// Returns:
	//   - float64: x position
	//   - float64: y position
	CursorPosition() (float64, float64)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	// The same descriptor is returned on every call.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Each iteration polls platform events, delivers a pending
	// redraw, then EventMainEventsCleared, then calls the update callback.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	minWidth  int
	minHeight int

	cursorX float64
	cursorY float64

	redrawPending bool
	closing       bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any
	surfaceDesc    *wgpu.SurfaceDescriptor

	onEvent     func(ev Event)
	onUpdate    func()
	onKeyDown   func(keyCode uint32)
	onMouseMove func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, errors.Wrap(err, "failed to create platform window")
	}
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		mu:        &sync.Mutex{},
		title:     "glix",
		width:     800,
		height:    600,
		minWidth:  1,
		minHeight: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetEventCallback(callback func(ev Event)) {
	w.onEvent = callback
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) RequestRedraw() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.redrawPending = true
}

func (w *engineWindow) RequestClose() {
	w.mu.Lock()
	w.closing = true
	w.mu.Unlock()
	platformRequestClose(w)
}

func (w *engineWindow) CursorPosition() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursorX, w.cursorY
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.surfaceDesc == nil {
		w.surfaceDesc = platformGetSurfaceDescriptor(w)
	}
	return w.surfaceDesc
}

func (w *engineWindow) IsRunning() bool {
	w.mu.Lock()
	closing := w.closing
	w.mu.Unlock()
	return !closing && platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}
		w.endIteration()
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// emit delivers ev to the event callback.
func (w *engineWindow) emit(ev Event) {
	if w.onEvent != nil {
		w.onEvent(ev)
	}
}

// endIteration delivers a pending redraw, then the loop-cleared event, then the update callback.
func (w *engineWindow) endIteration() {
	w.mu.Lock()
	redraw := w.redrawPending
	w.redrawPending = false
	w.mu.Unlock()

	if redraw {
		w.emit(Event{Kind: EventRedrawRequested})
	}
	w.emit(Event{Kind: EventMainEventsCleared})
	if w.onUpdate != nil {
		w.onUpdate()
	}
}

// handleResize records the framebuffer size and emits EventResize.
func (w *engineWindow) handleResize(width, height int) {
	w.mu.Lock()
	w.width = width
	w.height = height
	w.mu.Unlock()
	w.emit(Event{Kind: EventResize, Width: width, Height: height})
}

// handleScale emits EventScaleFactorChanged with the current framebuffer size.
func (w *engineWindow) handleScale(scale float32, width, height int) {
	w.mu.Lock()
	w.width = width
	w.height = height
	w.mu.Unlock()
	w.emit(Event{Kind: EventScaleFactorChanged, Width: width, Height: height, Scale: scale})
}

// handleKeyDown turns close keys into EventCloseRequested and forwards everything else.
func (w *engineWindow) handleKeyDown(keyCode uint32) {
	if common.IsCloseKey(keyCode) {
		w.emit(Event{Kind: EventCloseRequested})
		return
	}
	if w.onKeyDown != nil {
		w.onKeyDown(keyCode)
	}
}

// handleCursor records the cursor position and forwards it.
func (w *engineWindow) handleCursor(x, y float64) {
	w.mu.Lock()
	w.cursorX = x
	w.cursorY = y
	w.mu.Unlock()
	if w.onMouseMove != nil {
		w.onMouseMove(int32(x), int32(y))
	}
}
