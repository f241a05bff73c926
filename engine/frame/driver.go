// Package frame drives one frame per tick: acquire a surface image, render into it, present it.
// Acquisition and present failures are classified as either skipping the frame or ending the session.
package frame

import (
	"sync"

	"github.com/Carmen-Shannon/glix/engine/logging"
	"github.com/Carmen-Shannon/glix/engine/renderer"
	"github.com/Carmen-Shannon/glix/engine/surface"
	"github.com/Carmen-Shannon/glix/engine/window"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sirupsen/logrus"
)

var (
	// ErrTerminal marks a failure that ends the session. Every later Tick returns it again.
	ErrTerminal = errors.New("frame driver stopped on fatal error")

	// ErrFrameSkipped marks a failure that dropped the current frame only.
	ErrFrameSkipped = errors.New("frame skipped")

	// ErrStopped is returned by Tick after a stop request.
	ErrStopped = errors.New("frame driver stopped")

	// ErrTickInProgress is returned by a reentrant Tick.
	ErrTickInProgress = errors.New("tick already in progress")
)

// Surface is the part of surface.Manager the driver uses.
type Surface interface {
	Resize(width, height int) error
	AcquireFrame() (*surface.Frame, error)
	Present(frame *surface.Frame) error
	Discard(frame *surface.Frame)
}

// Renderer is the part of renderer.Renderer the driver uses.
type Renderer interface {
	Render(target renderer.ColorTarget, clearColor wgpu.Color) error
}

// Profiler receives frame boundaries.
type Profiler interface {
	BeginFrame()
	EndFrame(presented bool) bool
}

// Driver runs the per-tick state machine Idle, Acquiring, Encoding, Presenting and back to Idle.
type Driver struct {
	mu *sync.Mutex

	surface  Surface
	renderer Renderer

	state    State
	clear    wgpu.Color
	inTick   bool
	stopped  bool
	terminal error

	// pendingResize holds the last resize that arrived during a tick.
	pendingResize *[2]int

	frames  uint64
	skipped uint64

	observer func(from, to State)
	redraw   func()
	profiler Profiler
	log      *logrus.Entry
}

// NewDriver creates a driver in StateIdle with an opaque black clear color.
//
// Parameters:
//   - s: the surface to acquire from and present to
//   - r: the renderer to encode passes with
//   - opts: functional options
//
// Returns:
//   - *Driver: the driver
func NewDriver(s Surface, r Renderer, opts ...DriverBuilderOption) *Driver {
	d := &Driver{
		mu:       &sync.Mutex{},
		surface:  s,
		renderer: r,
		state:    StateIdle,
		clear:    wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		log:      logging.Component("frame"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tick runs one full frame.
// A frame is either fully rendered and presented, or its image is released unpresented.
//
// Returns:
//   - error: nil on a presented frame; an error marked ErrFrameSkipped when only this frame failed and the
//     driver is Idle again; an error marked ErrTerminal when the session must end; ErrStopped after a stop
//     request; ErrTickInProgress when called from inside a tick
func (d *Driver) Tick() error {
	d.mu.Lock()
	switch {
	case d.terminal != nil:
		err := d.terminal
		d.mu.Unlock()
		return err
	case d.stopped:
		d.mu.Unlock()
		return ErrStopped
	case d.inTick:
		d.mu.Unlock()
		return ErrTickInProgress
	}
	d.inTick = true
	clearColor := d.clear
	d.mu.Unlock()

	defer d.endTick()

	if d.profiler != nil {
		d.profiler.BeginFrame()
	}

	d.setState(StateAcquiring)
	frame, err := d.surface.AcquireFrame()
	if err != nil {
		if surface.IsFatal(err) {
			return d.fail(errors.Wrap(err, "acquiring frame"))
		}
		return d.skip(errors.Wrap(err, "acquiring frame"))
	}

	d.setState(StateEncoding)
	err = d.renderer.Render(renderer.ColorTarget{View: frame.View(), Format: frame.Format}, clearColor)
	if err != nil {
		d.surface.Discard(frame)
		if errors.Is(err, renderer.ErrFormatMismatch) || surface.IsFatal(err) {
			return d.fail(errors.Wrap(err, "encoding frame"))
		}
		return d.skip(errors.Wrap(err, "encoding frame"))
	}

	d.setState(StatePresenting)
	if err := d.surface.Present(frame); err != nil {
		if surface.IsFatal(err) {
			return d.fail(errors.Wrap(err, "presenting frame"))
		}
		return d.skip(errors.Wrap(err, "presenting frame"))
	}

	d.mu.Lock()
	d.frames++
	d.mu.Unlock()
	d.setState(StateIdle)
	if d.profiler != nil {
		d.profiler.EndFrame(true)
	}
	return nil
}

// endTick clears the in-tick flag and applies a resize that arrived during the tick.
func (d *Driver) endTick() {
	d.mu.Lock()
	d.inTick = false
	pending := d.pendingResize
	d.pendingResize = nil
	terminal := d.terminal != nil
	d.mu.Unlock()

	if pending != nil && !terminal {
		if err := d.surface.Resize(pending[0], pending[1]); err != nil {
			d.log.WithError(err).Warn("deferred resize failed")
		}
	}
}

func (d *Driver) skip(err error) error {
	d.mu.Lock()
	d.skipped++
	d.mu.Unlock()
	d.setState(StateIdle)
	if d.profiler != nil {
		d.profiler.EndFrame(false)
	}
	d.log.WithError(err).Warn("frame skipped")
	return errors.Mark(err, ErrFrameSkipped)
}

func (d *Driver) fail(err error) error {
	err = errors.Mark(err, ErrTerminal)
	d.mu.Lock()
	d.terminal = err
	d.mu.Unlock()
	d.setState(StateError)
	d.log.WithError(err).Error("frame driver entered terminal state")
	return err
}

func (d *Driver) setState(next State) {
	d.mu.Lock()
	prev := d.state
	d.state = next
	observer := d.observer
	d.mu.Unlock()

	if prev != next {
		d.log.WithFields(logrus.Fields{"from": prev.String(), "state": next.String()}).Trace("state change")
	}
	if observer != nil {
		observer(prev, next)
	}
}

// Resize forwards a new window size to the surface. A resize that arrives during a tick is applied
// when the tick ends; only the last one is kept.
//
// Parameters:
//   - width: new width in pixels
//   - height: new height in pixels
//
// Returns:
//   - error: the surface reconfiguration error, or nil when deferred
func (d *Driver) Resize(width, height int) error {
	d.mu.Lock()
	if d.inTick {
		d.pendingResize = &[2]int{width, height}
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()
	return d.surface.Resize(width, height)
}

// HandleEvent routes a window event.
// Resize and ScaleFactorChanged resize the surface, CloseRequested requests a stop, RedrawRequested
// runs a tick unless stopped, and MainEventsCleared asks the window for the next redraw.
//
// Parameters:
//   - ev: the window event
//
// Returns:
//   - error: the Resize or Tick error; skipped frames are not reported
func (d *Driver) HandleEvent(ev window.Event) error {
	switch ev.Kind {
	case window.EventResize, window.EventScaleFactorChanged:
		return d.Resize(ev.Width, ev.Height)
	case window.EventCloseRequested:
		d.RequestStop()
	case window.EventRedrawRequested:
		if d.Stopped() {
			return nil
		}
		if err := d.Tick(); err != nil && !errors.Is(err, ErrFrameSkipped) {
			return err
		}
	case window.EventMainEventsCleared:
		d.mu.Lock()
		redraw := d.redraw
		active := !d.stopped && d.terminal == nil
		d.mu.Unlock()
		if redraw != nil && active {
			redraw()
		}
	}
	return nil
}

// RequestStop stops the driver. A tick in progress completes first.
func (d *Driver) RequestStop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopped {
		d.stopped = true
		d.log.Info("stop requested")
	}
}

// Stopped reports whether a stop was requested.
func (d *Driver) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// State returns the current state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Err returns the terminal error, or nil while the driver can still run.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.terminal
}

// SetClearColor sets the clear color used from the next tick on.
func (d *Driver) SetClearColor(c wgpu.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clear = c
}

// ClearColor returns the current clear color.
func (d *Driver) ClearColor() wgpu.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clear
}

// Frames returns the number of presented frames.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Skipped returns the number of dropped frames.
func (d *Driver) Skipped() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.skipped
}
