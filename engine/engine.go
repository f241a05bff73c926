// Package engine composes the window, GPU session, surface, renderer and frame driver into a runnable loop.
package engine

import (
	"sync"

	"github.com/Carmen-Shannon/glix/common"
	"github.com/Carmen-Shannon/glix/engine/config"
	"github.com/Carmen-Shannon/glix/engine/device"
	"github.com/Carmen-Shannon/glix/engine/frame"
	"github.com/Carmen-Shannon/glix/engine/logging"
	"github.com/Carmen-Shannon/glix/engine/profiler"
	"github.com/Carmen-Shannon/glix/engine/renderer"
	"github.com/Carmen-Shannon/glix/engine/renderer/shader"
	"github.com/Carmen-Shannon/glix/engine/surface"
	"github.com/Carmen-Shannon/glix/engine/window"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sirupsen/logrus"
)

// engine implements the Engine interface.
// Owns every GPU resource it creates and releases them in reverse order when Run returns.
type engine struct {
	mu *sync.Mutex

	cfg *config.Config

	window     window.Window
	ownsWindow bool

	ctx      *device.Context
	surface  surface.Manager
	library  shader.Library
	renderer renderer.Renderer
	driver   *frame.Driver
	profiler *profiler.Profiler

	shaderOpts  []shader.LoaderOption
	cursorClear bool
	loopErr     error
	released    bool

	log *logrus.Entry
}

// Engine is the main entry point for the engine.
// It drives one frame per window redraw until the window closes or a fatal error occurs.
type Engine interface {
	// Run processes window messages until the window closes or the frame driver hits a fatal error.
	// All GPU resources and the window are released before Run returns.
	//
	// Returns:
	//   - error: the fatal error that ended the session, or nil on a normal close
	Run() error

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Driver returns the frame driver.
	//
	// Returns:
	//   - *frame.Driver: the driver routing window events into frames
	Driver() *frame.Driver

	// Quit asks the frame driver to stop and the window to close.
	// Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates the window (unless WithWindow supplied one), the GPU session with the window's
// surface as adapter hint, the surface manager, the shader library and renderer, and the frame driver.
// Anything created before a failure is released.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if any stage of setup failed
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:  &sync.Mutex{},
		cfg: config.DefaultConfig(),
		log: logging.Component("engine"),
	}
	for _, opt := range options {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	if err := e.setup(); err != nil {
		e.release()
		return nil, err
	}
	return e, nil
}

func (e *engine) setup() error {
	if e.window == nil {
		w, err := window.NewWindow(
			window.WithTitle(e.cfg.Window.Title),
			window.WithWidth(e.cfg.Window.Width),
			window.WithHeight(e.cfg.Window.Height),
		)
		if err != nil {
			return err
		}
		e.window = w
		e.ownsWindow = true
	}

	backend, err := device.ParseBackend(e.cfg.Renderer.Backend)
	if err != nil {
		return err
	}
	power, err := device.ParsePowerPreference(e.cfg.Renderer.PowerPreference)
	if err != nil {
		return err
	}

	desc := e.window.SurfaceDescriptor()
	e.ctx, err = device.New(
		device.WithBackend(backend),
		device.WithPowerPreference(power),
		device.WithSurfaceHint(desc),
		device.WithLabel(e.cfg.Window.Title),
	)
	if err != nil {
		return err
	}

	var surfaceOpts []surface.ManagerBuilderOption
	mode, ok, err := surface.ParsePresentMode(e.cfg.Renderer.PresentMode)
	if err != nil {
		return err
	}
	if ok {
		surfaceOpts = append(surfaceOpts, surface.WithPresentMode(mode))
	}
	e.surface, err = surface.NewManager(e.ctx, desc, e.window.Width(), e.window.Height(), surfaceOpts...)
	if err != nil {
		return err
	}

	e.library = shader.NewLibrary(shader.WithLoaderOptions(e.shaderOpts...))
	if err := e.library.Preload(e.cfg.Renderer.Shader); err != nil {
		return err
	}
	program, err := e.library.Get(e.cfg.Renderer.Shader)
	if err != nil {
		return err
	}

	e.renderer, err = renderer.NewRenderer(e.ctx, program, e.surface.Format(),
		renderer.WithPipelineKey(program.Name()))
	if err != nil {
		return err
	}

	rgba := e.cfg.ClearColorRGBA()
	driverOpts := []frame.DriverBuilderOption{
		frame.WithRedrawRequester(e.window.RequestRedraw),
		frame.WithClearColor(wgpu.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}),
	}
	if e.cfg.Profiling.Enabled {
		e.profiler = profiler.NewProfiler(0)
		driverOpts = append(driverOpts, frame.WithProfiler(e.profiler))
	}
	e.driver = frame.NewDriver(e.surface, e.renderer, driverOpts...)

	e.log.WithFields(logrus.Fields{
		"session": e.ctx.SessionID().String(),
		"backend": device.BackendName(e.ctx.Backend()),
		"format":  e.surface.Format().String(),
	}).Info("engine ready")
	return nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Driver() *frame.Driver {
	return e.driver
}

func (e *engine) Run() error {
	e.window.SetEventCallback(e.handleEvent)
	if e.cursorClear {
		e.window.SetMouseMoveCallback(e.handleMouseMove)
	}

	// The first frame is requested explicitly; every later one comes from MainEventsCleared.
	e.window.RequestRedraw()
	e.window.ProcessMessages()

	err := e.driver.Err()
	e.mu.Lock()
	if err == nil {
		err = e.loopErr
	}
	e.mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"frames":  e.driver.Frames(),
		"skipped": e.driver.Skipped(),
	}).Info("engine stopped")

	e.release()
	return err
}

// handleEvent routes one window event into the driver and closes the window once the driver stops
// or fails.
func (e *engine) handleEvent(ev window.Event) {
	if err := e.driver.HandleEvent(ev); err != nil {
		e.mu.Lock()
		if e.loopErr == nil {
			e.loopErr = err
		}
		e.mu.Unlock()
		if errors.Is(err, frame.ErrTerminal) {
			e.log.WithError(err).Error("fatal frame error, closing window")
			e.window.RequestClose()
			return
		}
		e.log.WithError(err).Warn("window event failed")
	}
	if e.driver.Stopped() {
		e.window.RequestClose()
	}
}

func (e *engine) handleMouseMove(x, y int32) {
	if c, ok := cursorClearColor(float32(x), float32(y), e.window.Width(), e.window.Height()); ok {
		e.driver.SetClearColor(c)
	}
}

// cursorClearColor maps a cursor position to a clear color: red follows x and green follows y,
// both taken from the position's NDC coordinates.
func cursorClearColor(x, y float32, width, height int) (wgpu.Color, bool) {
	ndc, err := common.Point{X: x, Y: y}.ToNDC(common.NewWindowSize(width, height))
	if err != nil {
		return wgpu.Color{}, false
	}
	return wgpu.Color{
		R: clamp01(float64(ndc.X+1) / 2),
		G: clamp01(float64(ndc.Y+1) / 2),
		B: 0.25,
		A: 1,
	}, true
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func (e *engine) Quit() {
	if e.driver != nil {
		e.driver.RequestStop()
	}
	if e.window != nil {
		e.window.RequestClose()
	}
}

// release frees everything the engine created, newest first.
func (e *engine) release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return
	}
	e.released = true

	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.surface != nil {
		e.surface.Release()
	}
	if e.ctx != nil {
		e.ctx.Release()
	}
	if e.window != nil && e.ownsWindow {
		if err := e.window.Close(); err != nil {
			e.log.WithError(err).Warn("closing window")
		}
	}
}
