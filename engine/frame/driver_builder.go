package frame

import "github.com/cogentcore/webgpu/wgpu"

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(d *Driver)

// WithStateObserver sets a function called on every state transition, after the state is updated.
//
// Parameters:
//   - observer: function receiving the previous and the new state
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithStateObserver(observer func(from, to State)) DriverBuilderOption {
	return func(d *Driver) {
		d.observer = observer
	}
}

// WithRedrawRequester sets the function MainEventsCleared calls to schedule the next frame,
// usually the window's RequestRedraw.
//
// Parameters:
//   - redraw: the redraw request function
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithRedrawRequester(redraw func()) DriverBuilderOption {
	return func(d *Driver) {
		d.redraw = redraw
	}
}

// WithProfiler sets the profiler notified at frame boundaries.
func WithProfiler(p Profiler) DriverBuilderOption {
	return func(d *Driver) {
		d.profiler = p
	}
}

// WithClearColor sets the initial clear color.
func WithClearColor(c wgpu.Color) DriverBuilderOption {
	return func(d *Driver) {
		d.clear = c
	}
}
