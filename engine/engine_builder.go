package engine

import (
	"github.com/Carmen-Shannon/glix/engine/config"
	"github.com/Carmen-Shannon/glix/engine/renderer/shader"
	"github.com/Carmen-Shannon/glix/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig sets the configuration the engine is built from. A nil config keeps the defaults.
//
// Parameters:
//   - cfg: the loaded configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg *config.Config) EngineBuilderOption {
	return func(e *engine) {
		if cfg != nil {
			e.cfg = cfg
		}
	}
}

// WithProfiling enables or disables the frame profiler, overriding the configuration.
//
// Parameters:
//   - enabled: if true, frame statistics are logged once per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.cfg.Profiling.Enabled = enabled
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally. The engine does not close a window it did not create.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithShaderOptions passes loader options to the shader library, e.g. to load from a directory.
func WithShaderOptions(opts ...shader.LoaderOption) EngineBuilderOption {
	return func(e *engine) {
		e.shaderOpts = append(e.shaderOpts, opts...)
	}
}

// WithCursorClearColor makes the clear color follow the cursor position.
func WithCursorClearColor(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.cursorClear = enabled
	}
}
