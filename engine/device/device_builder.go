package device

import "github.com/cogentcore/webgpu/wgpu"

// ContextBuilderOption is a functional option for configuring a Context.
// Use the With* functions to create options.
type ContextBuilderOption func(c *Context)

// WithBackend sets the single backend the instance is created with. Defaults to Vulkan.
//
// Parameters:
//   - backend: the instance backend flag
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithBackend(backend wgpu.InstanceBackend) ContextBuilderOption {
	return func(c *Context) {
		c.backend = backend
	}
}

// WithPowerPreference sets the adapter power preference. Defaults to high performance.
//
// Parameters:
//   - pref: the power preference
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithPowerPreference(pref wgpu.PowerPreference) ContextBuilderOption {
	return func(c *Context) {
		c.powerPreference = pref
	}
}

// WithSurfaceHint creates the surface for desc before the adapter is requested, so the adapter
// is required to be able to present to it. CreateSurface with the same descriptor returns that surface.
//
// Parameters:
//   - desc: the platform surface descriptor from the window
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithSurfaceHint(desc *wgpu.SurfaceDescriptor) ContextBuilderOption {
	return func(c *Context) {
		c.hintDesc = desc
	}
}

// WithForceFallbackAdapter requests the software fallback adapter.
func WithForceFallbackAdapter(force bool) ContextBuilderOption {
	return func(c *Context) {
		c.forceFallback = force
	}
}

// WithLabel sets the debug label of the logical device.
func WithLabel(label string) ContextBuilderOption {
	return func(c *Context) {
		c.label = label
	}
}
