package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPipelineKey sets the label of the pipeline and the GPU objects created for it.
//
// Parameters:
//   - key: the pipeline label
//
// Returns:
//   - RendererBuilderOption: a function that applies the key to a renderer
func WithPipelineKey(key string) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineKey = key
	}
}

// WithBackend replaces the GPU backend. NewRenderer creates a wgpu backend when none is given.
//
// Parameters:
//   - backend: the backend to issue GPU calls through
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend to a renderer
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}
