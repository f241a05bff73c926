package renderer

import (
	"github.com/Carmen-Shannon/glix/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// wgpuRendererBackend is the set of GPU calls one render pass is made of.
// A pass is always BeginPass, SetPipeline, Draw, EndPass and Submit in that order.
type wgpuRendererBackend interface {
	// RegisterRenderPipeline creates the shader module, pipeline layout and render pipeline for p
	// and stores the result on p.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// BeginPass creates a command encoder and begins a render pass that clears view to clearColor and stores the result.
	//
	// Parameters:
	//   - view: the color attachment
	//   - clearColor: the clear color
	//
	// Returns:
	//   - error: an error if the encoder could not be created
	BeginPass(view *wgpu.TextureView, clearColor wgpu.Color) error

	// SetPipeline binds the GPU pipeline of p to the open pass.
	SetPipeline(p pipeline.Pipeline)

	// Draw records a non-indexed draw in the open pass.
	Draw(vertexCount, instanceCount uint32)

	// EndPass ends the pass and finishes the encoder into a command buffer.
	//
	// Returns:
	//   - error: an error if the encoder could not be finished; nothing is submitted in that case
	EndPass() error

	// Submit submits the finished command buffer to the queue without waiting for it.
	Submit()

	// Release frees any pass state still held.
	Release()
}
