// Package pipeline describes the fixed graphics pipeline state: the shader program, the color format
// it is bound to, and the primitive, multisample and blend settings the GPU pipeline is created with.
package pipeline

import (
	"github.com/Carmen-Shannon/glix/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// pipelineKey is the label used for the GPU objects created from this pipeline.
	pipelineKey string

	program     shader.Program
	colorFormat wgpu.TextureFormat

	// renderPipeline is nil until the renderer creates it; it is set once.
	renderPipeline *wgpu.RenderPipeline

	cullMode    wgpu.CullMode
	topology    wgpu.PrimitiveTopology
	frontFace   wgpu.FrontFace
	writeMask   wgpu.ColorWriteMask
	sampleCount uint32
	blendState  *wgpu.BlendState
}

// Pipeline is the immutable description of a render pipeline bound to one color format.
type Pipeline interface {
	// PipelineKey returns the label of the pipeline.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Program returns the shader program providing vs_main and fs_main.
	//
	// Returns:
	//   - shader.Program: the program
	Program() shader.Program

	// ColorFormat returns the format of the single color target the pipeline writes.
	//
	// Returns:
	//   - wgpu.TextureFormat: the bound color format
	ColorFormat() wgpu.TextureFormat

	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology
	FrontFace() wgpu.FrontFace
	WriteMask() wgpu.ColorWriteMask
	SampleCount() uint32

	// BlendState returns the blend state of the color target.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline
	BlendState() *wgpu.BlendState

	// RenderPipeline returns the GPU pipeline, or nil if it has not been created yet.
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the created GPU pipeline. Only the first call has an effect.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// ReplaceBlend writes the fragment output unchanged over the target.
var ReplaceBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
		Operation: wgpu.BlendOperationAdd,
	},
}

// NewPipeline creates a pipeline description with triangle-list topology, counter-clockwise front faces,
// back-face culling, one sample, replace blending and all color channels written.
// Polygon fill mode is the wgpu default and is not configurable.
//
// Parameters:
//   - pipelineKey: the label for GPU objects created from this pipeline
//   - program: the shader program
//   - colorFormat: the color target format
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, program shader.Program, colorFormat wgpu.TextureFormat, opts ...PipelineBuilderOption) Pipeline {
	blend := ReplaceBlend
	p := &pipeline{
		pipelineKey: pipelineKey,
		program:     program,
		colorFormat: colorFormat,
		cullMode:    wgpu.CullModeBack,
		topology:    wgpu.PrimitiveTopologyTriangleList,
		frontFace:   wgpu.FrontFaceCCW,
		writeMask:   wgpu.ColorWriteMaskAll,
		sampleCount: 1,
		blendState:  &blend,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Program() shader.Program {
	return p.program
}

func (p *pipeline) ColorFormat() wgpu.TextureFormat {
	return p.colorFormat
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) SampleCount() uint32 {
	return p.sampleCount
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	if p.renderPipeline != nil {
		return
	}
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
