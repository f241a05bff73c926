package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("glix", nil, wgpu.TextureFormatBGRA8UnormSrgb)

	if p.PipelineKey() != "glix" {
		t.Errorf("PipelineKey() = %q", p.PipelineKey())
	}
	if p.ColorFormat() != wgpu.TextureFormatBGRA8UnormSrgb {
		t.Errorf("ColorFormat() = %v", p.ColorFormat())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v, want triangle list", p.Topology())
	}
	if p.FrontFace() != wgpu.FrontFaceCCW {
		t.Errorf("FrontFace() = %v, want CCW", p.FrontFace())
	}
	if p.CullMode() != wgpu.CullModeBack {
		t.Errorf("CullMode() = %v, want back", p.CullMode())
	}
	if p.SampleCount() != 1 {
		t.Errorf("SampleCount() = %d, want 1", p.SampleCount())
	}
	if p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Errorf("WriteMask() = %v, want all", p.WriteMask())
	}
	if b := p.BlendState(); b == nil || *b != ReplaceBlend {
		t.Errorf("BlendState() = %+v, want replace", b)
	}
	if p.RenderPipeline() != nil {
		t.Error("RenderPipeline() set before creation")
	}
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("opts", nil, wgpu.TextureFormatRGBA8Unorm,
		WithCullMode(wgpu.CullModeNone),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	if p.CullMode() != wgpu.CullModeNone || p.FrontFace() != wgpu.FrontFaceCW || p.WriteMask() != wgpu.ColorWriteMaskRed {
		t.Errorf("options not applied: cull=%v front=%v mask=%v", p.CullMode(), p.FrontFace(), p.WriteMask())
	}
}

func TestReplaceBlendNotShared(t *testing.T) {
	a := NewPipeline("a", nil, wgpu.TextureFormatRGBA8Unorm)
	b := NewPipeline("b", nil, wgpu.TextureFormatRGBA8Unorm)
	a.BlendState().Color.SrcFactor = wgpu.BlendFactorSrcAlpha
	if b.BlendState().Color.SrcFactor != wgpu.BlendFactorOne {
		t.Error("pipelines share a blend state")
	}
	if ReplaceBlend.Color.SrcFactor != wgpu.BlendFactorOne {
		t.Error("ReplaceBlend was mutated")
	}
}
