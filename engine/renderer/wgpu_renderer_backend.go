package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/glix/engine/renderer/pipeline"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	// Pass state, held between BeginPass and Submit.
	passEncoder   *wgpu.CommandEncoder
	pass          *wgpu.RenderPassEncoder
	commandBuffer *wgpu.CommandBuffer
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(device *wgpu.Device, queue *wgpu.Queue) wgpuRendererBackend {
	return &wgpuRendererBackendImpl{
		mu:     &sync.Mutex{},
		device: device,
		queue:  queue,
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	prog := p.Program()
	if prog == nil {
		return errors.New("pipeline has no shader program")
	}

	module, err := b.device.CreateShaderModule(prog.Module())
	if err != nil {
		return errors.Wrapf(err, "creating shader module %q", prog.Name())
	}
	defer module.Release()

	// No bind groups: the fixed pipeline reads no resources.
	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: p.PipelineKey() + " Pipeline Layout",
	})
	if err != nil {
		return errors.Wrap(err, "creating pipeline layout")
	}
	defer layout.Release()

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: prog.VertexEntry(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: prog.FragmentEntry(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    p.ColorFormat(),
					Blend:     p.BlendState(),
					WriteMask: p.WriteMask(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: p.SampleCount(),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return errors.Wrap(err, "creating render pipeline")
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) BeginPass(view *wgpu.TextureView, clearColor wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.passEncoder != nil {
		return errors.New("previous render pass not submitted")
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	b.passEncoder = encoder
	b.pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clearColor,
			},
		},
	})
	return nil
}

func (b *wgpuRendererBackendImpl) SetPipeline(p pipeline.Pipeline) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pass.SetPipeline(p.RenderPipeline())
}

func (b *wgpuRendererBackendImpl) Draw(vertexCount, instanceCount uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pass.Draw(vertexCount, instanceCount, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndPass() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pass.End()
	b.pass.Release()
	b.pass = nil

	commandBuffer, err := b.passEncoder.Finish(nil)
	if err != nil {
		b.passEncoder.Release()
		b.passEncoder = nil
		return err
	}
	b.commandBuffer = commandBuffer
	return nil
}

func (b *wgpuRendererBackendImpl) Submit() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.commandBuffer == nil {
		return
	}
	b.queue.Submit(b.commandBuffer)

	b.commandBuffer.Release()
	b.commandBuffer = nil
	b.passEncoder.Release()
	b.passEncoder = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pass != nil {
		b.pass.Release()
		b.pass = nil
	}
	if b.commandBuffer != nil {
		b.commandBuffer.Release()
		b.commandBuffer = nil
	}
	if b.passEncoder != nil {
		b.passEncoder.Release()
		b.passEncoder = nil
	}
}
