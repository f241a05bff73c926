// Package renderer owns the fixed graphics pipeline and encodes one render pass per call.
package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/glix/engine/device"
	"github.com/Carmen-Shannon/glix/engine/logging"
	"github.com/Carmen-Shannon/glix/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/glix/engine/renderer/shader"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sirupsen/logrus"
)

// ErrFormatMismatch is returned by Render when the target format differs from the pipeline's color format.
// It indicates a programming error and is fatal for the session.
var ErrFormatMismatch = errors.New("color target format does not match pipeline format")

// ColorTarget is the view a render pass draws into, tagged with its format.
type ColorTarget struct {
	View   *wgpu.TextureView
	Format wgpu.TextureFormat
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineKey string
	pipeline    pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	passes uint64
	log    *logrus.Entry
}

// Renderer draws the fixed pipeline into a color target, one submitted render pass per Render call.
type Renderer interface {
	// Render encodes a render pass that clears target to clearColor, draws 3 vertices and 1 instance with the
	// fixed pipeline, and submits it once. It does not wait for the GPU.
	//
	// Parameters:
	//   - target: the color target; its format must equal Format()
	//   - clearColor: the clear color
	//
	// Returns:
	//   - error: ErrFormatMismatch for a target of the wrong format, or a pass encoding failure
	Render(target ColorTarget, clearColor wgpu.Color) error

	// Format returns the color format the pipeline is bound to.
	//
	// Returns:
	//   - wgpu.TextureFormat: the bound color format
	Format() wgpu.TextureFormat

	// Pipeline returns the pipeline description.
	Pipeline() pipeline.Pipeline

	// Passes returns the number of submitted render passes.
	Passes() uint64

	// Release frees the pipeline and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the fixed pipeline for program against colorFormat.
//
// Parameters:
//   - ctx: the GPU session
//   - program: the shader program providing vs_main and fs_main
//   - colorFormat: the format of the targets Render will be called with
//   - opts: functional options
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the pipeline could not be created
func NewRenderer(ctx *device.Context, program shader.Program, colorFormat wgpu.TextureFormat, opts ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		pipelineKey: "glix",
		backendType: BackendTypeWGPU,
		log:         logging.Component("renderer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if program == nil {
		return nil, errors.New("nil shader program")
	}
	if r.backend == nil {
		if ctx == nil {
			return nil, errors.New("nil device context")
		}
		r.backend = newWGPURendererBackend(ctx.Device(), ctx.Queue())
	}

	r.pipeline = pipeline.NewPipeline(r.pipelineKey, program, colorFormat)
	if err := r.backend.RegisterRenderPipeline(r.pipeline); err != nil {
		return nil, errors.Wrapf(err, "creating render pipeline %q", r.pipelineKey)
	}

	r.log.WithFields(logrus.Fields{
		"pipeline": r.pipelineKey,
		"program":  program.Name(),
		"format":   colorFormat.String(),
	}).Info("render pipeline created")

	return r, nil
}

func (r *renderer) Render(target ColorTarget, clearColor wgpu.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if target.Format != r.pipeline.ColorFormat() {
		return errors.Wrapf(ErrFormatMismatch, "target %s, pipeline %s", target.Format.String(), r.pipeline.ColorFormat().String())
	}

	if err := r.backend.BeginPass(target.View, clearColor); err != nil {
		return errors.Wrap(err, "beginning render pass")
	}
	r.backend.SetPipeline(r.pipeline)
	r.backend.Draw(3, 1)
	if err := r.backend.EndPass(); err != nil {
		return errors.Wrap(err, "finishing render pass")
	}
	r.backend.Submit()
	r.passes++
	return nil
}

func (r *renderer) Format() wgpu.TextureFormat {
	return r.pipeline.ColorFormat()
}

func (r *renderer) Pipeline() pipeline.Pipeline {
	return r.pipeline
}

func (r *renderer) Passes() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.passes
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
