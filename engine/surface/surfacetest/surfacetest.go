// Package surfacetest provides a scripted surface.Target for tests that cannot open a GPU.
package surfacetest

import (
	"sync"

	"github.com/Carmen-Shannon/glix/engine/surface"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Target is a surface.Target whose acquisition results are scripted.
// Acquire pops the next queued error; an empty queue or a nil entry acquires successfully.
type Target struct {
	mu *sync.Mutex

	Caps         surface.Capabilities
	ConfigureErr error
	PresentErr   error

	acquireErrs []error
	configured  []surface.Config
	acquires    int
	presents    int
	outstanding int
	released    bool
}

var _ surface.Target = &Target{}

// New returns a Target supporting BGRA8Unorm and BGRA8UnormSrgb, FIFO and immediate present modes,
// and opaque alpha.
func New() *Target {
	return &Target{
		mu: &sync.Mutex{},
		Caps: surface.Capabilities{
			Formats:      []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb},
			PresentModes: []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate},
			AlphaModes:   []wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque},
		},
	}
}

// QueueAcquire appends results for the next Acquire calls.
func (t *Target) QueueAcquire(errs ...error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.acquireErrs = append(t.acquireErrs, errs...)
}

// Lost returns an acquisition error tagged as a lost surface.
func Lost() error {
	return errors.Mark(errors.New("surface texture status: lost"), surface.ErrSurfaceLost)
}

// Outdated returns an acquisition error tagged as an outdated surface.
func Outdated() error {
	return errors.Mark(errors.New("surface texture status: outdated"), surface.ErrSurfaceOutdated)
}

// OutOfMemory returns an acquisition error tagged as out of memory.
func OutOfMemory() error {
	return errors.Mark(errors.New("surface texture status: out of memory"), surface.ErrOutOfMemory)
}

// Timeout returns an acquisition error tagged as a timeout.
func Timeout() error {
	return errors.Mark(errors.New("surface texture status: timeout"), surface.ErrSurfaceTimeout)
}

func (t *Target) Capabilities() surface.Capabilities {
	return t.Caps
}

func (t *Target) Configure(cfg surface.Config) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ConfigureErr != nil {
		return t.ConfigureErr
	}
	t.configured = append(t.configured, cfg)
	return nil
}

func (t *Target) Acquire() (surface.Image, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.acquires++
	if len(t.acquireErrs) > 0 {
		err := t.acquireErrs[0]
		t.acquireErrs = t.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	t.outstanding++
	return &image{t: t}, nil
}

func (t *Target) Present() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.presents++
	return t.PresentErr
}

func (t *Target) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.released = true
}

// Configured returns every configuration applied so far, including the initial one.
func (t *Target) Configured() []surface.Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]surface.Config(nil), t.configured...)
}

// Acquires returns the number of Acquire calls.
func (t *Target) Acquires() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.acquires
}

// Presents returns the number of Present calls.
func (t *Target) Presents() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.presents
}

// Outstanding returns the number of acquired images not yet released.
func (t *Target) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outstanding
}

// Released reports whether Release was called.
func (t *Target) Released() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}

type image struct {
	t        *Target
	released bool
}

func (i *image) View() *wgpu.TextureView {
	return nil
}

func (i *image) Release() {
	if i.released {
		return
	}
	i.released = true
	i.t.mu.Lock()
	i.t.outstanding--
	i.t.mu.Unlock()
}
