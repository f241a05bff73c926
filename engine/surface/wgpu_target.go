package surface

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuTarget drives a real wgpu surface.
type wgpuTarget struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
}

var _ Target = &wgpuTarget{}

func newWGPUTarget(surface *wgpu.Surface, adapter *wgpu.Adapter, device *wgpu.Device) *wgpuTarget {
	return &wgpuTarget{
		surface: surface,
		adapter: adapter,
		device:  device,
	}
}

func (t *wgpuTarget) Capabilities() Capabilities {
	caps := t.surface.GetCapabilities(t.adapter)
	return Capabilities{
		Formats:      caps.Formats,
		PresentModes: caps.PresentModes,
		AlphaModes:   caps.AlphaModes,
	}
}

func (t *wgpuTarget) Configure(cfg Config) error {
	t.surface.Configure(t.adapter, t.device, &wgpu.SurfaceConfiguration{
		Usage:       cfg.Usage,
		Format:      cfg.Format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
	return nil
}

func (t *wgpuTarget) Acquire() (Image, error) {
	tex, err := t.surface.GetCurrentTexture()
	if err != nil {
		return nil, translateSurfaceError(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, translateSurfaceError(err)
	}
	return &wgpuImage{texture: tex, view: view}, nil
}

func (t *wgpuTarget) Present() error {
	t.surface.Present()
	return nil
}

func (t *wgpuTarget) Release() {
	if t.surface != nil {
		t.surface.Release()
		t.surface = nil
	}
}

type wgpuImage struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (i *wgpuImage) View() *wgpu.TextureView {
	return i.view
}

func (i *wgpuImage) Release() {
	if i.view != nil {
		i.view.Release()
		i.view = nil
	}
	if i.texture != nil {
		i.texture.Release()
		i.texture = nil
	}
}

// translateSurfaceError marks a wgpu surface error with the matching sentinel.
// wgpu reports surface texture status only through the error text, so the match is on lowercase substrings.
//
// Parameters:
//   - err: the error returned by the surface
//
// Returns:
//   - error: err marked with ErrDeviceLost, ErrSurfaceLost, ErrSurfaceOutdated, ErrOutOfMemory or ErrSurfaceTimeout,
//     or err unchanged when it matches none of them
func translateSurfaceError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "device lost"), strings.Contains(msg, "devicelost"):
		return errors.Mark(err, ErrDeviceLost)
	case strings.Contains(msg, "out of memory"), strings.Contains(msg, "outofmemory"):
		return errors.Mark(err, ErrOutOfMemory)
	case strings.Contains(msg, "outdated"):
		return errors.Mark(err, ErrSurfaceOutdated)
	case strings.Contains(msg, "lost"):
		return errors.Mark(err, ErrSurfaceLost)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return errors.Mark(err, ErrSurfaceTimeout)
	default:
		return err
	}
}
