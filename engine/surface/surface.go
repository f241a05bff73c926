// Package surface owns the presentable surface: its configuration, reconfiguration on resize,
// and per-frame image acquisition with a single reconfigure-and-retry on stale surfaces.
package surface

import (
	"sync"

	"github.com/Carmen-Shannon/glix/common"
	"github.com/Carmen-Shannon/glix/engine/device"
	"github.com/Carmen-Shannon/glix/engine/logging"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/sirupsen/logrus"
)

// Config is the active surface configuration.
// Width and Height are always positive once configured.
type Config struct {
	Width       uint32
	Height      uint32
	Format      wgpu.TextureFormat
	PresentMode wgpu.PresentMode
	Usage       wgpu.TextureUsage
	AlphaMode   wgpu.CompositeAlphaMode
}

// Frame is one acquired image. It lives for exactly one tick and must be passed to either
// Present or Discard.
type Frame struct {
	image  Image
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32
}

// View returns the render attachment view of the acquired image, or nil once the frame is finished.
func (f *Frame) View() *wgpu.TextureView {
	if f == nil || f.image == nil {
		return nil
	}
	return f.image.View()
}

// Manager owns the surface and its configuration.
type Manager interface {
	// Resize reconfigures the surface at the new size.
	// A non-positive dimension is ignored and leaves the configuration unchanged.
	//
	// Parameters:
	//   - width: new width in pixels
	//   - height: new height in pixels
	//
	// Returns:
	//   - error: an error if the surface rejected the new configuration
	Resize(width, height int) error

	// AcquireFrame requests the next presentable image.
	// A lost or outdated surface is reconfigured with the current configuration and acquisition is retried once.
	//
	// Returns:
	//   - *Frame: the acquired frame
	//   - error: marked ErrStaleAfterRetry when the retry was also stale, ErrOutOfMemory or ErrDeviceLost
	//     when fatal, or any other per-frame failure
	AcquireFrame() (*Frame, error)

	// Present presents the frame's image and releases it.
	//
	// Parameters:
	//   - frame: the frame returned by AcquireFrame
	//
	// Returns:
	//   - error: a fatal error when the device ran out of memory, otherwise a reportable present failure
	Present(frame *Frame) error

	// Discard releases the frame's image without presenting it.
	//
	// Parameters:
	//   - frame: the frame returned by AcquireFrame
	Discard(frame *Frame)

	// Config returns a snapshot of the current configuration.
	Config() Config

	// Format returns the configured color format.
	Format() wgpu.TextureFormat

	// Reconfigurations returns how many times the surface was configured after creation.
	Reconfigurations() int

	// Release frees the surface.
	Release()
}

type surfaceManager struct {
	mu *sync.Mutex

	target Target
	config Config

	presentMode *wgpu.PresentMode
	reconfigs   int
	inFlight    bool

	log *logrus.Entry
}

var _ Manager = &surfaceManager{}

// NewManager creates the surface for desc through the device context and configures it at width x height.
// The format is the first SRGB format the surface supports, or its first format otherwise.
// The present mode is the WithPresentMode preference when supported, or the first supported mode.
//
// Parameters:
//   - ctx: the GPU session
//   - desc: the platform surface descriptor from the window
//   - width: initial width in pixels
//   - height: initial height in pixels
//   - opts: functional options
//
// Returns:
//   - Manager: the configured surface manager
//   - error: an error if the surface could not be created or configured
func NewManager(ctx *device.Context, desc *wgpu.SurfaceDescriptor, width, height int, opts ...ManagerBuilderOption) (Manager, error) {
	s, err := ctx.CreateSurface(desc)
	if err != nil {
		return nil, errors.Wrap(err, "creating surface")
	}
	m, err := NewManagerWithTarget(newWGPUTarget(s, ctx.Adapter(), ctx.Device()), width, height, opts...)
	if err != nil {
		s.Release()
		return nil, err
	}
	return m, nil
}

// NewManagerWithTarget configures an existing Target. NewManager uses it for wgpu surfaces;
// other callers can supply their own Target.
//
// Parameters:
//   - target: the surface to drive
//   - width: initial width in pixels
//   - height: initial height in pixels
//   - opts: functional options
//
// Returns:
//   - Manager: the configured surface manager
//   - error: an error if the size is invalid, the surface reports no formats, or configuration failed
func NewManagerWithTarget(target Target, width, height int, opts ...ManagerBuilderOption) (Manager, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(common.ErrInvalidArgument, "initial surface size %dx%d must be positive", width, height)
	}

	m := &surfaceManager{
		mu:     &sync.Mutex{},
		target: target,
		log:    logging.Component("surface"),
	}
	for _, opt := range opts {
		opt(m)
	}

	caps := target.Capabilities()
	if len(caps.Formats) == 0 {
		return nil, errors.New("surface reports no supported formats")
	}

	m.config = Config{
		Width:       uint32(width),
		Height:      uint32(height),
		Format:      selectFormat(caps.Formats),
		PresentMode: selectPresentMode(caps.PresentModes, m.presentMode),
		Usage:       wgpu.TextureUsageRenderAttachment,
		AlphaMode:   selectAlphaMode(caps.AlphaModes),
	}
	if err := target.Configure(m.config); err != nil {
		return nil, errors.Wrap(err, "configuring surface")
	}

	m.log.WithFields(logrus.Fields{
		"width":        width,
		"height":       height,
		"format":       m.config.Format.String(),
		"present_mode": m.config.PresentMode.String(),
	}).Info("surface configured")

	return m, nil
}

func (m *surfaceManager) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		m.log.WithFields(logrus.Fields{"width": width, "height": height}).Debug("ignoring non-positive resize")
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.config
	next.Width = uint32(width)
	next.Height = uint32(height)
	if err := m.target.Configure(next); err != nil {
		return errors.Wrapf(err, "reconfiguring surface at %dx%d", width, height)
	}
	m.config = next
	m.reconfigs++

	m.log.WithFields(logrus.Fields{"width": width, "height": height}).Debug("surface resized")
	return nil
}

func (m *surfaceManager) AcquireFrame() (*Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight {
		return nil, errors.New("previous frame not yet presented or discarded")
	}

	img, err := m.target.Acquire()
	switch Classify(err) {
	case AcquireSuccess:
		return m.newFrame(img), nil
	case AcquireStale:
		m.log.WithError(err).Debug("stale surface, reconfiguring and retrying once")
	case AcquireFatal:
		return nil, errors.Wrap(err, "acquiring surface image")
	default:
		return nil, errors.Wrap(err, "acquiring surface image, frame skipped")
	}

	if cerr := m.target.Configure(m.config); cerr != nil {
		return nil, errors.Wrap(cerr, "reconfiguring stale surface")
	}
	m.reconfigs++

	img, err = m.target.Acquire()
	switch Classify(err) {
	case AcquireSuccess:
		return m.newFrame(img), nil
	case AcquireStale:
		return nil, errors.Mark(errors.Wrap(err, "acquiring surface image after reconfigure"), ErrStaleAfterRetry)
	default:
		return nil, errors.Wrap(err, "acquiring surface image after reconfigure")
	}
}

func (m *surfaceManager) newFrame(img Image) *Frame {
	m.inFlight = true
	return &Frame{
		image:  img,
		Format: m.config.Format,
		Width:  m.config.Width,
		Height: m.config.Height,
	}
}

func (m *surfaceManager) Present(frame *Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.image == nil {
		return ErrNoFrame
	}
	err := m.target.Present()
	m.finish(frame)
	if err != nil {
		err = translateSurfaceError(err)
		if !IsFatal(err) {
			m.log.WithError(err).Warn("present failed")
		}
		return errors.Wrap(err, "presenting frame")
	}
	return nil
}

func (m *surfaceManager) Discard(frame *Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.image == nil {
		return
	}
	m.finish(frame)
}

func (m *surfaceManager) finish(frame *Frame) {
	frame.image.Release()
	frame.image = nil
	m.inFlight = false
}

func (m *surfaceManager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

func (m *surfaceManager) Format() wgpu.TextureFormat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config.Format
}

func (m *surfaceManager) Reconfigurations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconfigs
}

func (m *surfaceManager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.target != nil {
		m.target.Release()
		m.target = nil
	}
}

func selectFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if isSRGB(f) {
			return f
		}
	}
	return formats[0]
}

func isSRGB(f wgpu.TextureFormat) bool {
	switch f {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

func selectPresentMode(modes []wgpu.PresentMode, preferred *wgpu.PresentMode) wgpu.PresentMode {
	if preferred != nil {
		for _, mode := range modes {
			if mode == *preferred {
				return mode
			}
		}
	}
	if len(modes) > 0 {
		return modes[0]
	}
	// FIFO is the one mode every surface must support.
	return wgpu.PresentModeFifo
}

func selectAlphaMode(modes []wgpu.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	if len(modes) > 0 {
		return modes[0]
	}
	return wgpu.CompositeAlphaModeAuto
}
