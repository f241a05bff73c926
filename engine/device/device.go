// Package device owns the GPU session: the instance, the adapter, the logical device and its queue.
// A Context is created once at startup, passed explicitly to every component that needs GPU access,
// and released once at shutdown.
package device

import (
	"runtime"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/glix/engine/logging"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoAdapter is returned when no adapter satisfies the requested backend, power preference and surface.
	ErrNoAdapter = errors.New("no compatible GPU adapter")

	// ErrNoDevice is returned when the adapter refuses to open a logical device.
	ErrNoDevice = errors.New("GPU device request failed")

	// ErrUnknownBackend is returned by ParseBackend for names it does not recognize.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrUnknownPowerPreference is returned by ParsePowerPreference for names it does not recognize.
	ErrUnknownPowerPreference = errors.New("unknown power preference")
)

// Context is the GPU session shared by the surface manager and the renderer.
// Adapter, device and queue are created together and are mutually compatible for the life of the Context.
type Context struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// hint is the surface created before the adapter when a surface hint was given.
	// It is handed out by the first matching CreateSurface call.
	hint     *wgpu.Surface
	hintDesc *wgpu.SurfaceDescriptor
	hintUsed bool

	backend         wgpu.InstanceBackend
	powerPreference wgpu.PowerPreference
	forceFallback   bool
	label           string

	sessionID uuid.UUID
	log       *logrus.Entry
	released  bool
}

// New creates the GPU session.
// One explicit backend is requested, the adapter is chosen by power preference and, when a surface hint
// is present, must be able to present to that surface. The device is opened with default limits and
// no optional features.
//
// Parameters:
//   - opts: functional options to configure the backend, power preference and surface hint
//
// Returns:
//   - *Context: the ready session
//   - error: an error marked ErrNoAdapter or ErrNoDevice if the session could not be opened
func New(opts ...ContextBuilderOption) (*Context, error) {
	runtime.LockOSThread()

	c := &Context{
		mu:              &sync.Mutex{},
		backend:         wgpu.InstanceBackendVulkan,
		powerPreference: wgpu.PowerPreferenceHighPerformance,
		label:           "glix device",
		sessionID:       uuid.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logging.Component("device").WithField("session", c.sessionID.String())

	c.instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: c.backend,
	})
	if c.instance == nil {
		return nil, errors.Mark(errors.New("failed to create GPU instance"), ErrNoAdapter)
	}

	if c.hintDesc != nil {
		c.hint = c.instance.CreateSurface(c.hintDesc)
	}

	adapter, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: c.forceFallback,
		CompatibleSurface:    c.hint,
		PowerPreference:      c.powerPreference,
	})
	if err != nil || adapter == nil {
		c.Release()
		return nil, errors.Mark(errors.Wrapf(orNil(err), "requesting adapter for backend %s", BackendName(c.backend)), ErrNoAdapter)
	}
	c.adapter = adapter

	d, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: c.label,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil || d == nil {
		c.Release()
		return nil, errors.Mark(errors.Wrap(orNil(err), "requesting device"), ErrNoDevice)
	}
	c.device = d
	c.queue = d.GetQueue()

	c.log.WithFields(logrus.Fields{
		"backend": BackendName(c.backend),
		"surface": c.hint != nil,
	}).Info("GPU session opened")

	return c, nil
}

// CreateSurface returns a presentable surface for the given descriptor.
// The first call with the hint descriptor returns the surface created during New, so the adapter is
// known to be compatible with it. Any other descriptor creates a new surface from the instance.
//
// Parameters:
//   - desc: the platform surface descriptor, usually from the window
//
// Returns:
//   - *wgpu.Surface: the surface
//   - error: an error if the context was released or the surface could not be created
func (c *Context) CreateSurface(desc *wgpu.SurfaceDescriptor) (*wgpu.Surface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil, errors.New("device context already released")
	}
	if desc == nil {
		return nil, errors.New("nil surface descriptor")
	}
	if c.hint != nil && !c.hintUsed && desc == c.hintDesc {
		c.hintUsed = true
		return c.hint, nil
	}
	s := c.instance.CreateSurface(desc)
	if s == nil {
		return nil, errors.New("failed to create surface")
	}
	return s, nil
}

func (c *Context) Instance() *wgpu.Instance {
	return c.instance
}

func (c *Context) Adapter() *wgpu.Adapter {
	return c.adapter
}

func (c *Context) Device() *wgpu.Device {
	return c.device
}

func (c *Context) Queue() *wgpu.Queue {
	return c.queue
}

// SessionID identifies this GPU session in logs.
func (c *Context) SessionID() uuid.UUID {
	return c.sessionID
}

// Backend returns the backend the instance was created with.
func (c *Context) Backend() wgpu.InstanceBackend {
	return c.backend
}

// Release frees the queue, device, adapter, unused hint surface and instance in reverse creation order.
// It is safe to call more than once.
func (c *Context) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return
	}
	c.released = true

	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	// A hint surface that was handed out belongs to its surface manager.
	if c.hint != nil && !c.hintUsed {
		c.hint.Release()
	}
	c.hint = nil
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
	if c.log != nil {
		c.log.Debug("GPU session released")
	}
}

// ParseBackend maps a configuration name to a single instance backend.
//
// Parameters:
//   - name: one of vulkan, metal, dx12 or gl (case-insensitive)
//
// Returns:
//   - wgpu.InstanceBackend: the backend flag
//   - error: ErrUnknownBackend for any other name
func ParseBackend(name string) (wgpu.InstanceBackend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vulkan", "vk":
		return wgpu.InstanceBackendVulkan, nil
	case "metal":
		return wgpu.InstanceBackendMetal, nil
	case "dx12", "d3d12":
		return wgpu.InstanceBackendDX12, nil
	case "gl", "opengl", "gles":
		return wgpu.InstanceBackendGL, nil
	default:
		return 0, errors.Wrapf(ErrUnknownBackend, "%q", name)
	}
}

// BackendName is the inverse of ParseBackend, used for logging.
func BackendName(b wgpu.InstanceBackend) string {
	switch b {
	case wgpu.InstanceBackendVulkan:
		return "vulkan"
	case wgpu.InstanceBackendMetal:
		return "metal"
	case wgpu.InstanceBackendDX12:
		return "dx12"
	case wgpu.InstanceBackendGL:
		return "gl"
	default:
		return "unknown"
	}
}

// ParsePowerPreference maps a configuration name to an adapter power preference.
//
// Parameters:
//   - name: high-performance or low-power (case-insensitive)
//
// Returns:
//   - wgpu.PowerPreference: the preference
//   - error: ErrUnknownPowerPreference for any other name
func ParsePowerPreference(name string) (wgpu.PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "high-performance", "high", "performance":
		return wgpu.PowerPreferenceHighPerformance, nil
	case "low-power", "low":
		return wgpu.PowerPreferenceLowPower, nil
	default:
		return 0, errors.Wrapf(ErrUnknownPowerPreference, "%q", name)
	}
}

func orNil(err error) error {
	if err == nil {
		return errors.New("no result")
	}
	return err
}
