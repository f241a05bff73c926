package surface

import (
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrSurfaceLost means the surface must be reconfigured before it can produce images again.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window and must be reconfigured.
	ErrSurfaceOutdated = errors.New("surface outdated")

	// ErrSurfaceTimeout means no image became available in time. The frame is skipped.
	ErrSurfaceTimeout = errors.New("surface acquire timed out")

	// ErrOutOfMemory is a terminal allocation failure reported by the surface or the device.
	ErrOutOfMemory = errors.New("GPU out of memory")

	// ErrDeviceLost is a terminal loss of the logical device.
	ErrDeviceLost = errors.New("GPU device lost")

	// ErrStaleAfterRetry marks an acquisition that was still stale after one reconfigure and retry.
	ErrStaleAfterRetry = errors.New("surface still stale after reconfigure")

	// ErrNoFrame is returned by Present when given a nil or already finished frame.
	ErrNoFrame = errors.New("no acquired frame")
)

// AcquireStatus is the tagged outcome of a single acquisition attempt.
type AcquireStatus int

const (
	// AcquireSuccess means an image was acquired.
	AcquireSuccess AcquireStatus = iota

	// AcquireStale means the surface is lost or outdated. Reconfigure and retry once.
	AcquireStale

	// AcquireFatal means the failure is terminal for the session.
	AcquireFatal

	// AcquireSkipped means the failure only affects this frame.
	AcquireSkipped
)

func (s AcquireStatus) String() string {
	switch s {
	case AcquireSuccess:
		return "success"
	case AcquireStale:
		return "stale"
	case AcquireFatal:
		return "fatal"
	case AcquireSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Classify maps an acquisition error to its AcquireStatus.
//
// Parameters:
//   - err: the error from Target.Acquire, or nil
//
// Returns:
//   - AcquireStatus: the tag callers branch on
func Classify(err error) AcquireStatus {
	switch {
	case err == nil:
		return AcquireSuccess
	case errors.Is(err, ErrOutOfMemory), errors.Is(err, ErrDeviceLost):
		return AcquireFatal
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrSurfaceOutdated):
		return AcquireStale
	default:
		return AcquireSkipped
	}
}

// IsFatal reports whether err ends the rendering session.
func IsFatal(err error) bool {
	return err != nil && Classify(err) == AcquireFatal
}

// Capabilities lists what a surface supports on the current adapter, in preference order.
type Capabilities struct {
	Formats      []wgpu.TextureFormat
	PresentModes []wgpu.PresentMode
	AlphaModes   []wgpu.CompositeAlphaMode
}

// Image is one acquired presentable image.
type Image interface {
	// View returns the render attachment view of the image.
	View() *wgpu.TextureView

	// Release frees the image and its view.
	Release()
}

// Target is the platform surface a Manager drives.
// Acquire and Present return errors marked with the sentinels above so Classify can tag them.
type Target interface {
	Capabilities() Capabilities
	Configure(cfg Config) error
	Acquire() (Image, error)
	Present() error
	Release()
}
