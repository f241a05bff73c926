package surface_test

import (
	"testing"

	"github.com/Carmen-Shannon/glix/common"
	"github.com/Carmen-Shannon/glix/engine/surface"
	"github.com/Carmen-Shannon/glix/engine/surface/surfacetest"
	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

func newManager(t *testing.T, target *surfacetest.Target, opts ...surface.ManagerBuilderOption) surface.Manager {
	t.Helper()
	m, err := surface.NewManagerWithTarget(target, 800, 600, opts...)
	if err != nil {
		t.Fatalf("NewManagerWithTarget() error = %v", err)
	}
	return m
}

func TestNewManagerInitialConfig(t *testing.T) {
	target := surfacetest.New()
	m := newManager(t, target)

	cfg := m.Config()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Format != wgpu.TextureFormatBGRA8UnormSrgb {
		t.Errorf("format = %v, want the SRGB format", cfg.Format)
	}
	if cfg.PresentMode != wgpu.PresentModeFifo {
		t.Errorf("present mode = %v, want first supported (FIFO)", cfg.PresentMode)
	}
	if cfg.Usage != wgpu.TextureUsageRenderAttachment {
		t.Errorf("usage = %v, want render attachment", cfg.Usage)
	}
	if m.Format() != cfg.Format {
		t.Errorf("Format() = %v, want %v", m.Format(), cfg.Format)
	}
	if got := len(target.Configured()); got != 1 {
		t.Errorf("configure calls = %d, want 1", got)
	}
	if m.Reconfigurations() != 0 {
		t.Errorf("Reconfigurations() = %d, want 0", m.Reconfigurations())
	}
}

func TestNewManagerFormatFallback(t *testing.T) {
	target := surfacetest.New()
	target.Caps.Formats = []wgpu.TextureFormat{wgpu.TextureFormatRGBA16Float, wgpu.TextureFormatBGRA8Unorm}
	m := newManager(t, target)
	if m.Format() != wgpu.TextureFormatRGBA16Float {
		t.Errorf("format = %v, want first supported format", m.Format())
	}
}

func TestNewManagerPresentModePreference(t *testing.T) {
	tests := []struct {
		name      string
		preferred wgpu.PresentMode
		want      wgpu.PresentMode
	}{
		{"supported", wgpu.PresentModeImmediate, wgpu.PresentModeImmediate},
		{"unsupported falls back", wgpu.PresentModeMailbox, wgpu.PresentModeFifo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(t, surfacetest.New(), surface.WithPresentMode(tt.preferred))
			if got := m.Config().PresentMode; got != tt.want {
				t.Errorf("present mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewManagerErrors(t *testing.T) {
	if _, err := surface.NewManagerWithTarget(surfacetest.New(), 0, 600); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("zero width error = %v, want ErrInvalidArgument", err)
	}

	target := surfacetest.New()
	target.Caps.Formats = nil
	if _, err := surface.NewManagerWithTarget(target, 800, 600); err == nil {
		t.Error("no formats succeeded, want error")
	}

	target = surfacetest.New()
	target.ConfigureErr = errors.New("boom")
	if _, err := surface.NewManagerWithTarget(target, 800, 600); err == nil {
		t.Error("configure failure succeeded, want error")
	}
}

func TestResizeGuard(t *testing.T) {
	m := newManager(t, surfacetest.New())
	before := m.Config()

	for _, size := range [][2]int{{0, 600}, {800, 0}, {0, 0}, {-1, 100}, {100, -1}} {
		if err := m.Resize(size[0], size[1]); err != nil {
			t.Fatalf("Resize(%d, %d) error = %v", size[0], size[1], err)
		}
		if m.Config() != before {
			t.Fatalf("Resize(%d, %d) changed config to %+v", size[0], size[1], m.Config())
		}
	}
	if m.Reconfigurations() != 0 {
		t.Errorf("Reconfigurations() = %d, want 0", m.Reconfigurations())
	}
}

func TestResizeIdempotent(t *testing.T) {
	target := surfacetest.New()
	m := newManager(t, target)

	if err := m.Resize(1024, 768); err != nil {
		t.Fatal(err)
	}
	first := m.Config()
	if err := m.Resize(1024, 768); err != nil {
		t.Fatal(err)
	}
	if m.Config() != first {
		t.Errorf("second resize changed config: %+v vs %+v", m.Config(), first)
	}
	if m.Reconfigurations() != 2 {
		t.Errorf("Reconfigurations() = %d, want 2", m.Reconfigurations())
	}
	if got := len(target.Configured()); got != 3 {
		t.Errorf("configure calls = %d, want 3", got)
	}
}

func TestResizeZeroThenValid(t *testing.T) {
	m := newManager(t, surfacetest.New())

	if err := m.Resize(0, 0); err != nil {
		t.Fatal(err)
	}
	if cfg := m.Config(); cfg.Width != 800 || cfg.Height != 600 {
		t.Fatalf("after Resize(0, 0) size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if err := m.Resize(1024, 768); err != nil {
		t.Fatal(err)
	}
	if cfg := m.Config(); cfg.Width != 1024 || cfg.Height != 768 {
		t.Fatalf("after Resize(1024, 768) size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestResizeConfigureFailureKeepsConfig(t *testing.T) {
	target := surfacetest.New()
	m := newManager(t, target)
	before := m.Config()

	target.ConfigureErr = errors.New("rejected")
	if err := m.Resize(1024, 768); err == nil {
		t.Fatal("Resize() succeeded, want error")
	}
	if m.Config() != before {
		t.Errorf("failed resize changed config to %+v", m.Config())
	}
}

func TestAcquirePresent(t *testing.T) {
	target := surfacetest.New()
	m := newManager(t, target)

	frame, err := m.AcquireFrame()
	if err != nil {
		t.Fatalf("AcquireFrame() error = %v", err)
	}
	if frame.Width != 800 || frame.Height != 600 || frame.Format != m.Format() {
		t.Errorf("frame = %+v", frame)
	}
	if err := m.Present(frame); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if target.Presents() != 1 || target.Outstanding() != 0 {
		t.Errorf("presents = %d, outstanding = %d", target.Presents(), target.Outstanding())
	}
	if err := m.Present(frame); !errors.Is(err, surface.ErrNoFrame) {
		t.Errorf("second Present() error = %v, want ErrNoFrame", err)
	}
}

func TestAcquireWhileInFlight(t *testing.T) {
	m := newManager(t, surfacetest.New())
	frame, err := m.AcquireFrame()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AcquireFrame(); err == nil {
		t.Fatal("second AcquireFrame() before present succeeded, want error")
	}
	m.Discard(frame)
	if _, err := m.AcquireFrame(); err != nil {
		t.Fatalf("AcquireFrame() after Discard error = %v", err)
	}
}

func TestDiscardReleasesWithoutPresent(t *testing.T) {
	target := surfacetest.New()
	m := newManager(t, target)
	frame, err := m.AcquireFrame()
	if err != nil {
		t.Fatal(err)
	}
	m.Discard(frame)
	m.Discard(frame)
	if target.Presents() != 0 {
		t.Errorf("presents = %d, want 0", target.Presents())
	}
	if target.Outstanding() != 0 {
		t.Errorf("outstanding = %d, want 0", target.Outstanding())
	}
	if frame.View() != nil {
		t.Error("discarded frame still has a view")
	}
}

func TestAcquireStaleRetriesOnce(t *testing.T) {
	for _, stale := range []func() error{surfacetest.Lost, surfacetest.Outdated} {
		target := surfacetest.New()
		m := newManager(t, target)
		target.QueueAcquire(stale(), nil)

		frame, err := m.AcquireFrame()
		if err != nil {
			t.Fatalf("AcquireFrame() error = %v", err)
		}
		if frame == nil {
			t.Fatal("AcquireFrame() returned nil frame")
		}
		if m.Reconfigurations() != 1 {
			t.Errorf("Reconfigurations() = %d, want 1", m.Reconfigurations())
		}
		if target.Acquires() != 2 {
			t.Errorf("acquires = %d, want 2", target.Acquires())
		}
		if cfgs := target.Configured(); cfgs[len(cfgs)-1] != m.Config() {
			t.Errorf("retry configured %+v, want current config %+v", cfgs[len(cfgs)-1], m.Config())
		}
	}
}

func TestAcquireStaleTwice(t *testing.T) {
	target := surfacetest.New()
	m := newManager(t, target)
	target.QueueAcquire(surfacetest.Lost(), surfacetest.Lost(), nil)

	_, err := m.AcquireFrame()
	if !errors.Is(err, surface.ErrStaleAfterRetry) {
		t.Fatalf("AcquireFrame() error = %v, want ErrStaleAfterRetry", err)
	}
	if surface.IsFatal(err) {
		t.Error("stale after retry reported as fatal")
	}
	if target.Acquires() != 2 {
		t.Errorf("acquires = %d, want exactly 2", target.Acquires())
	}
	if m.Reconfigurations() != 1 {
		t.Errorf("Reconfigurations() = %d, want 1", m.Reconfigurations())
	}

	if _, err := m.AcquireFrame(); err != nil {
		t.Fatalf("next AcquireFrame() error = %v", err)
	}
}

func TestAcquireFatalAndSkipped(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantFatal bool
		sentinel  error
	}{
		{"out of memory", surfacetest.OutOfMemory(), true, surface.ErrOutOfMemory},
		{"timeout", surfacetest.Timeout(), false, surface.ErrSurfaceTimeout},
		{"unclassified", errors.New("weird"), false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := surfacetest.New()
			m := newManager(t, target)
			target.QueueAcquire(tt.err)

			_, err := m.AcquireFrame()
			if err == nil {
				t.Fatal("AcquireFrame() succeeded, want error")
			}
			if surface.IsFatal(err) != tt.wantFatal {
				t.Errorf("IsFatal = %v, want %v", surface.IsFatal(err), tt.wantFatal)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
			if target.Acquires() != 1 || m.Reconfigurations() != 0 {
				t.Errorf("acquires = %d, reconfigs = %d; want 1, 0", target.Acquires(), m.Reconfigurations())
			}
		})
	}
}

func TestPresentErrors(t *testing.T) {
	target := surfacetest.New()
	m := newManager(t, target)

	target.PresentErr = errors.New("present: out of memory")
	frame, err := m.AcquireFrame()
	if err != nil {
		t.Fatal(err)
	}
	err = m.Present(frame)
	if !surface.IsFatal(err) {
		t.Errorf("Present() error = %v, want fatal", err)
	}

	target.PresentErr = errors.New("present: something odd")
	frame, err = m.AcquireFrame()
	if err != nil {
		t.Fatal(err)
	}
	err = m.Present(frame)
	if err == nil || surface.IsFatal(err) {
		t.Errorf("Present() error = %v, want non-fatal error", err)
	}
	if target.Outstanding() != 0 {
		t.Errorf("outstanding = %d after failed presents", target.Outstanding())
	}
}

func TestRelease(t *testing.T) {
	target := surfacetest.New()
	m := newManager(t, target)
	m.Release()
	m.Release()
	if !target.Released() {
		t.Error("target not released")
	}
}

func TestParsePresentMode(t *testing.T) {
	tests := []struct {
		in      string
		want    wgpu.PresentMode
		wantOK  bool
		wantErr bool
	}{
		{"auto", 0, false, false},
		{"", 0, false, false},
		{"vsync", wgpu.PresentModeFifo, true, false},
		{"Uncapped", wgpu.PresentModeImmediate, true, false},
		{"mailbox", wgpu.PresentModeMailbox, true, false},
		{"adaptive", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok, err := surface.ParsePresentMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePresentMode(%q) error = %v", tt.in, err)
			}
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("ParsePresentMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
