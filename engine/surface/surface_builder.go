package surface

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ManagerBuilderOption is a functional option for configuring a surface manager.
// Use the With* functions to create options.
type ManagerBuilderOption func(m *surfaceManager)

// WithPresentMode sets the preferred present mode. It is used only when the surface supports it;
// otherwise the first supported mode is chosen.
//
// Parameters:
//   - mode: the preferred present mode
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithPresentMode(mode wgpu.PresentMode) ManagerBuilderOption {
	return func(m *surfaceManager) {
		m.presentMode = &mode
	}
}

// ParsePresentMode maps a configuration name to a present mode preference.
// "auto" returns ok=false, meaning no preference.
//
// Parameters:
//   - name: auto, vsync, uncapped or mailbox
//
// Returns:
//   - wgpu.PresentMode: the mode
//   - bool: false when the name expresses no preference
//   - error: an error for unknown names
func ParsePresentMode(name string) (wgpu.PresentMode, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return 0, false, nil
	case "vsync", "fifo":
		return wgpu.PresentModeFifo, true, nil
	case "uncapped", "immediate":
		return wgpu.PresentModeImmediate, true, nil
	case "mailbox":
		return wgpu.PresentModeMailbox, true, nil
	default:
		return 0, false, errors.Newf("unknown present mode %q", name)
	}
}
