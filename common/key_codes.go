package common

// Virtual key codes for the keys the window reacts to.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyQ   = 81  // Q key (ASCII)
	KeyEsc = 256 // Escape key (GLFW)
)

// IsCloseKey reports whether the key code should request the window to close.
//
// Parameters:
//   - keyCode: the virtual key code of the pressed key
//
// Returns:
//   - bool: true for Escape and Q
func IsCloseKey(keyCode uint32) bool {
	return keyCode == KeyEsc || keyCode == KeyQ
}
