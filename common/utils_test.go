package common

import "testing"

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Errorf("Coalesce(0, 0, 3, 4) = %d, want 3", got)
	}
	if got := Coalesce("", "vulkan"); got != "vulkan" {
		t.Errorf("Coalesce(\"\", \"vulkan\") = %q", got)
	}
	if got := Coalesce[int](); got != 0 {
		t.Errorf("Coalesce() = %d, want 0", got)
	}
}

func TestIsCloseKey(t *testing.T) {
	if !IsCloseKey(KeyEsc) || !IsCloseKey(KeyQ) {
		t.Error("Escape and Q should close the window")
	}
	if IsCloseKey(65) {
		t.Error("A should not close the window")
	}
}
