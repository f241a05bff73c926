package engine

import (
	"testing"

	"github.com/Carmen-Shannon/glix/engine/config"
)

func TestCursorClearColor(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float32
		w, h   int
		wantR  float64
		wantG  float64
		wantOK bool
	}{
		{"top left", 0, 0, 800, 600, 0, 1, true},
		{"bottom right", 800, 600, 800, 600, 1, 0, true},
		{"center", 400, 300, 800, 600, 0.5, 0.5, true},
		{"outside clamps", -100, 900, 800, 600, 0, 0, true},
		{"zero size", 10, 10, 0, 600, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := cursorClearColor(tt.x, tt.y, tt.w, tt.h)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if c.R != tt.wantR || c.G != tt.wantG {
				t.Errorf("color = (%v, %v), want (%v, %v)", c.R, c.G, tt.wantR, tt.wantG)
			}
			if c.A != 1 {
				t.Errorf("alpha = %v, want 1", c.A)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Window.Title = "custom"

	e := &engine{cfg: config.DefaultConfig()}
	WithConfig(cfg)(e)
	if e.cfg.Window.Title != "custom" {
		t.Errorf("title = %q, want custom", e.cfg.Window.Title)
	}

	WithConfig(nil)(e)
	if e.cfg != cfg {
		t.Error("WithConfig(nil) replaced the config")
	}

	WithProfiling(true)(e)
	if !e.cfg.Profiling.Enabled {
		t.Error("WithProfiling(true) did not enable profiling")
	}

	WithCursorClearColor(true)(e)
	if !e.cursorClear {
		t.Error("WithCursorClearColor(true) not applied")
	}
}

func TestQuitBeforeSetup(t *testing.T) {
	e := &engine{}
	e.Quit()
}
