package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "glix v"+Version) {
		t.Errorf("output = %q, want version line", buf.String())
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	flags := rootCmd.PersistentFlags()
	for name, value := range map[string]string{
		"width":        "1024",
		"height":       "768",
		"present-mode": "vsync",
		"backend":      "gl",
		"log-level":    "debug",
		"profile":      "true",
	} {
		if err := flags.Set(name, value); err != nil {
			t.Fatalf("Set(%s) error = %v", name, err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("size = %dx%d, want 1024x768", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Renderer.PresentMode != "vsync" || cfg.Renderer.Backend != "gl" {
		t.Errorf("renderer = %+v", cfg.Renderer)
	}
	if cfg.Logging.Level != "debug" || !cfg.Profiling.Enabled {
		t.Errorf("logging level = %q, profiling = %v", cfg.Logging.Level, cfg.Profiling.Enabled)
	}
	if cfg.Window.Title != "glix" {
		t.Errorf("title = %q, want default", cfg.Window.Title)
	}
}
