// Package config loads engine settings from defaults, an optional YAML file, and GLIX_ environment variables.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/glix/common"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config is the complete engine configuration.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Renderer  RendererConfig  `mapstructure:"renderer"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Profiling ProfilingConfig `mapstructure:"profiling"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// RendererConfig holds the GPU session settings.
type RendererConfig struct {
	// Backend is the single explicit backend to request: vulkan, metal, dx12 or gl.
	Backend string `mapstructure:"backend"`
	// PowerPreference is high-performance or low-power.
	PowerPreference string `mapstructure:"power_preference"`
	// PresentMode is auto (first supported), vsync, uncapped or mailbox.
	PresentMode string `mapstructure:"present_mode"`
	// Shader is the name of the WGSL asset holding vs_main and fs_main.
	Shader string `mapstructure:"shader"`
	// ClearColor is the RGBA clear color of the render pass.
	ClearColor []float64 `mapstructure:"clear_color"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// ProfilingConfig toggles the frame profiler.
type ProfilingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var (
	validBackends         = []string{"vulkan", "metal", "dx12", "gl"}
	validPowerPreferences = []string{"high-performance", "low-power"}
	validPresentModes     = []string{"auto", "vsync", "uncapped", "mailbox"}
	validLevels           = []string{"trace", "debug", "info", "warn", "error"}
)

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "glix",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			Backend:         "vulkan",
			PowerPreference: "high-performance",
			PresentMode:     "auto",
			Shader:          "glix",
			ClearColor:      []float64{0, 0, 0, 1},
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Load loads configuration from file, environment, and defaults.
// An empty cfgFile searches $HOME/.glix/config.yaml and ./config.yaml; a missing file is not an error.
//
// Parameters:
//   - cfgFile: explicit config file path, or empty to search the default locations
//
// Returns:
//   - *Config: the loaded and validated configuration
//   - error: an error if the file could not be read or the result is invalid
func Load(cfgFile string) (*Config, error) {
	return LoadWith(viper.New(), cfgFile)
}

// LoadWith is Load against a caller-provided viper instance, so command line flags bound to it take part.
//
// Parameters:
//   - v: the viper instance to read from
//   - cfgFile: explicit config file path, or empty to search the default locations
//
// Returns:
//   - *Config: the loaded and validated configuration
//   - error: an error if the file could not be read or the result is invalid
func LoadWith(v *viper.Viper, cfgFile string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".glix"))
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GLIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	cfg.Logging.File = expandPath(cfg.Logging.File)
	cfg.Window.Title = common.Coalesce(cfg.Window.Title, DefaultConfig().Window.Title)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if !slices.Contains(validBackends, strings.ToLower(c.Renderer.Backend)) {
		return errors.Newf("renderer.backend must be one of: %v", validBackends)
	}
	if !slices.Contains(validPowerPreferences, strings.ToLower(c.Renderer.PowerPreference)) {
		return errors.Newf("renderer.power_preference must be one of: %v", validPowerPreferences)
	}
	if !slices.Contains(validPresentModes, strings.ToLower(c.Renderer.PresentMode)) {
		return errors.Newf("renderer.present_mode must be one of: %v", validPresentModes)
	}
	if c.Renderer.Shader == "" {
		return errors.New("renderer.shader must not be empty")
	}
	if len(c.Renderer.ClearColor) != 4 {
		return errors.Newf("renderer.clear_color must have 4 components, got %d", len(c.Renderer.ClearColor))
	}
	if !slices.Contains(validLevels, strings.ToLower(c.Logging.Level)) {
		return errors.Newf("logging.level must be one of: %v", validLevels)
	}
	return nil
}

// ClearColorRGBA returns the clear color as a fixed array.
func (c *Config) ClearColorRGBA() [4]float64 {
	var rgba [4]float64
	copy(rgba[:], c.Renderer.ClearColor)
	return rgba
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("window.title", cfg.Window.Title)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("renderer.backend", cfg.Renderer.Backend)
	v.SetDefault("renderer.power_preference", cfg.Renderer.PowerPreference)
	v.SetDefault("renderer.present_mode", cfg.Renderer.PresentMode)
	v.SetDefault("renderer.shader", cfg.Renderer.Shader)
	v.SetDefault("renderer.clear_color", cfg.Renderer.ClearColor)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.console", cfg.Logging.Console)
	v.SetDefault("profiling.enabled", cfg.Profiling.Enabled)
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	return os.ExpandEnv(path)
}
