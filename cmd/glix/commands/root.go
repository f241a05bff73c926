// Package commands holds the glix command line.
package commands

import (
	"github.com/Carmen-Shannon/glix/engine"
	"github.com/Carmen-Shannon/glix/engine/config"
	"github.com/Carmen-Shannon/glix/engine/logging"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	cursorColor bool

	// settings collects flags, environment and the config file for one invocation.
	settings = viper.New()
)

// rootCmd opens a window and renders the triangle until the window closes.
var rootCmd = &cobra.Command{
	Use:   "glix",
	Short: "Render a triangle through WebGPU",
	Long: `glix opens a window, creates a WebGPU device on the configured backend and renders
a single triangle every frame until the window is closed or Escape / Q is pressed.

Settings come from flags, GLIX_ environment variables and $HOME/.glix/config.yaml.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEngine,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.Get().WithError(err).Error("glix exited with error")
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.glix/config.yaml)")
	flags.Int("width", 0, "initial window width in pixels")
	flags.Int("height", 0, "initial window height in pixels")
	flags.String("present-mode", "", "present mode: auto, vsync, uncapped or mailbox")
	flags.String("backend", "", "GPU backend: vulkan, metal, dx12 or gl")
	flags.String("log-level", "", "log level: trace, debug, info, warn or error")
	flags.Bool("profile", false, "log frame statistics every second")
	rootCmd.Flags().BoolVar(&cursorColor, "cursor-color", false, "make the clear color follow the cursor")

	bind := map[string]string{
		"window.width":          "width",
		"window.height":         "height",
		"renderer.present_mode": "present-mode",
		"renderer.backend":      "backend",
		"logging.level":         "log-level",
		"profiling.enabled":     "profile",
	}
	for key, flag := range bind {
		if err := settings.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// loadConfig resolves the configuration from defaults, file, environment and flags.
func loadConfig() (*config.Config, error) {
	return config.LoadWith(settings, cfgFile)
}

func runEngine(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.Logging.Level, cfg.Logging.File, cfg.Logging.Console); err != nil {
		return errors.Wrap(err, "initializing logging")
	}
	if used := settings.ConfigFileUsed(); used != "" {
		logging.Get().WithField("file", used).Debug("using config file")
	}

	e, err := engine.NewEngine(
		engine.WithConfig(cfg),
		engine.WithCursorClearColor(cursorColor),
	)
	if err != nil {
		return err
	}
	return e.Run()
}
