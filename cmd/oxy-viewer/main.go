package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-orbit/engine/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli holds the flags and logger shared by every subcommand.
type cli struct {
	configPath string
	verbose    bool
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "oxy-viewer",
		Short: "Orbit viewer with an axis gizmo kept in sync with the camera",
		Long: `oxy-viewer opens a window with an orbit camera and a six-axis gizmo.

Clicking a gizmo handle (or pressing 1-6) animates the camera to look down that
axis; orbiting the camera by hand rotates the gizmo to match.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initLogger(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultFileName, "Path to the viewer config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newRunCmd(c))
	root.AddCommand(newHeadlessCmd(c))
	root.AddCommand(newConfigCmd(c))
	return root
}

// initLogger builds the production logger at the configured level. --verbose forces debug.
func (c *cli) initLogger(cmd *cobra.Command) error {
	level := zapcore.InfoLevel
	if cfg, err := config.LoadOrDefault(c.configPath); err == nil {
		if parsed, perr := zapcore.ParseLevel(cfg.LogLevel); perr == nil {
			level = parsed
		}
	}
	if c.verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

// loadConfig reads the config file, falling back to the defaults when it does not exist.
func (c *cli) loadConfig() (*config.ViewerConfig, error) {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.configPath, err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
