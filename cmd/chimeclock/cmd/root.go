package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"clock.raspi/chimeclock/internal/app"
	"clock.raspi/chimeclock/internal/config"
	"clock.raspi/chimeclock/internal/logger"
	"clock.raspi/chimeclock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured logging level.
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "chimeclock",
		Short: "Run the chiming alarm clock daemon.",
		Long: `Keeps wall-clock time, strikes the hour and rings the configured alarm
through the buzzer, while watching the rotary minute-adjust input, the
volume potentiometer and the stop button.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			level, _ := logger.ParseLevel(cfg.LogLevel)
			log := logger.New(level)
			defer log.Sync() //nolint:errcheck

			return app.Run(ctx, cfg, log)
		},
	}
)

// Execute runs the chimeclock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (defaults apply when empty)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn, error")
}
