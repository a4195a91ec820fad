package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gaussproc/config"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "gaussproc",
	Short:         "Gaussian process regression",
	Long:          `gaussproc fits Gaussian process regression models, predicts with uncertainty and draws posterior samples.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides the config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads --config (or the defaults) and installs the logger.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := log.SetupLogger(cfg.Logging.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}
