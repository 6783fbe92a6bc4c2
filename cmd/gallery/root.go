package main

import (
	"log/slog"
	"os"

	"github.com/sir_venger/s3_gallery/internal/logging"
	"github.com/spf13/cobra"
)

// rootCmd без подкоманды ведёт себя как serve.
var rootCmd = &cobra.Command{
	Use:           "gallery",
	Short:         "Image upload proxy and gallery in front of an S3-backed storage API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func Execute() {
	slog.SetDefault(logging.New())
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to execute command", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to YAML config (default $CONFIG_PATH or ./config.yaml)")
}
