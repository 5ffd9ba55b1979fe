package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/simple-installer/internal/config"
	"github.com/oshokin/simple-installer/internal/logger"
	"github.com/oshokin/simple-installer/internal/service/setup"
	"github.com/oshokin/simple-installer/internal/version"
)

var (
	// configPath to the manifest YAML file.
	configPath string
	// logLevel is the minimum level of printed messages.
	logLevel string
	// reportPath overrides the manifest report file.
	reportPath string
	// keepWorkingFolder keeps downloaded artifacts after a successful run.
	keepWorkingFolder bool

	// rootCmd installs or updates every package listed in the manifest.
	rootCmd = &cobra.Command{
		Use:   "simple-installer",
		Short: "Install or update the packages listed in a manifest",
		Long: "simple-installer checks every package of the manifest, runs its update routine " +
			"when the package is already present, and otherwise installs it, downloading the " +
			"installer first when the package has a link.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			defer logger.Sync()

			options := &setup.Options{
				ConfigPath:        configPath,
				KeepWorkingFolder: keepWorkingFolder,
				ReportPath:        reportPath,
			}

			return setup.Run(ctx, options)
		},
	}
)

// Execute runs the simple-installer CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to the manifest file")
	flags.StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn or error")

	rootCmd.Flags().StringVar(&reportPath, "report", "", "write the run report to this file (overrides report_file)")
	rootCmd.Flags().BoolVar(&keepWorkingFolder, "keep-working-folder", false, "keep downloaded artifacts after a successful run")
}
