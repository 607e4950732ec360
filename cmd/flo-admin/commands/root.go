package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/config"
	"github.com/flo-mobility/admin-console/internal/observability"
)

var (
	cfg      *config.Config
	logger   *zap.Logger
	logLevel string
)

// Execute runs the console CLI. Without a subcommand it serves the API.
func Execute() error {
	root := &cobra.Command{
		Use:           "flo-admin",
		Short:         "Flo admin console API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logLevel != "" {
				loaded.Logger.Level = logLevel
			}
			cfg = loaded

			logger, err = observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(serveCmd(), migrateCmd())
	return root.Execute()
}
