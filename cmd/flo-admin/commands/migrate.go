package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flo-mobility/admin-console/internal/persistence"
)

func migrateCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the audit log migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				names, err := persistence.MigrationNames()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			pg, err := persistence.NewPostgres(cmd.Context(), cfg.Postgres, logger)
			if err != nil {
				return err
			}
			defer pg.Close()
			if pg.PoolHandle() == nil {
				return errors.New("POSTGRES_DSN is required to migrate")
			}
			return persistence.RunMigrations(cmd.Context(), pg.PoolHandle(), logger)
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print embedded migrations without applying them")
	return cmd
}
