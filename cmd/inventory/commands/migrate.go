package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// migrateCmd applies the schema and bootstraps the built-in accounts
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the schema and bootstrap the built-in accounts",
	Long: `Create or update the relational schema, reconcile the permission catalog
and create the administrator (and, with SEED_SELLER=true, the seller) when
missing. Existing accounts and passwords are left untouched, so the command
can be run on every deploy.

ADMIN_PASSWORD must be set the first time, while the administrator does not
exist yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func runMigrate(ctx context.Context) error {
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.migrate(ctx); err != nil {
		return err
	}
	a.log.Info().Msg("schema migrated and accounts bootstrapped")
	return nil
}
