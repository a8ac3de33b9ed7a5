package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/coderr/internal/repo"
	pkgdb "github.com/Skotchmaster/coderr/pkg/db"
)

// coderrctl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer pkgdb.Close(db)

		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		if err := repo.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
		return nil
	},
}
