package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakeswenson/vector/internal/core/db"
)

var migrateStatus bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply condition registry migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "report migration status without applying")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if dbURL == "" {
		return fmt.Errorf("--db-url required")
	}
	database, err := db.Open(dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if migrateStatus {
		statuses, err := db.MigrateStatus(database)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, state)
		}
		return nil
	}

	if err := db.MigrateUp(database); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
