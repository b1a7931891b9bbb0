package cmd

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/jakeswenson/vector/internal/condition"
	"github.com/jakeswenson/vector/internal/core/db"
	"github.com/jakeswenson/vector/internal/core/store"
)

var conditionsPutFile string

var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "Manage the persistent condition registry",
}

var conditionsPutCmd = &cobra.Command{
	Use:   "put NAME",
	Short: "Compile and store a condition from a conditions file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConditionsPut,
}

var conditionsGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print a stored condition's predicates",
	Args:  cobra.ExactArgs(1),
	RunE:  runConditionsGet,
}

var conditionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored conditions",
	Args:  cobra.NoArgs,
	RunE:  runConditionsList,
}

var conditionsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a stored condition",
	Args:  cobra.ExactArgs(1),
	RunE:  runConditionsDelete,
}

func init() {
	rootCmd.AddCommand(conditionsCmd)
	conditionsCmd.AddCommand(conditionsPutCmd, conditionsGetCmd, conditionsListCmd, conditionsDeleteCmd)
	conditionsPutCmd.Flags().StringVar(&conditionsPutFile, "file", "", "conditions file containing the named block (YAML)")
	conditionsPutCmd.MarkFlagRequired("file")
}

// openStore opens the registry database from --db-url.
func openStore() (*store.Store, *sqlx.DB, error) {
	if dbURL == "" {
		return nil, nil, fmt.Errorf("--db-url required")
	}
	database, err := db.Open(dbURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	s, err := store.New(database)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return s, database, nil
}

func runConditionsPut(cmd *cobra.Command, args []string) error {
	name := args[0]
	logger := newLogger()

	data, err := os.ReadFile(conditionsPutFile)
	if err != nil {
		return fmt.Errorf("failed to read conditions file: %w", err)
	}
	blocks, err := condition.ParseConditions(data)
	if err != nil {
		return err
	}

	var cfg *condition.Config
	for _, b := range blocks {
		if b.Name == name {
			cfg = b.Config
			break
		}
	}
	if cfg == nil {
		return fmt.Errorf("condition '%s' not found in %s", name, conditionsPutFile)
	}

	// Compile before persisting so only valid configurations are stored
	if _, err := condition.Build(cfg, condition.NewRegistry(logger)); err != nil {
		return fmt.Errorf("condition '%s' failed to compile:\n%w", name, err)
	}

	s, database, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := s.Put(name, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored condition '%s' (%s)\n", name, id)
	return nil
}

func runConditionsGet(cmd *cobra.Command, args []string) error {
	name := args[0]
	logger := newLogger()

	s, database, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	cfg, err := s.Get(name)
	if err != nil {
		return err
	}

	cond, err := condition.Build(cfg, condition.NewRegistry(logger))
	if err != nil {
		return fmt.Errorf("stored condition '%s' no longer compiles:\n%w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "condition '%s': %d predicate(s)\n", name, cond.Len())
	for _, n := range cond.Names() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", n)
	}
	return nil
}

func runConditionsList(cmd *cobra.Command, args []string) error {
	s, database, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := s.List()
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Name, r.ID, r.CreatedAt)
	}
	return nil
}

func runConditionsDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	s, database, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := s.Delete(name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted condition '%s'\n", name)
	return nil
}
