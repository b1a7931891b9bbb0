package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakeswenson/vector/internal/condition"
	"github.com/jakeswenson/vector/internal/core/config"
)

var checkConditionsFile string

var checkCmd = &cobra.Command{
	Use:   "check [NAME...]",
	Short: "Compile condition configurations and report every error",
	Long: `check compiles every condition block in a conditions file (or only the
named blocks) and prints the compiled predicates. A block with malformed
keys or incompatible arguments is reported with every failing rule, not
just the first.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkConditionsFile, "conditions", "", "conditions file (YAML)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	path := checkConditionsFile
	if path == "" {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		path = cfg.ConditionsPath
	}
	if path == "" {
		return fmt.Errorf("no conditions file (use --conditions or set pipeline.conditions_path)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read conditions file: %w", err)
	}

	blocks, err := condition.ParseConditions(data)
	if err != nil {
		return err
	}
	blocks = selectBlocks(blocks, args)
	if len(blocks) == 0 {
		return fmt.Errorf("no conditions found in %s", path)
	}

	registry := condition.NewRegistry(logger)
	failed := false
	for _, block := range blocks {
		cond, err := condition.Build(block.Config, registry)
		if err != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "condition '%s' failed to compile:\n%v\n", block.Name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "condition '%s': %d predicate(s)\n", block.Name, cond.Len())
		for _, name := range cond.Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}
	}

	if failed {
		return fmt.Errorf("one or more conditions failed to compile")
	}
	return nil
}

// selectBlocks filters parsed blocks to the requested names; empty selection
// keeps everything. Unknown names are an error at the caller via zero result.
func selectBlocks(blocks []condition.NamedConfig, names []string) []condition.NamedConfig {
	if len(names) == 0 {
		return blocks
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []condition.NamedConfig
	for _, b := range blocks {
		if want[b.Name] {
			out = append(out, b)
		}
	}
	return out
}
