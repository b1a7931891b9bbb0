package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakeswenson/vector/internal/condition"
	"github.com/jakeswenson/vector/internal/core/config"
	"github.com/jakeswenson/vector/internal/event"
)

var (
	filterConditionsFile string
	filterName           string
	filterExplain        bool
)

// Lines longer than this are rejected rather than truncated.
const maxEventLine = 1024 * 1024

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter JSON-line log events from stdin through a condition",
	Long: `filter reads one JSON object per line from stdin, evaluates each as a log
event against the named condition, and writes passing lines to stdout.
With --explain, each failing event's failed predicates are written to
stderr.`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringVar(&filterConditionsFile, "conditions", "", "conditions file (YAML)")
	filterCmd.Flags().StringVar(&filterName, "name", "", "condition name (defaults to the only condition in the file)")
	filterCmd.Flags().BoolVar(&filterExplain, "explain", false, "report failed predicates for non-matching events on stderr")
}

func runFilter(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	path := filterConditionsFile
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

	block, err := pickBlock(blocks, filterName)
	if err != nil {
		return err
	}

	cond, err := condition.Build(block.Config, condition.NewRegistry(logger))
	if err != nil {
		return fmt.Errorf("condition '%s' failed to compile:\n%w", block.Name, err)
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	in.Buffer(make([]byte, 0, 64*1024), maxEventLine)
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	lineNo := 0
	for in.Scan() {
		lineNo++
		line := in.Bytes()
		if len(line) == 0 {
			continue
		}

		ev, err := event.LogFromJSON(line)
		if err != nil {
			logger.Warn("skipping undecodable event", "line", lineNo, "error", err)
			continue
		}

		if filterExplain {
			if err := cond.CheckWithContext(ev); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", lineNo, err)
				continue
			}
		} else if !cond.Check(ev) {
			continue
		}

		out.Write(line)
		out.WriteByte('\n')
	}
	return in.Err()
}

// pickBlock resolves the condition to run: an explicit name, or the single
// block when the file declares exactly one.
func pickBlock(blocks []condition.NamedConfig, name string) (condition.NamedConfig, error) {
	if name == "" {
		if len(blocks) == 1 {
			return blocks[0], nil
		}
		return condition.NamedConfig{}, fmt.Errorf("conditions file declares %d conditions, use --name", len(blocks))
	}
	for _, b := range blocks {
		if b.Name == name {
			return b, nil
		}
	}
	return condition.NamedConfig{}, fmt.Errorf("condition '%s' not found in conditions file", name)
}
