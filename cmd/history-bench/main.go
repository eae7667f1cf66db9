// Command history-bench drives an editor session with randomized edits,
// undo and redo, then prints a timing report.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/plus3/scenedit/editor"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := Options{}
	var logLevel string

	cmd := &cobra.Command{
		Use:           "history-bench",
		Short:         "Stress the undo history with randomized scene edits",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Ops <= 0 && opts.Duration <= 0 {
				return eris.New("one of --ops or --duration must be positive")
			}
			if opts.Seed == 0 {
				opts.Seed = uint64(time.Now().UnixNano())
			}

			cfg := editor.DefaultConfig()
			cfg.LogLevel = logLevel
			cfg.LogPretty = true
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := editor.NewLogger(cfg, os.Stderr)

			logger.Info().Int("entities", opts.Entities).Uint64("seed", opts.Seed).Msg("starting history benchmark")
			report, err := Run(cmd.Context(), opts, logger)
			if err != nil {
				return err
			}
			logger.Info().Int("operations", report.Operations).Dur("elapsed", report.TotalTime).Msg("benchmark finished")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n--- History Benchmark Report ---")
			if err := report.Generate(out); err != nil {
				return eris.Wrap(err, "failed to generate report")
			}
			fmt.Fprintln(out, "--- End of Report ---")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.Ops, "ops", 10000, "Number of operations to run; 0 runs until --duration elapses.")
	flags.DurationVar(&opts.Duration, "duration", 0, "Maximum run time; 0 means no limit.")
	flags.IntVar(&opts.Entities, "entities", 100, "Entities created before the run.")
	flags.IntVar(&opts.Capacity, "capacity", editor.DefaultConfig().HistoryCapacity, "History capacity.")
	flags.IntVar(&opts.DragSteps, "drag-steps", 8, "Value changes per drag; each drag collapses into one history entry.")
	flags.Uint64Var(&opts.Seed, "seed", 0, "Random seed; 0 picks one from the clock.")
	flags.BoolVar(&opts.Rewind, "rewind", true, "Undo every recorded command after the run.")
	flags.BoolVar(&opts.GCMetrics, "gc-pause-metrics", false, "Include GC pause totals in the report.")
	flags.StringVar(&logLevel, "log-level", "info", "zerolog level for progress output.")
	return cmd
}
