package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/threedepict/tomo/engine"
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/statefile"
)

func newRefreshCmd(state *cliState) *cobra.Command {
	var untrusted bool
	cmd := &cobra.Command{
		Use:   "refresh <state-file>",
		Short: "Load a state file and refresh its filter tree.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fatalf("tomo refresh: %w", err)
			}
			defer f.Close()

			res, err := statefile.Load(f, statefile.ReadOptions{
				Untrusted: untrusted || (state.cfg != nil && state.cfg.UntrustedLoads),
				BaseDir:   filepath.Dir(path),
			})
			if err != nil {
				return fatalf("tomo refresh: %w", err)
			}
			if res.StrippedHazardous > 0 {
				state.log.Warnf("stripped %d hazardous filter(s) from untrusted state file", res.StrippedHazardous)
			}
			if res.VersionWarning != "" {
				state.log.Warn(res.VersionWarning)
			}

			eng := engine.New()
			progress := filter.NewProgress()
			var abort filter.AbortFlag
			result, err := eng.Refresh(res.State.TreeState().Tree(), progress, &abort)
			if err != nil {
				return fatalf("tomo refresh: %w", err)
			}

			for i, outputs := range result.RootOutputs {
				fmt.Printf("root %d: %d output stream(s)\n", i, len(outputs))
				for _, s := range outputs {
					fmt.Printf("  %s\n", s.Kind())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&untrusted, "untrusted", false, "strip hazardous filters (e.g. ExternalScript) instead of loading them")
	return cmd
}
