package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/threedepict/tomo/statefile"
)

func newValidateStateCmd(state *cliState) *cobra.Command {
	var untrusted bool
	cmd := &cobra.Command{
		Use:   "validate-state <state-file>",
		Short: "Check that a state file parses and its filter tree is well formed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fatalf("tomo validate-state: %w", err)
			}
			defer f.Close()

			res, err := statefile.Load(f, statefile.ReadOptions{
				Untrusted: untrusted,
				BaseDir:   filepath.Dir(path),
			})
			if err != nil {
				fmt.Printf("invalid: %v\n", err)
				return err
			}
			fmt.Printf("valid: %d root filter(s), %d camera(s), %d stash(es)\n",
				len(res.State.TreeState().Tree().Roots), len(res.State.Cameras()), len(res.State.StashNames()))
			if res.StrippedHazardous > 0 {
				fmt.Printf("stripped %d hazardous filter(s)\n", res.StrippedHazardous)
			}
			if res.VersionWarning != "" {
				fmt.Println(res.VersionWarning)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&untrusted, "untrusted", false, "strip hazardous filters instead of loading them")
	return cmd
}
