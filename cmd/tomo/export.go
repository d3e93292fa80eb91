package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/threedepict/tomo/engine"
	"github.com/threedepict/tomo/filter"
	"github.com/threedepict/tomo/fstream"
	"github.com/threedepict/tomo/statefile"
	"github.com/threedepict/tomo/vizglue"
)

func newExportCmd(state *cliState) *cobra.Command {
	var outDir, format string
	cmd := &cobra.Command{
		Use:   "export <state-file>",
		Short: "Refresh a state file and export its plots and tables.",
		Long: `export refreshes every root in the state file and writes one file per
Plot1D/Plot2D stream (SVG, via gonum.org/v1/plot) and per Range stream
(xlsx, via github.com/tealeg/xlsx) into --out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fatalf("tomo export: %w", err)
			}
			res, err := statefile.Load(f, statefile.ReadOptions{BaseDir: filepath.Dir(path)})
			f.Close()
			if err != nil {
				return fatalf("tomo export: %w", err)
			}

			eng := engine.New()
			progress := filter.NewProgress()
			var abort filter.AbortFlag
			result, err := eng.Refresh(res.State.TreeState().Tree(), progress, &abort)
			if err != nil {
				return fatalf("tomo export: %w", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fatalf("tomo export: %w", err)
			}

			n := 0
			for rootIdx, outputs := range result.RootOutputs {
				for streamIdx, s := range outputs {
					if err := exportOne(outDir, rootIdx, streamIdx, s); err != nil {
						return fatalf("tomo export: %w", err)
					}
					n++
				}
			}
			fmt.Printf("exported %d file(s) to %s\n", n, outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "export", "output directory")
	cmd.Flags().StringVar(&format, "format", "svg", "figure format (svg)")
	return cmd
}

func exportOne(outDir string, rootIdx, streamIdx int, s fstream.Stream) error {
	switch v := s.(type) {
	case *fstream.Plot1D:
		path := filepath.Join(outDir, fmt.Sprintf("root%d-plot%d.svg", rootIdx, streamIdx))
		return vizglue.ExportPlot1D(path, v)
	case *fstream.Plot2D:
		path := filepath.Join(outDir, fmt.Sprintf("root%d-plot%d.svg", rootIdx, streamIdx))
		return vizglue.ExportPlot2D(path, v)
	case *fstream.Range:
		path := filepath.Join(outDir, fmt.Sprintf("root%d-range%d.xlsx", rootIdx, streamIdx))
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		defer out.Close()
		return vizglue.ExportRangeTable(out, v)
	default:
		return nil
	}
}
