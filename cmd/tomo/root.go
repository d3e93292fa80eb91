package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/threedepict/tomo/internal/config"
)

// cliState holds the process-wide objects subcommands share, the
// equivalent of the teacher's Cfg wrapping a *viper.Viper (spec's
// ambient stack: config + logging carried regardless of which
// operation runs).
type cliState struct {
	cfgPath string
	cfg     *config.Config
	log     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{log: logrus.New()}

	root := &cobra.Command{
		Use:   "tomo",
		Short: "Analyse atom-probe tomography point-cloud data.",
		Long: `tomo loads, refreshes and exports filter-graph state files for
atom-probe tomography analysis. Configuration can be set with a TOML
file (--config) or TOMO_-prefixed environment variables.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithFlags(state.cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			state.cfg = cfg
			if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				state.log.SetLevel(lvl)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&state.cfgPath, "config", "", "path to a TOML configuration file")
	root.PersistentFlags().String("loglevel", "", "log level override: debug|info|warn|error")
	root.PersistentFlags().String("statedir", "", "state-file directory setting (not used to resolve state-file paths)")
	root.PersistentFlags().Bool("untrustedloads", false, "strip hazardous filters from state loaded by refresh by default")

	root.AddCommand(
		newRefreshCmd(state),
		newExportCmd(state),
		newValidateStateCmd(state),
	)
	return root
}

func fatalf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
