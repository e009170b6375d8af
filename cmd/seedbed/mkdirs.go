package main

import (
	"fmt"

	"github.com/aretw0/seedbed/internal/presentation/tui"
	"github.com/aretw0/seedbed/pkg/configstore"
	"github.com/spf13/cobra"
)

func newMkdirsCmd(e *env) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "mkdirs <dir>...",
		Short: "Create directories and any missing parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := e.app.ConfigStore(nil).EnsureDirectories(args, configstore.WithVerbose(!quiet))
			tui.PrintReport(cmd.OutOrStdout(), report)
			if !report.OK() {
				return fmt.Errorf("%d of %d directories failed", len(report.Failed), len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Log each directory at debug level instead of info")
	return cmd
}
