package main

import (
	"fmt"

	"github.com/aretw0/seedbed/internal/presentation/tui"
	"github.com/aretw0/seedbed/pkg/configstore"
	"github.com/aretw0/seedbed/pkg/ports"
	"github.com/aretw0/seedbed/pkg/scaffold"
	"github.com/spf13/cobra"
)

func newInitCmd(e *env) *cobra.Command {
	var (
		project  string
		manifest string
		dir      string
		lock     bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold the project skeleton",
		Long: `Creates the standard machine-learning project layout, or the paths listed in
a YAML manifest, under --dir. Existing files and directories are left alone,
so init can be re-run safely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := scaffold.DefaultLayout(project)
			if manifest != "" {
				m, err := configstore.ReadConfigAs[scaffold.Manifest](e.app.ConfigStore(nil), manifest)
				if err != nil {
					return err
				}
				paths = m.Resolve(project)
			}

			var locker ports.Locker
			if lock {
				l, err := e.app.RedisLocker(cmd.Context())
				if err != nil {
					return err
				}
				locker = l
			}

			out := cmd.OutOrStdout()
			if tui.IsTerminal(out) {
				tui.PrintBanner(out)
			}

			report := e.app.Scaffolder(dir, locker).Materialize(cmd.Context(), paths)
			tui.PrintReport(out, report)
			if !report.OK() {
				return fmt.Errorf("%d of %d paths failed", len(report.Failed), len(paths))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project package name (default "+scaffold.DefaultProject+")")
	cmd.Flags().StringVar(&manifest, "manifest", "", "YAML layout manifest with 'project' and 'paths' keys")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to scaffold into")
	cmd.Flags().BoolVar(&lock, "lock", false, "Lock each path through redis (--redis-addr) while creating it")
	return cmd
}
