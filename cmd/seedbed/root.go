package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/seedbed/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// env carries what the root command resolves before any subcommand runs.
type env struct {
	viper *viper.Viper
	app   *cli.App
}

func newRootCmd() (*cobra.Command, *env) {
	e := &env{viper: cli.NewViper()}

	root := &cobra.Command{
		Use:   "seedbed",
		Short: "seedbed bootstraps machine-learning projects",
		Long: `seedbed scaffolds a project skeleton, inspects configuration and artifact
files, and moves stage artifacts in and out of a shared cache.

Every flag can also be set through a SEEDBED_* environment variable,
e.g. SEEDBED_LOG_LEVEL=debug or SEEDBED_CACHE_BACKEND=redis.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := cli.LoadSettings(e.viper)
			if err != nil {
				return err
			}
			e.app, err = cli.NewApp(settings, cmd.ErrOrStderr())
			return err
		},
	}

	if err := cli.RegisterFlags(e.viper, root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		newInitCmd(e),
		newMkdirsCmd(e),
		newSizeCmd(e),
		newConfigCmd(e),
		newArtifactCmd(e),
		newCacheCmd(e),
		newVersionCmd(),
	)
	return root, e
}

// run executes the command tree with args and releases the app afterwards.
func run(args []string, stdout, stderr io.Writer) error {
	root, e := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	if e.app != nil {
		if closeErr := e.app.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// Execute runs the CLI with the process arguments.
func Execute() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
