package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/seedbed"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of seedbed",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seedbed version %s\n", strings.TrimSpace(seedbed.Version))
		},
	}
}
