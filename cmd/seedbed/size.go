package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSizeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "size <path>",
		Short: "Print the approximate size of a file in KB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := e.app.ConfigStore(nil).FileSizeKB(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), size)
			return nil
		},
	}
}
