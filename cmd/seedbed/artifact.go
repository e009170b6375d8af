package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newArtifactCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Inspect binary artifact files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <artifact.cbor>",
		Short: "Decode a binary artifact and print it as indented JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := e.app.ConfigStore(nil).LoadBinaryValue(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	})
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render artifact as JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
