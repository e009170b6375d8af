package main

import (
	"fmt"

	"github.com/aretw0/seedbed/internal/presentation/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and convert YAML configuration files",
	}
	cmd.AddCommand(newConfigShowCmd(e), newConfigToJSONCmd(e))
	return cmd
}

func newConfigShowCmd(e *env) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "show <config.yaml>",
		Short: "Print a configuration file, or one value of it",
		Long: `Reads a YAML configuration file and prints it back as YAML. With --key,
only the value at that dotted path (e.g. data_ingestion.root_dir) is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := e.app.ConfigStore(nil).ReadConfig(args[0])
			if err != nil {
				return err
			}

			var value any = doc
			if key != "" {
				v, ok := doc.Lookup(key)
				if !ok {
					return fmt.Errorf("key %q not found in %s", key, args[0])
				}
				value = v
			}

			out, err := yaml.Marshal(value)
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			return tui.WriteCode(cmd.OutOrStdout(), "yaml", string(out))
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Dotted path of a single value to print")
	return cmd
}

func newConfigToJSONCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "to-json <config.yaml> <out.json>",
		Short: "Convert a YAML configuration file to indented JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := e.app.ConfigStore(nil)
			doc, err := store.ReadConfig(args[0])
			if err != nil {
				return err
			}
			return store.SaveJSON(args[1], doc.Map())
		},
	}
}
