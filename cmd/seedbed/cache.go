package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newCacheCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Move binary artifacts in and out of the artifact cache",
		Long: `Manages the artifact cache selected by --cache-backend (file, memory or redis).
With --cache-key set, payloads are encrypted with AES-256-GCM before they
reach the backend.`,
	}
	cmd.AddCommand(
		newCachePushCmd(e),
		newCachePullCmd(e),
		newCacheLsCmd(e),
		newCacheShowCmd(e),
		newCacheRmCmd(e),
	)
	return cmd
}

func newCachePushCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "push <key> <artifact.cbor>",
		Short: "Store an artifact file under key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read artifact file: %w", err)
			}
			cache, err := e.app.OpenCache(cmd.Context())
			if err != nil {
				return err
			}
			if err := cache.Import(cmd.Context(), args[0], data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed '%s' (%d bytes)\n", args[0], len(data))
			return nil
		},
	}
}

func newCachePullCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <key> <artifact.cbor>",
		Short: "Write the artifact stored under key to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := e.app.OpenCache(cmd.Context())
			if err != nil {
				return err
			}
			data, err := cache.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(args[1]), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return fmt.Errorf("failed to write artifact file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pulled '%s' into %s\n", args[0], args[1])
			return nil
		},
	}
}

func newCacheLsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List cached artifact keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := e.app.OpenCache(cmd.Context())
			if err != nil {
				return err
			}
			keys, err := cache.Keys(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				fmt.Fprintln(out, "No cached artifacts found.")
				return nil
			}
			fmt.Fprintln(out, "Cached artifacts:")
			for _, k := range keys {
				fmt.Fprintln(out, "- "+k)
			}
			return nil
		},
	}
}

func newCacheShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Decode a cached artifact and print it as indented JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := e.app.OpenCache(cmd.Context())
			if err != nil {
				return err
			}
			v, err := cache.GetValue(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	}
}

func newCacheRmCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>...",
		Short: "Remove one or more cached artifacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := e.app.OpenCache(cmd.Context())
			if err != nil {
				return err
			}
			var failed int
			for _, key := range args {
				if err := cache.Delete(cmd.Context(), key); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", key, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed '%s'\n", key)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d removals failed", failed, len(args))
			}
			return nil
		},
	}
}
