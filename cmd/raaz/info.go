package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print module version, CSPRG construction, and compiled-in hash set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			version := "(unknown)"
			if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
				version = bi.Main.Version
			}

			fmt.Fprintf(out, "raaz %s\n", version)
			fmt.Fprintln(out, "csprg: fast-key-erasure, ChaCha20-backed, reseeded from OS entropy")
			fmt.Fprintf(out, "hashes: %v\n", hashNames)
			return nil
		},
	}
}
