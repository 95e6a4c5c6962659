package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "raaz",
		Short:         "Hashing, HMAC, ChaCha20 and CSPRG utilities",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newChecksumCmd())
	root.AddCommand(newRandCmd())
	root.AddCommand(newInfoCmd())

	return root
}
