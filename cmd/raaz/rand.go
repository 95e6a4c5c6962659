package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/gtank/raaz/rand/csprg"
)

const randStreamChunk = 32 * 1024

func newRandCmd() *cobra.Command {
	var count int64

	cmd := &cobra.Command{
		Use:   "rand",
		Short: "Write pseudorandom bytes from the process CSPRG to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRand(cmd, count)
		},
	}
	cmd.Flags().Int64VarP(&count, "count", "n", 0, "number of bytes to write (0 streams until stdout closes)")
	return cmd
}

func runRand(cmd *cobra.Command, count int64) error {
	gen, err := csprg.System()
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	buf := make([]byte, randStreamChunk)

	if count > 0 {
		for count > 0 {
			chunk := buf
			if int64(len(chunk)) > count {
				chunk = chunk[:count]
			}
			if err := gen.Draw(chunk); err != nil {
				return err
			}
			if _, err := out.Write(chunk); err != nil {
				return err
			}
			count -= int64(len(chunk))
		}
		return out.Flush()
	}

	// Unbounded mode ends when the downstream reader goes away (a closed
	// pipe, redirected-to-full-disk, etc.); any write failure here is that
	// signal, not a generator fault, so it ends the stream quietly rather
	// than surfacing as a command error.
	for {
		if err := gen.Draw(buf); err != nil {
			return err
		}
		if _, err := out.Write(buf); err != nil {
			return nil
		}
		if err := out.Flush(); err != nil {
			return nil
		}
	}
}
