package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gtank/raaz"
)

// hashNames is the CLI's accepted hash set. SHA-1 is deliberately absent,
// consistent with the facade: it stays reachable through hash/sha1 and
// HMAC-SHA1 for legacy interop, never as a general-purpose checksum.
var hashNames = []string{"sha256", "sha512", "blake2b", "blake2s"}

func newChecksumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checksum <hash> <files...>",
		Short: "Print checksums of files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecksum(cmd, args[0], args[1:])
		},
	}
	return cmd
}

func runChecksum(cmd *cobra.Command, hashName string, paths []string) error {
	digestFile, err := digestFileFunc(hashName)
	if err != nil {
		return err
	}

	sawFailure := false
	for _, path := range paths {
		hex, err := digestFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "raaz: %s: %v\n", path, err)
			sawFailure = true
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hex, path)
	}

	if sawFailure {
		return errChecksumFailed
	}
	return nil
}

var errChecksumFailed = fmt.Errorf("raaz: one or more files could not be checksummed")

func digestFileFunc(hashName string) (func(string) (string, error), error) {
	switch hashName {
	case "sha256":
		return func(path string) (string, error) {
			d, err := raaz.SHA256File(path)
			return d.String(), err
		}, nil
	case "sha512":
		return func(path string) (string, error) {
			d, err := raaz.SHA512File(path)
			return d.String(), err
		}, nil
	case "blake2b":
		return func(path string) (string, error) {
			d, err := raaz.BLAKE2bFile(path)
			if err != nil {
				return "", err
			}
			return d.String(), nil
		}, nil
	case "blake2s":
		return func(path string) (string, error) {
			d, err := raaz.BLAKE2sFile(path)
			if err != nil {
				return "", err
			}
			return d.String(), nil
		}, nil
	default:
		return nil, fmt.Errorf("raaz: unknown hash %q, want one of %v", hashName, hashNames)
	}
}
