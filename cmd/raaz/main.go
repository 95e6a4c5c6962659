// Command raaz is the CLI surface over the raaz module: file checksums,
// CSPRG-backed random byte streams, and build/runtime info.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("raaz: command failed")
		os.Exit(1)
	}
}
