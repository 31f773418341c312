// Package main is the entry point for the cloud-adapter CLI.
package main

import (
	"os"

	"cloud-adapter/cmd/cli/cmd"
	"cloud-adapter/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		logging.Sync()
		os.Exit(1)
	}
}
