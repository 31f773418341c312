// Package cmd - check command
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cloud-adapter/core/output"
)

// checkCmd validates credentials against the live API
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check Hyperstack credentials",
	Long: `Check that the API key file exists and that the compute API accepts it.
The probe is bounded by hyperstack.request_timeout_seconds. The command
exits non-zero when credentials are not usable.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, a.Config.Hyperstack.RequestTimeout())
	defer cancel()

	compute, err := a.Hyperstack.CheckCredentials(ctx)
	if err != nil {
		return err
	}
	storage, err := a.Hyperstack.CheckStorageCredentials(ctx)
	if err != nil {
		return err
	}

	if err := render(cmd.OutOrStdout(), output.CredentialsReport(a.Hyperstack.Name(), compute, storage)); err != nil {
		return err
	}
	if !compute.OK() || !storage.OK() {
		return errCredentials
	}
	return nil
}

type credentialsError struct{}

func (credentialsError) Error() string { return "credentials are not usable" }

var errCredentials error = credentialsError{}
