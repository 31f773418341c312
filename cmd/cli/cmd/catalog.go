// Package cmd - catalog commands
package cmd

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"cloud-adapter/core/catalog"
	"cloud-adapter/core/output"
	"cloud-adapter/core/types"
	"cloud-adapter/internal/app"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate instance catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the offerings of the configured catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), output.CatalogReport(a.Catalog))
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file (default: the configured catalog)",
	Long: `Validate a catalog file. Every problem is reported, not only the first.

Examples:
  cloud-adapter catalog validate
  cloud-adapter catalog validate ./my_catalog.hcl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogValidate,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	var (
		cat *catalog.Catalog
		err error
	)
	if len(args) == 1 {
		cat, err = catalog.LoadFile(types.ProviderHyperstack, args[0])
	} else {
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}
		cat, err = app.LoadCatalog(cfg.Catalog)
	}
	if err != nil {
		for _, e := range problems(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
		}
		return fmt.Errorf("catalog is invalid")
	}

	stats := cat.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ catalog valid: %d offerings, %d instance types, %d regions\n",
		stats.Offerings, stats.InstanceTypes, stats.Regions)
	return nil
}

// problems lists the individual failures aggregated somewhere in err's chain
func problems(err error) []error {
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if errs := multierr.Errors(e); len(errs) > 1 {
			return errs
		}
	}
	return []error{err}
}
