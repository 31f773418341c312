// Package cmd - features command
package cmd

import (
	"github.com/spf13/cobra"

	"cloud-adapter/core/output"
	"cloud-adapter/core/types"
)

// featuresCmd prints the capability policy
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List features Hyperstack does not support",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		hs := a.Hyperstack
		report := output.FeaturesReport(hs.Name(), hs.UnsupportedFeatures(types.ResourceRequest{}), hs.MaxClusterNameLength())
		return render(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}
