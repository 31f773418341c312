// Package cmd - regions command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cloud-adapter/core/output"
	"cloud-adapter/core/types"
)

var (
	regionsSpot   bool
	regionsRegion string
	regionsAll    bool
)

// regionsCmd lists where an instance type can be provisioned
var regionsCmd = &cobra.Command{
	Use:   "regions [instance-type]",
	Short: "List regions offering an instance type",
	Long: `List the regions where an instance type can be provisioned, in the
order a provisioner should try them. With --all, list every region the
catalog knows.

Examples:
  cloud-adapter regions n3-A100x1
  cloud-adapter regions n3-H100x8 --region CANADA-1
  cloud-adapter regions --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRegions,
}

func init() {
	regionsCmd.Flags().BoolVar(&regionsSpot, "use-spot", false, "only regions with spot capacity")
	regionsCmd.Flags().StringVarP(&regionsRegion, "region", "r", "", "restrict to one region")
	regionsCmd.Flags().BoolVar(&regionsAll, "all", false, "list every known region")

	rootCmd.AddCommand(regionsCmd)
}

func runRegions(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	hs := a.Hyperstack

	if regionsAll {
		return render(cmd.OutOrStdout(), output.RegionsReport(hs.Name(), "any instance type", hs.Regions()))
	}
	if len(args) == 0 {
		return fmt.Errorf("instance type is required (or use --all)")
	}
	instanceType := args[0]

	if err := hs.ValidateRegionZone(regionsRegion, ""); err != nil {
		return err
	}
	if !hs.InstanceTypeExists(instanceType) {
		return fmt.Errorf("unknown instance type %q", instanceType)
	}
	accs, err := hs.AcceleratorsFromInstanceType(instanceType)
	if err != nil {
		return err
	}

	regions, err := hs.RegionsWithOffering(instanceType, accs, regionsSpot, regionsRegion, "")
	if err != nil {
		return err
	}

	report := output.RegionsReport(hs.Name(), instanceType, regions)
	if vcpus, mem, ok := hs.VCPUsMem(instanceType); ok {
		report.Notes = append(report.Notes, fmt.Sprintf("%s: %g vCPUs, %g GiB memory, accelerators %s",
			instanceType, vcpus, mem, orNone(types.FormatAccelerators(accs))))
	}
	return render(cmd.OutOrStdout(), report)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
