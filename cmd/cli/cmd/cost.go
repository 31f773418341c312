// Package cmd - cost command
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"cloud-adapter/clouds"
	"cloud-adapter/core/output"
	"cloud-adapter/core/types"
)

var costFlags struct {
	region   string
	useSpot  bool
	nodes    int
	hours    string
	egressGB float64
}

// costCmd prices a run of an instance type
var costCmd = &cobra.Command{
	Use:   "cost <instance-type>",
	Short: "Estimate the cost of running an instance type",
	Long: `Estimate the cost of running nodes of one instance type for a number of
hours. Without --hours the estimate covers one billing month (730 hours).
When no region is given the cheapest region is used.

Examples:
  cloud-adapter cost n3-A100x1
  cloud-adapter cost n3-H100x8 --nodes 4 --hours 72
  cloud-adapter cost n3-L40x1 --region NORWAY-1 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runCost,
}

func init() {
	costCmd.Flags().StringVarP(&costFlags.region, "region", "r", "", "region (default: cheapest)")
	costCmd.Flags().BoolVar(&costFlags.useSpot, "use-spot", false, "price spot capacity")
	costCmd.Flags().IntVarP(&costFlags.nodes, "nodes", "n", 1, "number of nodes")
	costCmd.Flags().StringVar(&costFlags.hours, "hours", "", "run length in hours (default: one month)")
	costCmd.Flags().Float64Var(&costFlags.egressGB, "egress-gb", 0, "data sent out of the cloud, in GB")

	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	hours := decimal.NewFromInt(clouds.HoursPerMonth)
	if costFlags.hours != "" {
		hours, err = decimal.NewFromString(costFlags.hours)
		if err != nil {
			return fmt.Errorf("--hours: %w", err)
		}
	}

	in := clouds.RunCostInput{
		Resource: types.NewLaunchableResource(types.ResourceRequest{
			Cloud:        a.Hyperstack.Name(),
			InstanceType: args[0],
			UseSpot:      costFlags.useSpot,
			Region:       costFlags.region,
		}),
		Nodes:    costFlags.nodes,
		Hours:    hours,
		EgressGB: costFlags.egressGB,
	}
	cost, err := clouds.EstimateRunCost(a.Hyperstack, in)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), output.CostReport(a.Hyperstack.Name(), in, cost))
}
