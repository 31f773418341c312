// Package cmd - plan command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cloud-adapter/clouds"
	"cloud-adapter/core/output"
	"cloud-adapter/core/types"
)

var planFlags struct {
	instanceType string
	gpus         string
	cpus         string
	memory       string
	region       string
	nodes        int
}

// planCmd prints the provisioning attempts for a cluster
var planCmd = &cobra.Command{
	Use:   "plan CLUSTER-NAME",
	Short: "Show the provisioning attempts for a cluster",
	Long: `Resolve a request, pick the cheapest launchable instance type and list
the region attempts a provisioner would make, each with the template
variables it would deploy. Nothing is launched.

Examples:
  cloud-adapter plan train --gpus A100:1
  cloud-adapter plan train --gpus H100:8 --nodes 2 --region CANADA-1
  cloud-adapter plan web --cpus 8+ --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planFlags.instanceType, "instance-type", "t", "", "concrete instance type")
	f.StringVar(&planFlags.gpus, "gpus", "", "accelerator request, e.g. A100:1")
	f.StringVar(&planFlags.cpus, "cpus", "", "vCPU constraint, e.g. 8 or 8+")
	f.StringVar(&planFlags.memory, "memory", "", "memory constraint in GiB, e.g. 32+")
	f.StringVarP(&planFlags.region, "region", "r", "", "only plan in this region (default from config)")
	f.IntVarP(&planFlags.nodes, "nodes", "n", 1, "number of nodes")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	hs := a.Hyperstack

	if planFlags.nodes <= 0 {
		return fmt.Errorf("--nodes must be positive, got %d", planFlags.nodes)
	}
	accs, err := types.ParseAccelerators(planFlags.gpus)
	if err != nil {
		return fmt.Errorf("--gpus: %w", err)
	}
	region := planFlags.region
	if region == "" {
		region = a.Config.Hyperstack.DefaultRegion
	}
	if err := hs.ValidateRegionZone(region, ""); err != nil {
		return err
	}

	req := types.ResourceRequest{
		InstanceType: planFlags.instanceType,
		Accelerators: accs,
		CPUs:         planFlags.cpus,
		Memory:       planFlags.memory,
		Region:       region,
	}
	result, err := hs.Resolve(req)
	if err != nil {
		return err
	}
	if !result.Feasible() {
		if result.Hint != "" {
			return fmt.Errorf("nothing to plan: %s", result.Hint)
		}
		return fmt.Errorf("nothing to plan: no launchable resource for %s", req)
	}
	res := result.Resources[0]

	instanceAccs, err := hs.AcceleratorsFromInstanceType(res.InstanceType)
	if err != nil {
		return err
	}
	regions, err := hs.RegionsWithOffering(res.InstanceType, instanceAccs, false, region, "")
	if err != nil {
		return err
	}

	var attempts []output.PlanAttempt
	for _, r := range regions {
		loop, err := hs.ZonesProvisionLoop(r.Name, planFlags.nodes, res.InstanceType, instanceAccs, false)
		if err != nil {
			return err
		}
		for zones := range loop {
			vars, err := hs.DeployVariables(res, r.Name, zones, planFlags.nodes)
			if err != nil {
				return err
			}
			attempts = append(attempts, output.PlanAttempt{Region: r.Name, Zones: zones, Variables: vars})
		}
	}

	plan := output.Plan{
		Cloud:             hs.Name(),
		RequestedName:     args[0],
		ClusterName:       clouds.TruncateClusterName(hs, args[0]),
		InstanceType:      res.InstanceType,
		Nodes:             planFlags.nodes,
		Attempts:          attempts,
		CredentialMounts:  hs.CredentialFileMounts(),
		AlternativesCount: len(result.Resources) - 1,
	}
	return render(cmd.OutOrStdout(), output.PlanReport(plan))
}
