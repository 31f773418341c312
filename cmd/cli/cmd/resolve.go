// Package cmd - resolve command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cloud-adapter/core/output"
	"cloud-adapter/core/types"
)

var resolveFlags struct {
	cloud         string
	instanceType  string
	gpus          string
	cpus          string
	memory        string
	useSpot       bool
	diskTier      string
	region        string
	zone          string
	imageID       string
	cloneDiskFrom string
}

// resolveCmd maps a resource request to launchable instance types
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a resource request to launchable instance types",
	Long: `Resolve an abstract resource request to the instance types that can
launch it. When no instance type matches exactly, close alternatives are
listed instead.

Examples:
  cloud-adapter resolve --gpus A100:1
  cloud-adapter resolve --gpus H100:8 --region CANADA-1
  cloud-adapter resolve --cpus 16+ --memory 64+
  cloud-adapter resolve --instance-type n3-RTX-A6000x1`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.StringVar(&resolveFlags.cloud, "cloud", "", "cloud to resolve against (default hyperstack)")
	f.StringVarP(&resolveFlags.instanceType, "instance-type", "t", "", "concrete instance type")
	f.StringVar(&resolveFlags.gpus, "gpus", "", "accelerator request, e.g. A100:1")
	f.StringVar(&resolveFlags.cpus, "cpus", "", "vCPU constraint, e.g. 8 or 8+")
	f.StringVar(&resolveFlags.memory, "memory", "", "memory constraint in GiB, e.g. 32, 32+ or 4x")
	f.BoolVar(&resolveFlags.useSpot, "use-spot", false, "request spot capacity")
	f.StringVar(&resolveFlags.diskTier, "disk-tier", "", "disk tier (low, medium, high, ultra, best)")
	f.StringVarP(&resolveFlags.region, "region", "r", "", "region hint (default from config)")
	f.StringVar(&resolveFlags.zone, "zone", "", "zone hint")
	f.StringVar(&resolveFlags.imageID, "image-id", "", "machine image")
	f.StringVar(&resolveFlags.cloneDiskFrom, "clone-disk-from", "", "cluster whose disk should be cloned")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	req, err := buildRequest()
	if err != nil {
		return err
	}
	if req.Region == "" {
		req.Region = a.Config.Hyperstack.DefaultRegion
	}

	cloud := req.Cloud
	if cloud == "" {
		cloud = types.ProviderHyperstack
	}
	p, err := a.Registry.Lookup(cloud)
	if err != nil {
		return err
	}

	result, err := p.Resolve(req)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), output.ResolveReport(p.Name(), req, result))
}

func buildRequest() (types.ResourceRequest, error) {
	accs, err := types.ParseAccelerators(resolveFlags.gpus)
	if err != nil {
		return types.ResourceRequest{}, fmt.Errorf("--gpus: %w", err)
	}
	tier := types.DiskTier(resolveFlags.diskTier)
	if !tier.IsValid() {
		return types.ResourceRequest{}, fmt.Errorf("--disk-tier: unknown tier %q", resolveFlags.diskTier)
	}
	return types.ResourceRequest{
		Cloud:         types.Provider(resolveFlags.cloud),
		InstanceType:  resolveFlags.instanceType,
		Accelerators:  accs,
		CPUs:          resolveFlags.cpus,
		Memory:        resolveFlags.memory,
		UseSpot:       resolveFlags.useSpot,
		DiskTier:      tier,
		Region:        resolveFlags.region,
		Zone:          resolveFlags.zone,
		ImageID:       resolveFlags.imageID,
		CloneDiskFrom: resolveFlags.cloneDiskFrom,
	}, nil
}
