package hyperstack

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"cloud-adapter/clouds"
	"cloud-adapter/core/catalog"
	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// Resolve implements clouds.CloudProvider.
//
// A request that already names an instance type is returned as-is with its
// accelerators cleared. Otherwise the catalog picks either the default
// instance type (no accelerators) or every instance type carrying exactly
// the requested accelerator. Broken preconditions return CONTRACT_VIOLATION;
// features Hyperstack lacks return CAPABILITY_VIOLATION before the catalog
// is queried.
func (c *Cloud) Resolve(req types.ResourceRequest) (types.FeasibilityResult, error) {
	if req.Cloud != "" && !req.Cloud.Matches(types.ProviderHyperstack) {
		return types.FeasibilityResult{}, errors.Contract("request for cloud %q dispatched to %s", req.Cloud, displayName)
	}
	accName, accCount, hasAcc, err := req.Accelerator()
	if err != nil {
		return types.FeasibilityResult{}, errors.Contract("%s: %v", displayName, err).
			WithContext("request", req.String())
	}
	if err := clouds.CheckFeatureSupport(c, req); err != nil {
		return types.FeasibilityResult{}, err
	}

	if req.InstanceType != "" {
		// Accelerators come with the instance type.
		res := types.NewLaunchableResource(req, types.ClearAccelerators())
		c.logger.Debug("request already launchable", zap.String("instance_type", req.InstanceType))
		return feasible([]types.LaunchableResource{res}, nil), nil
	}

	if !hasAcc {
		instanceType, err := c.catalog.DefaultInstanceType(req.CPUs, req.Memory, req.DiskTier)
		if err != nil {
			return types.FeasibilityResult{}, errors.Catalog("default instance type", err)
		}
		if instanceType == "" {
			c.logger.Debug("no default instance type", zap.String("cpus", req.CPUs), zap.String("memory", req.Memory))
			result := feasible(nil, nil)
			result.Hint = fmt.Sprintf("No %s instance type satisfies %s.", displayName, describeCPUsMem(req))
			return result, nil
		}
		c.logger.Debug("selected default instance type", zap.String("instance_type", instanceType))
		return feasible(c.launchables(req, []string{instanceType}), nil), nil
	}

	exact, fuzzy, err := c.catalog.InstanceTypeForAccelerator(catalog.AcceleratorQuery{
		Name:    accName,
		Count:   accCount,
		UseSpot: req.UseSpot,
		CPUs:    req.CPUs,
		Memory:  req.Memory,
		Region:  req.Region,
		Zone:    req.Zone,
	})
	if err != nil {
		return types.FeasibilityResult{}, errors.Catalog(fmt.Sprintf("instance types for %s:%d", accName, accCount), err)
	}
	c.logger.Debug("accelerator lookup",
		zap.String("accelerator", accName),
		zap.Int("count", accCount),
		zap.Int("exact", len(exact)),
		zap.Int("fuzzy", len(fuzzy)),
	)

	if len(exact) > 0 {
		return feasible(c.launchables(req, exact), nil), nil
	}
	result := feasible(nil, fuzzy)
	if len(fuzzy) > 0 {
		result.Hint = fmt.Sprintf("No %s instance type offers %s:%d. Closest matches: %s.",
			displayName, accName, accCount, strings.Join(fuzzy, ", "))
	} else {
		result.Hint = fmt.Sprintf("No %s instance type offers %s:%d with %s.",
			displayName, accName, accCount, describeCPUsMem(req))
	}
	return result, nil
}

// launchables builds one resource per instance type. Accelerators, CPUs and
// memory are cleared because Hyperstack bills them inside the instance type.
func (c *Cloud) launchables(req types.ResourceRequest, instanceTypes []string) []types.LaunchableResource {
	out := make([]types.LaunchableResource, 0, len(instanceTypes))
	for _, it := range instanceTypes {
		out = append(out, types.NewLaunchableResource(req,
			types.WithCloud(types.ProviderHyperstack),
			types.WithInstanceType(it),
			types.ClearAccelerators(),
			types.ClearCPUs(),
			types.ClearMemory(),
		))
	}
	return out
}

func feasible(resources []types.LaunchableResource, fuzzy []string) types.FeasibilityResult {
	if resources == nil {
		resources = []types.LaunchableResource{}
	}
	if fuzzy == nil {
		fuzzy = []string{}
	}
	return types.FeasibilityResult{Resources: resources, FuzzyCandidates: fuzzy}
}

func describeCPUsMem(req types.ResourceRequest) string {
	cpus, mem := req.CPUs, req.Memory
	if cpus == "" {
		cpus = "any"
	}
	if mem == "" {
		mem = "any"
	}
	return fmt.Sprintf("cpus=%s, memory=%s", cpus, mem)
}
