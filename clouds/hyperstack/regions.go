package hyperstack

import (
	"iter"

	"go.uber.org/zap"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// RegionsWithOffering implements clouds.CloudProvider. Hyperstack has no
// zones, so a zone argument is a caller bug. Spot capacity does not exist and
// always yields no regions.
func (c *Cloud) RegionsWithOffering(instanceType string, _ map[string]int, useSpot bool, region, zone string) ([]types.Region, error) {
	if zone != "" {
		return nil, errors.Contract("%s does not support zones, got zone %q", displayName, zone)
	}
	if useSpot {
		return []types.Region{}, nil
	}

	regions, err := c.catalog.RegionsForInstanceType(instanceType, useSpot)
	if err != nil {
		return nil, errors.Catalog("regions for "+instanceType, err)
	}

	out := make([]types.Region, 0, len(regions))
	for _, r := range regions {
		if region != "" && r.Name != region {
			continue
		}
		if r.Zones != nil {
			return nil, errors.Contract("catalog reported zones for %s region %s", displayName, r.Name).
				WithContext("instance_type", instanceType)
		}
		out = append(out, r)
	}
	c.logger.Debug("regions with offering",
		zap.String("instance_type", instanceType),
		zap.String("region", region),
		zap.Int("regions", len(out)),
	)
	return out, nil
}

// ZonesProvisionLoop yields the zone list to try for each candidate region,
// in the order a provisioner should attempt them. Hyperstack provisions at
// region level, so every yielded list is nil.
func (c *Cloud) ZonesProvisionLoop(region string, numNodes int, instanceType string, accelerators map[string]int, useSpot bool) (iter.Seq[[]types.Zone], error) {
	if numNodes <= 0 {
		return nil, errors.Contract("num nodes must be positive, got %d", numNodes)
	}
	regions, err := c.RegionsWithOffering(instanceType, accelerators, useSpot, region, "")
	if err != nil {
		return nil, err
	}
	return func(yield func([]types.Zone) bool) {
		for _, r := range regions {
			if !yield(r.Zones) {
				return
			}
		}
	}, nil
}

// Regions lists every region the catalog knows
func (c *Cloud) Regions() []types.Region {
	return c.catalog.ListRegions()
}

// ValidateRegionZone checks a region/zone pair against the catalog
func (c *Cloud) ValidateRegionZone(region, zone string) error {
	return c.catalog.ValidateRegionZone(region, zone)
}

// InstanceTypeExists reports whether the catalog lists instanceType
func (c *Cloud) InstanceTypeExists(instanceType string) bool {
	return c.catalog.InstanceTypeExists(instanceType)
}

// VCPUsMem returns the vCPU count and memory in GiB of instanceType
func (c *Cloud) VCPUsMem(instanceType string) (vcpus, memoryGiB float64, ok bool) {
	return c.catalog.VCPUsMemForInstanceType(instanceType)
}

// AcceleratorsFromInstanceType returns the accelerators bundled with
// instanceType, or nil for CPU-only types
func (c *Cloud) AcceleratorsFromInstanceType(instanceType string) (map[string]int, error) {
	accs, err := c.catalog.AcceleratorsForInstanceType(instanceType)
	if err != nil {
		return nil, errors.Catalog("accelerators for "+instanceType, err)
	}
	return accs, nil
}

// UserIdentities returns nil: Hyperstack credentials carry no identity the
// adapter can compare
func (c *Cloud) UserIdentities() [][]string {
	return nil
}
