package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/shopspring/decimal"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// RegionsForInstanceType implements Client
func (c *Catalog) RegionsForInstanceType(instanceType string, useSpot bool) ([]types.Region, error) {
	offs := c.forType(instanceType)
	if useSpot {
		offs = filterSpot(offs)
	}
	sortByPrice(offs, useSpot)

	seen := make(map[string]struct{}, len(offs))
	regions := make([]types.Region, 0, len(offs))
	for _, o := range offs {
		if _, dup := seen[o.Region]; dup {
			continue
		}
		seen[o.Region] = struct{}{}
		regions = append(regions, types.Region{Name: o.Region})
	}
	return regions, nil
}

// VCPUsMemForInstanceType implements Client
func (c *Catalog) VCPUsMemForInstanceType(instanceType string) (float64, float64, bool) {
	offs := c.forType(instanceType)
	if len(offs) == 0 {
		return 0, 0, false
	}
	return offs[0].VCPUs, offs[0].MemoryGiB, true
}

// HourlyCost implements Client
func (c *Catalog) HourlyCost(instanceType string, useSpot bool, region, zone string) (decimal.Decimal, error) {
	if zone != "" {
		return decimal.Zero, errors.Newf(errors.TypeNotSupported, "%s catalog has no zones (got %q)", c.cloud, zone)
	}
	offs := c.forType(instanceType)
	if len(offs) == 0 {
		return decimal.Zero, errors.NotFound("instance type", instanceType)
	}
	if region != "" {
		offs = filterRegion(offs, region)
		if len(offs) == 0 {
			return decimal.Zero, errors.Newf(errors.TypeNotFound,
				"instance type %s is not offered in region %s", instanceType, region)
		}
	}

	var cheapest *decimal.Decimal
	for _, o := range offs {
		p, ok := o.price(useSpot)
		if !ok {
			continue
		}
		if cheapest == nil || p.LessThan(*cheapest) {
			cheapest = &p
		}
	}
	if cheapest == nil {
		return decimal.Zero, errors.Newf(errors.TypeNotSupported,
			"instance type %s has no spot price", instanceType)
	}
	return *cheapest, nil
}

// DefaultInstanceType implements Client. The disk tier does not narrow the
// choice: every offering has the same disk.
func (c *Catalog) DefaultInstanceType(cpus, memory string, _ types.DiskTier) (string, error) {
	if cpus == "" && memory == "" {
		cpus = DefaultCPUs
	}
	if memory == "" {
		memory = DefaultMemoryRatio
	}
	cpuC, err := parseCPUs(cpus)
	if err != nil {
		return "", err
	}
	memC, err := parseMemory(memory)
	if err != nil {
		return "", err
	}

	offs := filterCPUsMem(c.offerings, cpuC, memC)
	if len(offs) == 0 {
		return "", nil
	}
	sortByPrice(offs, false)
	return offs[0].InstanceType, nil
}

// AcceleratorsForInstanceType implements Client
func (c *Catalog) AcceleratorsForInstanceType(instanceType string) (map[string]int, error) {
	offs := c.forType(instanceType)
	if len(offs) == 0 {
		return nil, errors.NotFound("instance type", instanceType)
	}
	if !offs[0].HasAccelerator() {
		return nil, nil
	}
	return map[string]int{offs[0].AcceleratorName: offs[0].AcceleratorCount}, nil
}

// InstanceTypeForAccelerator implements Client
func (c *Catalog) InstanceTypeForAccelerator(q AcceleratorQuery) ([]string, []string, error) {
	cpuC, err := parseCPUs(q.CPUs)
	if err != nil {
		return nil, nil, err
	}
	memC, err := parseMemory(q.Memory)
	if err != nil {
		return nil, nil, err
	}

	var matched []Offering
	for _, o := range c.offerings {
		if strings.EqualFold(o.AcceleratorName, q.Name) && o.AcceleratorCount == q.Count {
			matched = append(matched, o)
		}
	}
	matched = filterRegionZone(matched, q.Region, q.Zone)
	if len(matched) == 0 {
		return nil, c.fuzzyCandidates(q), nil
	}

	matched = filterCPUsMem(matched, cpuC, memC)
	if q.UseSpot {
		matched = filterSpot(matched)
	}
	if len(matched) == 0 {
		return []string{}, nil, nil
	}
	sortByPrice(matched, q.UseSpot)
	return uniqueInstanceTypes(matched), nil, nil
}

// fuzzyCandidates lists offerings whose accelerator name contains the
// requested one with at least the requested count, cheapest first
func (c *Catalog) fuzzyCandidates(q AcceleratorQuery) []string {
	needle := strings.ToLower(q.Name)
	var near []Offering
	for _, o := range c.offerings {
		if o.HasAccelerator() &&
			strings.Contains(strings.ToLower(o.AcceleratorName), needle) &&
			o.AcceleratorCount >= q.Count {
			near = append(near, o)
		}
	}
	near = filterRegionZone(near, q.Region, q.Zone)
	sortByPrice(near, false)

	seen := make(map[string]struct{})
	out := []string{}
	for _, o := range near {
		key := fmt.Sprintf("%s:%d", o.AcceleratorName, o.AcceleratorCount)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// InstanceTypeExists implements Client
func (c *Catalog) InstanceTypeExists(instanceType string) bool {
	_, ok := c.byType[instanceType]
	return ok
}

// ValidateRegionZone implements Client
func (c *Catalog) ValidateRegionZone(region, zone string) error {
	if zone != "" {
		return errors.Newf(errors.TypeInput, "%s does not support zones (got %q)", c.cloud, zone)
	}
	if region == "" {
		return nil
	}
	names := types.RegionNames(c.ListRegions())
	for _, name := range names {
		if name == region {
			return nil
		}
	}
	err := errors.Newf(errors.TypeInput, "invalid region %q for %s", region, c.cloud)
	if suggestions := closeMatches(region, names); len(suggestions) > 0 {
		err.Message += fmt.Sprintf(". Did you mean one of these: %s?", strings.Join(suggestions, ", "))
	}
	return err.WithContext("regions", names)
}

// ListRegions implements Client
func (c *Catalog) ListRegions() []types.Region {
	seen := make(map[string]struct{})
	var names []string
	for _, o := range c.offerings {
		if _, dup := seen[o.Region]; dup {
			continue
		}
		seen[o.Region] = struct{}{}
		names = append(names, o.Region)
	}
	sort.Strings(names)
	regions := make([]types.Region, len(names))
	for i, name := range names {
		regions[i] = types.Region{Name: name}
	}
	return regions
}

// closeMatches returns up to three names within a small edit distance of
// target, closest first
func closeMatches(target string, names []string) []string {
	type scored struct {
		name string
		dist int
	}
	upper := strings.ToUpper(target)
	var hits []scored
	for _, name := range names {
		d := levenshtein.Distance(upper, strings.ToUpper(name), nil)
		if d <= 3 || d <= len(name)/3 {
			hits = append(hits, scored{name, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	var out []string
	for i := 0; i < len(hits) && i < 3; i++ {
		out = append(out, hits[i].name)
	}
	return out
}

func filterRegion(offs []Offering, region string) []Offering {
	var out []Offering
	for _, o := range offs {
		if o.Region == region {
			out = append(out, o)
		}
	}
	return out
}

// filterRegionZone drops everything when a zone is requested: offerings
// carry no zone data
func filterRegionZone(offs []Offering, region, zone string) []Offering {
	if zone != "" {
		return nil
	}
	if region == "" {
		return offs
	}
	return filterRegion(offs, region)
}

func filterSpot(offs []Offering) []Offering {
	var out []Offering
	for _, o := range offs {
		if o.SpotPrice != nil {
			out = append(out, o)
		}
	}
	return out
}

func filterCPUsMem(offs []Offering, cpus, memory *constraint) []Offering {
	var out []Offering
	for _, o := range offs {
		if cpus.matchCPUs(o.VCPUs) && memory.matchMemory(o.MemoryGiB, o.VCPUs) {
			out = append(out, o)
		}
	}
	return out
}

// sortByPrice orders offerings cheapest first; ties break on instance type
// then region so results are deterministic
func sortByPrice(offs []Offering, useSpot bool) {
	sort.SliceStable(offs, func(i, j int) bool {
		pi, _ := offs[i].price(useSpot)
		pj, _ := offs[j].price(useSpot)
		if !pi.Equal(pj) {
			return pi.LessThan(pj)
		}
		if offs[i].InstanceType != offs[j].InstanceType {
			return offs[i].InstanceType < offs[j].InstanceType
		}
		return offs[i].Region < offs[j].Region
	})
}

func uniqueInstanceTypes(offs []Offering) []string {
	seen := make(map[string]struct{}, len(offs))
	out := make([]string, 0, len(offs))
	for _, o := range offs {
		if _, dup := seen[o.InstanceType]; dup {
			continue
		}
		seen[o.InstanceType] = struct{}{}
		out = append(out, o.InstanceType)
	}
	return out
}
