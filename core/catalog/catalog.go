// Package catalog - Provider instance catalog
// Defines the query contract the cloud adapters consume and a reference
// in-memory implementation loaded from HCL.
// The catalog is read-only once built.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"cloud-adapter/core/types"
)

// Client answers catalog queries for one provider. Every method is a pure
// lookup against pre-fetched data.
type Client interface {
	// RegionsForInstanceType returns the regions offering instanceType,
	// cheapest first
	RegionsForInstanceType(instanceType string, useSpot bool) ([]types.Region, error)

	// VCPUsMemForInstanceType returns the vCPU count and memory in GiB
	VCPUsMemForInstanceType(instanceType string) (vcpus, memoryGiB float64, ok bool)

	// HourlyCost returns the hourly price of instanceType. An empty region
	// means the cheapest region.
	HourlyCost(instanceType string, useSpot bool, region, zone string) (decimal.Decimal, error)

	// DefaultInstanceType returns the cheapest instance type satisfying
	// the constraints, or "" when none does
	DefaultInstanceType(cpus, memory string, diskTier types.DiskTier) (string, error)

	// AcceleratorsForInstanceType returns the accelerators bundled with
	// instanceType, or nil for CPU-only types
	AcceleratorsForInstanceType(instanceType string) (map[string]int, error)

	// InstanceTypeForAccelerator returns the exact matches for q, cheapest
	// first. When nothing matches the accelerator, exact is nil and fuzzy
	// lists close alternatives as "NAME:COUNT".
	InstanceTypeForAccelerator(q AcceleratorQuery) (exact []string, fuzzy []string, err error)

	// InstanceTypeExists reports whether instanceType is in the catalog
	InstanceTypeExists(instanceType string) bool

	// ValidateRegionZone checks that region (and zone) can be used
	ValidateRegionZone(region, zone string) error

	// ListRegions returns every region in the catalog, sorted by name
	ListRegions() []types.Region
}

// AcceleratorQuery selects instance types by accelerator
type AcceleratorQuery struct {
	Name    string
	Count   int
	UseSpot bool
	CPUs    string
	Memory  string
	Region  string
	Zone    string
}

// Offering is one instance type offered in one region
type Offering struct {
	InstanceType     string
	AcceleratorName  string
	AcceleratorCount int
	VCPUs            float64
	MemoryGiB        float64
	Price            decimal.Decimal

	// SpotPrice is nil when the offering cannot be bought as spot
	SpotPrice *decimal.Decimal
	Region    string
}

// HasAccelerator reports whether the offering bundles an accelerator
func (o Offering) HasAccelerator() bool {
	return o.AcceleratorName != ""
}

// price returns the on-demand or spot price; ok is false when the
// offering has no price of that kind
func (o Offering) price(useSpot bool) (decimal.Decimal, bool) {
	if !useSpot {
		return o.Price, true
	}
	if o.SpotPrice == nil {
		return decimal.Zero, false
	}
	return *o.SpotPrice, true
}

// Default constraints used when a request names neither CPUs nor memory
const (
	DefaultCPUs        = "8+"
	DefaultMemoryRatio = "4x"
)

// Catalog is the reference Client implementation
type Catalog struct {
	cloud     types.Provider
	offerings []Offering
	byType    map[string][]int
}

// NewCatalog creates a catalog over offerings. The slice is copied.
func NewCatalog(cloud types.Provider, offerings []Offering) *Catalog {
	c := &Catalog{
		cloud:     cloud,
		offerings: make([]Offering, len(offerings)),
		byType:    make(map[string][]int),
	}
	copy(c.offerings, offerings)
	for i, o := range c.offerings {
		c.byType[o.InstanceType] = append(c.byType[o.InstanceType], i)
	}
	return c
}

// Cloud returns the provider the catalog describes
func (c *Catalog) Cloud() types.Provider {
	return c.cloud
}

// Offerings returns a copy of every offering
func (c *Catalog) Offerings() []Offering {
	out := make([]Offering, len(c.offerings))
	copy(out, c.offerings)
	return out
}

// InstanceTypes returns the distinct instance types, sorted
func (c *Catalog) InstanceTypes() []string {
	names := make([]string, 0, len(c.byType))
	for name := range c.byType {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// forType returns the offerings of one instance type
func (c *Catalog) forType(instanceType string) []Offering {
	idx := c.byType[instanceType]
	out := make([]Offering, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.offerings[i])
	}
	return out
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	stats := Stats{
		ByAccelerator: make(map[string]int),
	}
	regions := make(map[string]struct{})
	for _, name := range c.InstanceTypes() {
		stats.InstanceTypes++
		offs := c.forType(name)
		if len(offs) > 0 && offs[0].HasAccelerator() {
			stats.ByAccelerator[strings.ToUpper(offs[0].AcceleratorName)]++
		}
	}
	for _, o := range c.offerings {
		stats.Offerings++
		regions[o.Region] = struct{}{}
	}
	stats.Regions = len(regions)
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Offerings     int
	InstanceTypes int
	Regions       int
	ByAccelerator map[string]int
}

var _ Client = (*Catalog)(nil)
