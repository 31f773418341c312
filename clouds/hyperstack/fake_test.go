package hyperstack

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	hsapi "cloud-adapter/adapters/hyperstack"
	"cloud-adapter/core/catalog"
	"cloud-adapter/core/types"
)

// fakeCatalog returns canned answers and records the queries it receives
type fakeCatalog struct {
	defaultType string
	defaultErr  error

	exact    []string
	fuzzy    []string
	accelErr error

	regions    []types.Region
	regionsErr error

	prices map[string]decimal.Decimal
	accs   map[string]map[string]int

	calls   []string
	queries []catalog.AcceleratorQuery
}

func (f *fakeCatalog) RegionsForInstanceType(instanceType string, useSpot bool) ([]types.Region, error) {
	f.calls = append(f.calls, "RegionsForInstanceType")
	return f.regions, f.regionsErr
}

func (f *fakeCatalog) VCPUsMemForInstanceType(instanceType string) (float64, float64, bool) {
	f.calls = append(f.calls, "VCPUsMemForInstanceType")
	if instanceType == "n3-A100x1" {
		return 28, 120, true
	}
	return 0, 0, false
}

func (f *fakeCatalog) HourlyCost(instanceType string, useSpot bool, region, zone string) (decimal.Decimal, error) {
	f.calls = append(f.calls, "HourlyCost")
	p, ok := f.prices[instanceType]
	if !ok {
		return decimal.Zero, errNotListed
	}
	return p, nil
}

func (f *fakeCatalog) DefaultInstanceType(cpus, memory string, diskTier types.DiskTier) (string, error) {
	f.calls = append(f.calls, "DefaultInstanceType")
	return f.defaultType, f.defaultErr
}

func (f *fakeCatalog) AcceleratorsForInstanceType(instanceType string) (map[string]int, error) {
	f.calls = append(f.calls, "AcceleratorsForInstanceType")
	accs, ok := f.accs[instanceType]
	if !ok {
		return nil, errNotListed
	}
	return accs, nil
}

func (f *fakeCatalog) InstanceTypeForAccelerator(q catalog.AcceleratorQuery) ([]string, []string, error) {
	f.calls = append(f.calls, "InstanceTypeForAccelerator")
	f.queries = append(f.queries, q)
	return f.exact, f.fuzzy, f.accelErr
}

func (f *fakeCatalog) InstanceTypeExists(instanceType string) bool {
	f.calls = append(f.calls, "InstanceTypeExists")
	_, ok := f.accs[instanceType]
	return ok
}

func (f *fakeCatalog) ValidateRegionZone(region, zone string) error {
	f.calls = append(f.calls, "ValidateRegionZone")
	return nil
}

func (f *fakeCatalog) ListRegions() []types.Region {
	f.calls = append(f.calls, "ListRegions")
	return f.regions
}

type notListedError struct{}

func (notListedError) Error() string { return "not listed" }

var errNotListed error = notListedError{}

// fakeLister stands in for the compute API client
type fakeLister struct {
	instances []hsapi.Instance
	err       error
	calls     int
}

func (f *fakeLister) ListInstances(ctx context.Context) ([]hsapi.Instance, error) {
	f.calls++
	return f.instances, f.err
}

func newTestCloud(cat catalog.Client, opts ...Option) *Cloud {
	return New(cat, append([]Option{WithLogger(zap.NewNop())}, opts...)...)
}

var _ catalog.Client = (*fakeCatalog)(nil)
