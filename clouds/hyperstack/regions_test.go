package hyperstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

func threeRegions() []types.Region {
	return []types.Region{{Name: "NORWAY-1"}, {Name: "CANADA-1"}, {Name: "US-1"}}
}

func TestRegionsWithOffering(t *testing.T) {
	c := newTestCloud(&fakeCatalog{regions: threeRegions()})

	regions, err := c.RegionsWithOffering("n3-A100x1", nil, false, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"NORWAY-1", "CANADA-1", "US-1"}, types.RegionNames(regions))

	regions, err = c.RegionsWithOffering("n3-A100x1", nil, false, "CANADA-1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"CANADA-1"}, types.RegionNames(regions))

	regions, err = c.RegionsWithOffering("n3-A100x1", nil, false, "EU-9", "")
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestRegionsWithOfferingSpotIsAlwaysEmpty(t *testing.T) {
	inputs := []struct {
		instanceType string
		accs         map[string]int
		region       string
	}{
		{"n3-A100x1", nil, ""},
		{"n3-A100x1", map[string]int{"A100": 1}, "CANADA-1"},
		{"", nil, ""},
		{"missing", map[string]int{"H100": 8}, "US-1"},
	}
	for _, in := range inputs {
		cat := &fakeCatalog{regions: threeRegions()}
		c := newTestCloud(cat)

		regions, err := c.RegionsWithOffering(in.instanceType, in.accs, true, in.region, "")
		require.NoError(t, err)
		assert.NotNil(t, regions)
		assert.Empty(t, regions)
		assert.Empty(t, cat.calls)
	}
}

func TestRegionsWithOfferingRejectsZone(t *testing.T) {
	c := newTestCloud(&fakeCatalog{regions: threeRegions()})

	_, err := c.RegionsWithOffering("n3-A100x1", nil, false, "CANADA-1", "CANADA-1a")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeContract))

	_, err = c.RegionsWithOffering("n3-A100x1", nil, true, "", "CANADA-1a")
	assert.True(t, errors.IsType(err, errors.TypeContract))
}

func TestRegionsWithOfferingRejectsZonedCatalog(t *testing.T) {
	zoned := []types.Region{
		{Name: "CANADA-1"},
		{Name: "US-1", Zones: []types.Zone{{Name: "US-1a", Region: "US-1"}}},
	}
	c := newTestCloud(&fakeCatalog{regions: zoned})

	_, err := c.RegionsWithOffering("n3-A100x1", nil, false, "", "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeContract))

	// the zoned region is filtered out before the check
	regions, err := c.RegionsWithOffering("n3-A100x1", nil, false, "CANADA-1", "")
	require.NoError(t, err)
	assert.Len(t, regions, 1)
}

func TestRegionsWithOfferingWrapsCatalogError(t *testing.T) {
	c := newTestCloud(&fakeCatalog{regionsErr: errNotListed})

	_, err := c.RegionsWithOffering("n3-A100x1", nil, false, "", "")
	assert.True(t, errors.IsType(err, errors.TypeCatalog))
}

func TestZonesProvisionLoop(t *testing.T) {
	c := newTestCloud(&fakeCatalog{regions: threeRegions()})

	seq, err := c.ZonesProvisionLoop("", 2, "n3-A100x1", nil, false)
	require.NoError(t, err)

	var attempts int
	for zones := range seq {
		assert.Nil(t, zones)
		attempts++
	}
	assert.Equal(t, 3, attempts)

	// stopping early is honoured
	attempts = 0
	for range seq {
		attempts++
		break
	}
	assert.Equal(t, 1, attempts)

	seq, err = c.ZonesProvisionLoop("", 1, "n3-A100x1", nil, true)
	require.NoError(t, err)
	for range seq {
		t.Fatal("spot must yield nothing")
	}

	_, err = c.ZonesProvisionLoop("", 0, "n3-A100x1", nil, false)
	assert.True(t, errors.IsType(err, errors.TypeContract))
}

func TestCatalogPassThroughs(t *testing.T) {
	cat := &fakeCatalog{
		regions: threeRegions(),
		accs:    map[string]map[string]int{"n3-A100x1": {"A100": 1}, "n1-cpu-small": nil},
	}
	c := newTestCloud(cat)

	assert.Len(t, c.Regions(), 3)
	assert.NoError(t, c.ValidateRegionZone("CANADA-1", ""))
	assert.True(t, c.InstanceTypeExists("n3-A100x1"))
	assert.False(t, c.InstanceTypeExists("n3-Z100x1"))

	vcpus, mem, ok := c.VCPUsMem("n3-A100x1")
	require.True(t, ok)
	assert.Equal(t, 28.0, vcpus)
	assert.Equal(t, 120.0, mem)

	accs, err := c.AcceleratorsFromInstanceType("n3-A100x1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A100": 1}, accs)

	_, err = c.AcceleratorsFromInstanceType("missing")
	assert.True(t, errors.IsType(err, errors.TypeCatalog))

	assert.Nil(t, c.UserIdentities())
	assert.Equal(t, "Hyperstack", c.String())
	assert.Equal(t, types.ProviderHyperstack, c.Name())
}
