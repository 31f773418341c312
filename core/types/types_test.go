package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccelerator(t *testing.T) {
	name, count, ok, err := ResourceRequest{}.Accelerator()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, name)
	assert.Zero(t, count)

	name, count, ok, err = ResourceRequest{Accelerators: map[string]int{"A100": 2}}.Accelerator()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A100", name)
	assert.Equal(t, 2, count)

	_, _, _, err = ResourceRequest{Accelerators: map[string]int{"A100": 1, "H100": 1}}.Accelerator()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A100:1,H100:1")
}

func TestCopyNeverAliases(t *testing.T) {
	req := ResourceRequest{
		Accelerators:  map[string]int{"A100": 1},
		ExtraFeatures: []Feature{FeatureMultiNode},
		CPUs:          "8+",
	}
	cp := req.Copy()
	cp.Accelerators["A100"] = 8
	cp.ExtraFeatures[0] = FeatureStop

	assert.Equal(t, 1, req.Accelerators["A100"])
	assert.Equal(t, FeatureMultiNode, req.ExtraFeatures[0])

	launch := NewLaunchableResource(req,
		WithCloud(ProviderHyperstack),
		WithInstanceType("n3-A100x1"),
		ClearAccelerators(),
		ClearCPUs(),
		ClearMemory(),
	)
	assert.Equal(t, "n3-A100x1", launch.InstanceType)
	assert.Nil(t, launch.Accelerators)
	assert.Empty(t, launch.CPUs)
	assert.Equal(t, "8+", req.CPUs)
	assert.True(t, launch.IsLaunchable())
	assert.False(t, req.IsLaunchable())
}

func TestEqual(t *testing.T) {
	a := ResourceRequest{InstanceType: "x", Accelerators: map[string]int{"A100": 1}}
	assert.True(t, a.Equal(a.Copy()))
	assert.False(t, a.Equal(a.Copy(ClearAccelerators())))
}

func TestRequestedFeatures(t *testing.T) {
	req := ResourceRequest{
		UseSpot:       true,
		ImageID:       "img",
		CloneDiskFrom: "c",
		DiskTier:      DiskTierHigh,
		ExtraFeatures: []Feature{FeatureStorageMounting, FeatureSpotInstance, FeatureStorageMounting},
	}
	assert.Equal(t, []Feature{
		FeatureCloneDiskFromCluster,
		FeatureSpotInstance,
		FeatureImageID,
		FeatureCustomDiskTier,
		FeatureStorageMounting,
	}, req.RequestedFeatures())

	assert.Empty(t, ResourceRequest{DiskTier: DiskTierBest}.RequestedFeatures())
}

func TestParseAccelerators(t *testing.T) {
	tests := []struct {
		in      string
		want    map[string]int
		wantErr bool
	}{
		{"", nil, false},
		{"A100", map[string]int{"A100": 1}, false},
		{"A100:8", map[string]int{"A100": 8}, false},
		{"A100:1, H100:2", map[string]int{"A100": 1, "H100": 2}, false},
		{"A100:0", nil, true},
		{"A100:two", nil, true},
		{":1", nil, true},
		{"A100,A100:2", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAccelerators(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "A100:1,H100:2", FormatAccelerators(map[string]int{"H100": 2, "A100": 1}))
}

func TestProviderAndDiskTier(t *testing.T) {
	assert.True(t, Provider("HyperStack").Matches(ProviderHyperstack))
	assert.False(t, Provider("aws").Matches(ProviderHyperstack))

	assert.True(t, DiskTierUltra.IsValid())
	assert.False(t, DiskTier("fast").IsValid())
	assert.False(t, DiskTierDefault.IsCustom())
	assert.False(t, DiskTierBest.IsCustom())
	assert.True(t, DiskTierLow.IsCustom())
}

func TestCredentialStateJSON(t *testing.T) {
	data, err := json.Marshal(UnreachableCredentials("try again"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"network_unreachable","message":"try again"}`, string(data))

	data, err = json.Marshal(ValidCredentials())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"valid"}`, string(data))
	assert.True(t, ValidCredentials().OK())
	assert.False(t, MissingCredentials("x").OK())
}

func TestFeasibilityResult(t *testing.T) {
	r := FeasibilityResult{Resources: []LaunchableResource{
		NewLaunchableResource(ResourceRequest{InstanceType: "a"}),
		NewLaunchableResource(ResourceRequest{InstanceType: "b"}),
	}}
	assert.True(t, r.Feasible())
	assert.Equal(t, []string{"a", "b"}, r.InstanceTypes())
	assert.False(t, FeasibilityResult{}.Feasible())

	assert.Equal(t, []string{"US-1"}, RegionNames([]Region{{Name: "US-1"}}))
}
