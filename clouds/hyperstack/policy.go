package hyperstack

import (
	"maps"

	"cloud-adapter/core/types"
)

// maxClusterNameLength is the API's 50-character VM name limit minus room
// for the "-head" and "-worker" suffixes
const maxClusterNameLength = 43

var unsupportedFeatures = map[types.Feature]string{
	types.FeatureCloneDiskFromCluster: "Migrating disk is currently not supported on " + displayName + ".",
	types.FeatureSpotInstance:         "Spot instances are not supported in " + displayName + ".",
	types.FeatureImageID:              "Specifying image ID is not supported in " + displayName + ".",
	types.FeatureCustomDiskTier:       "Custom disk tiers are not supported in " + displayName + ".",
	types.FeatureHostControllers:      "Host controllers are not supported in " + displayName + ".",
	types.FeatureStorageMounting:      "Storage mounting is currently not supported in " + displayName + ".",
}

// UnsupportedFeatures implements clouds.CloudProvider. The table is the same
// for every request; the caller gets its own copy.
func (c *Cloud) UnsupportedFeatures(_ types.ResourceRequest) map[types.Feature]string {
	return maps.Clone(unsupportedFeatures)
}

// MaxClusterNameLength implements clouds.CloudProvider
func (c *Cloud) MaxClusterNameLength() int {
	return maxClusterNameLength
}
