package types

// Feature names a provider capability a request may depend on
type Feature string

const (
	FeatureCloneDiskFromCluster Feature = "clone-disk-from-cluster"
	FeatureSpotInstance         Feature = "spot-instance"
	FeatureImageID              Feature = "image-id"
	FeatureCustomDiskTier       Feature = "custom-disk-tier"
	FeatureHostControllers      Feature = "host-controllers"
	FeatureStorageMounting      Feature = "storage-mounting"
	FeatureStop                 Feature = "stop"
	FeatureMultiNode            Feature = "multi-node"
	FeatureOpenPorts            Feature = "open-ports"
)

// String returns the feature tag
func (f Feature) String() string {
	return string(f)
}

// RequestedFeatures returns the features r depends on, in a fixed order
func (r ResourceRequest) RequestedFeatures() []Feature {
	var features []Feature
	if r.CloneDiskFrom != "" {
		features = append(features, FeatureCloneDiskFromCluster)
	}
	if r.UseSpot {
		features = append(features, FeatureSpotInstance)
	}
	if r.ImageID != "" {
		features = append(features, FeatureImageID)
	}
	if r.DiskTier.IsCustom() {
		features = append(features, FeatureCustomDiskTier)
	}
	for _, f := range r.ExtraFeatures {
		if !containsFeature(features, f) {
			features = append(features, f)
		}
	}
	return features
}

func containsFeature(features []Feature, f Feature) bool {
	for _, existing := range features {
		if existing == f {
			return true
		}
	}
	return false
}
