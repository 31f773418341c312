package types

// Zone is an availability zone inside a region
type Zone struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Region is a geographic offering location. Zones is nil for providers
// without zone granularity.
type Region struct {
	Name  string `json:"name"`
	Zones []Zone `json:"zones,omitempty"`
}

// String returns the region name
func (r Region) String() string {
	return r.Name
}

// RegionNames returns the names of regions in order
func RegionNames(regions []Region) []string {
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.Name
	}
	return names
}
