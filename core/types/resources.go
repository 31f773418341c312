package types

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// ResourceRequest is a provider-agnostic description of what a task needs.
// Empty strings and nil maps mean "unset".
type ResourceRequest struct {
	// Cloud pins the request to one provider
	Cloud Provider `json:"cloud,omitempty"`

	// InstanceType is a concrete provider instance type
	InstanceType string `json:"instance_type,omitempty"`

	// Accelerators maps accelerator kind to count. At most one entry.
	Accelerators map[string]int `json:"accelerators,omitempty"`

	// CPUs is a vCPU constraint such as "8" or "8+"
	CPUs string `json:"cpus,omitempty"`

	// Memory is a memory constraint in GiB such as "32", "32+" or "4x"
	Memory string `json:"memory,omitempty"`

	UseSpot  bool     `json:"use_spot,omitempty"`
	DiskTier DiskTier `json:"disk_tier,omitempty"`
	Region   string   `json:"region,omitempty"`
	Zone     string   `json:"zone,omitempty"`

	// ImageID requests a specific machine image
	ImageID string `json:"image_id,omitempty"`

	// CloneDiskFrom names a cluster whose disk should be cloned
	CloneDiskFrom string `json:"clone_disk_from,omitempty"`

	// ExtraFeatures lists features the caller needs that cannot be
	// derived from the fields above (host controllers, storage mounts)
	ExtraFeatures []Feature `json:"extra_features,omitempty"`
}

// Accelerator returns the single accelerator entry of the request.
// ok is false when there is none; an error is returned when there is
// more than one.
func (r ResourceRequest) Accelerator() (name string, count int, ok bool, err error) {
	switch len(r.Accelerators) {
	case 0:
		return "", 0, false, nil
	case 1:
		for name, count := range r.Accelerators {
			return name, count, true, nil
		}
		return "", 0, false, nil
	default:
		return "", 0, false, fmt.Errorf("expected at most one accelerator, got %d (%s)",
			len(r.Accelerators), FormatAccelerators(r.Accelerators))
	}
}

// IsLaunchable reports whether the request already names an instance type
func (r ResourceRequest) IsLaunchable() bool {
	return r.InstanceType != ""
}

// CopyOption updates one field of a copied request
type CopyOption func(*ResourceRequest)

// WithCloud sets the provider
func WithCloud(p Provider) CopyOption {
	return func(r *ResourceRequest) { r.Cloud = p }
}

// WithInstanceType sets the instance type
func WithInstanceType(instanceType string) CopyOption {
	return func(r *ResourceRequest) { r.InstanceType = instanceType }
}

// ClearAccelerators removes the accelerator request
func ClearAccelerators() CopyOption {
	return func(r *ResourceRequest) { r.Accelerators = nil }
}

// ClearCPUs removes the vCPU constraint
func ClearCPUs() CopyOption {
	return func(r *ResourceRequest) { r.CPUs = "" }
}

// ClearMemory removes the memory constraint
func ClearMemory() CopyOption {
	return func(r *ResourceRequest) { r.Memory = "" }
}

// Copy returns a deep copy of r with opts applied. r is never modified.
func (r ResourceRequest) Copy(opts ...CopyOption) ResourceRequest {
	out := r
	if r.Accelerators != nil {
		out.Accelerators = maps.Clone(r.Accelerators)
	}
	if r.ExtraFeatures != nil {
		out.ExtraFeatures = slices.Clone(r.ExtraFeatures)
	}
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

// Equal reports whether two requests describe the same resources
func (r ResourceRequest) Equal(o ResourceRequest) bool {
	return r.Cloud == o.Cloud &&
		r.InstanceType == o.InstanceType &&
		maps.Equal(r.Accelerators, o.Accelerators) &&
		r.CPUs == o.CPUs &&
		r.Memory == o.Memory &&
		r.UseSpot == o.UseSpot &&
		r.DiskTier == o.DiskTier &&
		r.Region == o.Region &&
		r.Zone == o.Zone &&
		r.ImageID == o.ImageID &&
		r.CloneDiskFrom == o.CloneDiskFrom &&
		slices.Equal(r.ExtraFeatures, o.ExtraFeatures)
}

// String renders the request the way users type it
func (r ResourceRequest) String() string {
	var parts []string
	if r.Cloud != "" {
		parts = append(parts, string(r.Cloud))
	}
	if r.InstanceType != "" {
		parts = append(parts, r.InstanceType)
	}
	if len(r.Accelerators) > 0 {
		parts = append(parts, FormatAccelerators(r.Accelerators))
	}
	if r.CPUs != "" {
		parts = append(parts, "cpus="+r.CPUs)
	}
	if r.Memory != "" {
		parts = append(parts, "mem="+r.Memory)
	}
	if r.UseSpot {
		parts = append(parts, "[spot]")
	}
	if r.Region != "" {
		parts = append(parts, "region="+r.Region)
	}
	if r.Zone != "" {
		parts = append(parts, "zone="+r.Zone)
	}
	if len(parts) == 0 {
		return "<empty>"
	}
	return strings.Join(parts, " ")
}

// LaunchableResource is a request refined to a concrete instance type.
// Accelerators, CPUs and Memory are cleared: the instance type implies them.
type LaunchableResource struct {
	ResourceRequest
}

// NewLaunchableResource builds a launchable copy of req
func NewLaunchableResource(req ResourceRequest, opts ...CopyOption) LaunchableResource {
	return LaunchableResource{ResourceRequest: req.Copy(opts...)}
}

// FormatAccelerators renders an accelerator map as "A100:1,H100:8"
func FormatAccelerators(accs map[string]int) string {
	names := make([]string, 0, len(accs))
	for name := range accs {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%d", name, accs[name]))
	}
	return strings.Join(parts, ",")
}

// ParseAccelerators parses "A100:1" or "A100" (count 1) into a map.
// Several comma-separated entries are accepted so the caller sees a
// proper contract error downstream instead of a silently dropped entry.
func ParseAccelerators(s string) (map[string]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	accs := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		name, countStr, found := strings.Cut(strings.TrimSpace(part), ":")
		if name == "" {
			return nil, fmt.Errorf("invalid accelerator %q", part)
		}
		count := 1
		if found {
			n, err := strconv.Atoi(countStr)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid accelerator count in %q", part)
			}
			count = n
		}
		if _, dup := accs[name]; dup {
			return nil, fmt.Errorf("duplicate accelerator %q", name)
		}
		accs[name] = count
	}
	return accs, nil
}
