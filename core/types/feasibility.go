package types

// FeasibilityResult is the outcome of resolving one request against one
// provider. Empty Resources with non-empty FuzzyCandidates means there was
// no exact match but close alternatives exist. An entirely empty result
// means nothing fits; it is not an error.
type FeasibilityResult struct {
	Resources       []LaunchableResource `json:"resources"`
	FuzzyCandidates []string             `json:"fuzzy_candidates"`
	Hint            string               `json:"hint,omitempty"`
}

// Feasible reports whether at least one resource can be launched
func (r FeasibilityResult) Feasible() bool {
	return len(r.Resources) > 0
}

// InstanceTypes returns the instance types of the resources in order
func (r FeasibilityResult) InstanceTypes() []string {
	out := make([]string, len(r.Resources))
	for i, res := range r.Resources {
		out[i] = res.InstanceType
	}
	return out
}
