package clouds

import (
	"strings"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// CheckFeatureSupport returns a CAPABILITY_VIOLATION error when req needs a
// feature p cannot serve. The error message joins the diagnostics of every
// offending feature in the order the request lists them.
func CheckFeatureSupport(p CloudProvider, req types.ResourceRequest) error {
	requested := req.RequestedFeatures()
	if len(requested) == 0 {
		return nil
	}
	unsupported := p.UnsupportedFeatures(req)

	var (
		offending   []string
		diagnostics []string
	)
	for _, f := range requested {
		if msg, ok := unsupported[f]; ok {
			offending = append(offending, string(f))
			diagnostics = append(diagnostics, msg)
		}
	}
	if len(offending) == 0 {
		return nil
	}
	return errors.New(errors.TypeCapability, strings.Join(diagnostics, " ")).
		WithContext("cloud", string(p.Name())).
		WithContext("features", offending)
}

// TruncateClusterName shortens name to the provider's limit. A limit of 0
// leaves the name unchanged.
func TruncateClusterName(p CloudProvider, name string) string {
	limit := p.MaxClusterNameLength()
	if limit <= 0 || len(name) <= limit {
		return name
	}
	return strings.TrimRight(name[:limit], "-")
}
