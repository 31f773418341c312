// Package api - API types for the adapter service
// These types define the JSON contract of every endpoint.
// The API is stateless and never provisions anything.
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"cloud-adapter/core/types"
)

// ResolveResponse is the output of POST /resolve
type ResolveResponse struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`

	// Status is "feasible", "fuzzy" or "infeasible"
	Status string         `json:"status"`
	Cloud  types.Provider `json:"cloud"`

	Resources       []types.LaunchableResource `json:"resources"`
	FuzzyCandidates []string                   `json:"fuzzy_candidates"`
	Hint            string                     `json:"hint,omitempty"`

	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// RegionsResponse is the output of GET /regions
type RegionsResponse struct {
	Cloud        types.Provider `json:"cloud"`
	InstanceType string         `json:"instance_type,omitempty"`
	UseSpot      bool           `json:"use_spot"`
	Regions      []types.Region `json:"regions"`
}

// CostResponse is the output of GET /cost
type CostResponse struct {
	Cloud        types.Provider `json:"cloud"`
	InstanceType string         `json:"instance_type"`
	Region       string         `json:"region,omitempty"`
	Nodes        int            `json:"nodes"`
	Hours        string         `json:"hours"`

	InstanceHourly     *CostValue `json:"instance_hourly"`
	AcceleratorsHourly *CostValue `json:"accelerators_hourly"`
	Compute            *CostValue `json:"compute"`
	Egress             *CostValue `json:"egress"`
	Total              *CostValue `json:"total"`
}

// FeaturesResponse is the output of GET /features
type FeaturesResponse struct {
	Cloud                types.Provider           `json:"cloud"`
	Unsupported          map[types.Feature]string `json:"unsupported"`
	MaxClusterNameLength int                      `json:"max_cluster_name_length"`
}

// CredentialsResponse is the output of GET /credentials
type CredentialsResponse struct {
	Cloud   types.Provider        `json:"cloud"`
	Compute types.CredentialState `json:"compute"`
	Storage types.CredentialState `json:"storage"`
}

// CostValue represents a cost with currency
type CostValue struct {
	Amount   string `json:"amount"` // Decimal string for precision
	Currency string `json:"currency"`
}

// ResponseMetadata describes how a response was produced
type ResponseMetadata struct {
	InputHash     string `json:"input_hash"`
	EngineVersion string `json:"engine_version"`
	DurationMs    int64  `json:"duration_ms"`
}

// ErrorDetail provides error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func usd(d decimal.Decimal) *CostValue {
	return &CostValue{Amount: d.StringFixed(4), Currency: "USD"}
}
