// Package clouds - Provider capability contract
// This package defines the surface an orchestrator uses to talk to any
// cloud adapter. Adapters translate requests; they never provision.
package clouds

import (
	"context"

	"github.com/shopspring/decimal"

	"cloud-adapter/core/types"
)

// CloudProvider is the contract every cloud adapter implements
type CloudProvider interface {
	// Name returns the provider identifier used for dispatch
	Name() types.Provider

	// Resolve maps an abstract request to launchable resources
	Resolve(req types.ResourceRequest) (types.FeasibilityResult, error)

	// RegionsWithOffering returns the regions where instanceType can be
	// provisioned
	RegionsWithOffering(instanceType string, accelerators map[string]int, useSpot bool, region, zone string) ([]types.Region, error)

	// InstanceHourlyCost returns the hourly price of instanceType
	InstanceHourlyCost(instanceType string, useSpot bool, region, zone string) (decimal.Decimal, error)

	// AcceleratorsHourlyCost returns the hourly price billed for
	// accelerators on top of the instance price
	AcceleratorsHourlyCost(accelerators map[string]int, useSpot bool, region, zone string) decimal.Decimal

	// EgressCost returns the cost of sending gigabytes out of the cloud
	EgressCost(gigabytes float64) decimal.Decimal

	// CheckCredentials validates compute credentials
	CheckCredentials(ctx context.Context) (types.CredentialState, error)

	// CheckStorageCredentials validates storage credentials
	CheckStorageCredentials(ctx context.Context) (types.CredentialState, error)

	// UnsupportedFeatures maps each feature the provider cannot serve for
	// req to a diagnostic message
	UnsupportedFeatures(req types.ResourceRequest) map[types.Feature]string

	// MaxClusterNameLength returns the longest cluster name the provider
	// accepts, or 0 when there is no limit
	MaxClusterNameLength() int
}
