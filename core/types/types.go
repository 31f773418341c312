// Package types defines core domain types shared across all layers.
// This package contains NO provider logic - only type definitions.
package types

import "strings"

// Provider represents a cloud provider
type Provider string

const (
	ProviderHyperstack Provider = "hyperstack"
	ProviderUnknown    Provider = "unknown"
)

// String returns the string representation of the provider
func (p Provider) String() string {
	return string(p)
}

// Matches reports whether p names the same provider as other, ignoring case
func (p Provider) Matches(other Provider) bool {
	return strings.EqualFold(string(p), string(other))
}

// DiskTier is the requested disk performance class
type DiskTier string

const (
	DiskTierDefault DiskTier = ""
	DiskTierLow     DiskTier = "low"
	DiskTierMedium  DiskTier = "medium"
	DiskTierHigh    DiskTier = "high"
	DiskTierUltra   DiskTier = "ultra"
	DiskTierBest    DiskTier = "best"
)

// IsValid checks if the tier is a known tier
func (t DiskTier) IsValid() bool {
	switch t {
	case DiskTierDefault, DiskTierLow, DiskTierMedium, DiskTierHigh, DiskTierUltra, DiskTierBest:
		return true
	default:
		return false
	}
}

// IsCustom reports whether the tier pins a specific class rather than
// leaving the choice to the provider
func (t DiskTier) IsCustom() bool {
	return t != DiskTierDefault && t != DiskTierBest
}
