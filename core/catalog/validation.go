// Package catalog - Catalog validation
// Ensures catalog integrity and enforces invariants.
package catalog

import (
	"fmt"

	"go.uber.org/multierr"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*Offering) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateIdentity,
		validateSizing,
		validatePricing,
		validateAccelerator,
	}
}

// Validate checks a catalog against validation rules. All failures are
// returned together; use multierr.Errors to split them.
func (c *Catalog) Validate(rules []ValidationRule) error {
	var err error
	seen := make(map[string]struct{}, len(c.offerings))

	for i := range c.offerings {
		o := &c.offerings[i]
		for _, rule := range rules {
			if rerr := rule(o); rerr != nil {
				err = multierr.Append(err, fmt.Errorf("%s/%s: %w", o.InstanceType, o.Region, rerr))
			}
		}
		key := o.InstanceType + "/" + o.Region
		if _, dup := seen[key]; dup {
			err = multierr.Append(err, fmt.Errorf("%s: duplicate offering", key))
		}
		seen[key] = struct{}{}
	}

	return err
}

// validateIdentity ensures the offering can be looked up
func validateIdentity(o *Offering) error {
	if o.InstanceType == "" {
		return fmt.Errorf("instance type is required")
	}
	if o.Region == "" {
		return fmt.Errorf("region is required")
	}
	return nil
}

// validateSizing ensures vCPU and memory are usable by constraint filters
func validateSizing(o *Offering) error {
	if o.VCPUs <= 0 {
		return fmt.Errorf("vcpus must be positive, got %v", o.VCPUs)
	}
	if o.MemoryGiB <= 0 {
		return fmt.Errorf("memory_gib must be positive, got %v", o.MemoryGiB)
	}
	return nil
}

// validatePricing ensures prices are non-negative
func validatePricing(o *Offering) error {
	if o.Price.IsNegative() {
		return fmt.Errorf("price must not be negative, got %s", o.Price)
	}
	if o.SpotPrice != nil && o.SpotPrice.IsNegative() {
		return fmt.Errorf("spot price must not be negative, got %s", o.SpotPrice)
	}
	return nil
}

// validateAccelerator ensures an accelerator always has a count
func validateAccelerator(o *Offering) error {
	if o.AcceleratorName == "" && o.AcceleratorCount != 0 {
		return fmt.Errorf("accelerator count %d without a name", o.AcceleratorCount)
	}
	if o.AcceleratorName != "" && o.AcceleratorCount <= 0 {
		return fmt.Errorf("accelerator %s must have a positive count", o.AcceleratorName)
	}
	return nil
}
