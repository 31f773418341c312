package hyperstack

import (
	"github.com/shopspring/decimal"

	"cloud-adapter/internal/errors"
)

// InstanceHourlyCost implements clouds.CloudProvider
func (c *Cloud) InstanceHourlyCost(instanceType string, useSpot bool, region, zone string) (decimal.Decimal, error) {
	cost, err := c.catalog.HourlyCost(instanceType, useSpot, region, zone)
	if err != nil {
		return decimal.Zero, errors.Catalog("hourly cost of "+instanceType, err).
			WithContext("use_spot", useSpot).
			WithContext("region", region)
	}
	return cost, nil
}

// AcceleratorsHourlyCost implements clouds.CloudProvider. Accelerators are
// priced inside the instance type.
func (c *Cloud) AcceleratorsHourlyCost(map[string]int, bool, string, string) decimal.Decimal {
	return decimal.Zero
}

// EgressCost implements clouds.CloudProvider. Hyperstack does not meter egress.
func (c *Cloud) EgressCost(float64) decimal.Decimal {
	return decimal.Zero
}
