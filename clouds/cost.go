package clouds

import (
	"github.com/shopspring/decimal"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// HoursPerMonth is the billing month used for monthly projections
const HoursPerMonth = 730

// RunCostInput describes a planned run of one resource
type RunCostInput struct {
	Resource types.LaunchableResource
	Nodes    int
	Hours    decimal.Decimal
	EgressGB float64
}

// RunCost is the projected cost of a run
type RunCost struct {
	InstanceHourly     decimal.Decimal `json:"instance_hourly"`
	AcceleratorsHourly decimal.Decimal `json:"accelerators_hourly"`
	Compute            decimal.Decimal `json:"compute"`
	Egress             decimal.Decimal `json:"egress"`
	Total              decimal.Decimal `json:"total"`
}

// EstimateRunCost prices a run through the provider contract:
// (instance + accelerators) per hour x nodes x hours, plus egress
func EstimateRunCost(p CloudProvider, in RunCostInput) (RunCost, error) {
	res := in.Resource
	if res.InstanceType == "" {
		return RunCost{}, errors.Input("resource has no instance type")
	}
	if in.Nodes <= 0 {
		return RunCost{}, errors.Newf(errors.TypeInput, "nodes must be positive, got %d", in.Nodes)
	}
	if in.Hours.IsNegative() {
		return RunCost{}, errors.Newf(errors.TypeInput, "hours must not be negative, got %s", in.Hours)
	}
	if in.EgressGB < 0 {
		return RunCost{}, errors.Newf(errors.TypeInput, "egress must not be negative, got %v", in.EgressGB)
	}

	instance, err := p.InstanceHourlyCost(res.InstanceType, res.UseSpot, res.Region, res.Zone)
	if err != nil {
		return RunCost{}, err
	}
	accs := p.AcceleratorsHourlyCost(res.Accelerators, res.UseSpot, res.Region, res.Zone)

	hourly := instance.Add(accs)
	compute := hourly.Mul(decimal.NewFromInt(int64(in.Nodes))).Mul(in.Hours)
	egress := p.EgressCost(in.EgressGB)

	return RunCost{
		InstanceHourly:     instance,
		AcceleratorsHourly: accs,
		Compute:            compute.Round(4),
		Egress:             egress,
		Total:              compute.Add(egress).Round(4),
	}, nil
}
