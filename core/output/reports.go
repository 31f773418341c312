package output

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"cloud-adapter/clouds"
	"cloud-adapter/core/catalog"
	"cloud-adapter/core/types"
)

// ResolveReport describes a feasibility result
func ResolveReport(cloud types.Provider, req types.ResourceRequest, result types.FeasibilityResult) *Report {
	r := &Report{
		Title:   fmt.Sprintf("%s: %s", cloud, req),
		Columns: []string{"INSTANCE TYPE", "REGION", "ZONE"},
		Data: map[string]interface{}{
			"cloud":   cloud,
			"request": req,
			"result":  result,
		},
	}
	for _, res := range result.Resources {
		r.Rows = append(r.Rows, []string{res.InstanceType, orAny(res.Region), orAny(res.Zone)})
	}
	switch {
	case result.Feasible():
		r.Notes = append(r.Notes, fmt.Sprintf("%d launchable resource(s)", len(result.Resources)))
	case len(result.FuzzyCandidates) > 0:
		r.Notes = append(r.Notes, "No exact match. Did you mean:")
		for _, c := range result.FuzzyCandidates {
			r.Notes = append(r.Notes, "  "+c)
		}
	default:
		r.Notes = append(r.Notes, "No launchable resource.")
	}
	if result.Hint != "" && !result.Feasible() {
		r.Notes = append(r.Notes, result.Hint)
	}
	return r
}

// RegionsReport lists the regions offering an instance type
func RegionsReport(cloud types.Provider, instanceType string, regions []types.Region) *Report {
	r := &Report{
		Title:   fmt.Sprintf("%s regions offering %s", cloud, instanceType),
		Columns: []string{"REGION", "ZONES"},
		Data: map[string]interface{}{
			"cloud":         cloud,
			"instance_type": instanceType,
			"regions":       regions,
		},
	}
	for _, reg := range regions {
		zones := "-"
		if len(reg.Zones) > 0 {
			zones = strconv.Itoa(len(reg.Zones))
		}
		r.Rows = append(r.Rows, []string{reg.Name, zones})
	}
	if len(regions) == 0 {
		r.Notes = append(r.Notes, "No region offers this instance type.")
	}
	return r
}

// CostReport breaks a run cost down by component
func CostReport(cloud types.Provider, in clouds.RunCostInput, cost clouds.RunCost) *Report {
	return &Report{
		Title:   fmt.Sprintf("%s cost of %d x %s for %s hours", cloud, in.Nodes, in.Resource.InstanceType, in.Hours),
		Columns: []string{"COMPONENT", "AMOUNT"},
		Rows: [][]string{
			{"Instance (hourly)", "$" + cost.InstanceHourly.StringFixed(4)},
			{"Accelerators (hourly)", "$" + cost.AcceleratorsHourly.StringFixed(4)},
			{"Compute", "$" + cost.Compute.StringFixed(2)},
			{"Egress", "$" + cost.Egress.StringFixed(2)},
			{"TOTAL", "$" + cost.Total.StringFixed(2)},
		},
		Data: map[string]interface{}{
			"cloud":         cloud,
			"instance_type": in.Resource.InstanceType,
			"region":        in.Resource.Region,
			"nodes":         in.Nodes,
			"hours":         in.Hours,
			"egress_gb":     in.EgressGB,
			"cost":          cost,
		},
	}
}

// FeaturesReport lists the features a provider cannot serve
func FeaturesReport(cloud types.Provider, unsupported map[types.Feature]string, maxNameLength int) *Report {
	r := &Report{
		Title:   fmt.Sprintf("%s unsupported features", cloud),
		Columns: []string{"FEATURE", "REASON"},
		Notes:   []string{fmt.Sprintf("Max cluster name length: %d", maxNameLength)},
		Data: map[string]interface{}{
			"cloud":                   cloud,
			"unsupported":             unsupported,
			"max_cluster_name_length": maxNameLength,
		},
	}
	for _, f := range slices.Sorted(maps.Keys(unsupported)) {
		r.Rows = append(r.Rows, []string{string(f), unsupported[f]})
	}
	return r
}

// CredentialsReport shows the compute and storage credential states
func CredentialsReport(cloud types.Provider, compute, storage types.CredentialState) *Report {
	r := &Report{
		Title:   fmt.Sprintf("%s credentials", cloud),
		Columns: []string{"SCOPE", "STATUS"},
		Rows: [][]string{
			{"compute", compute.Status.String()},
			{"storage", storage.Status.String()},
		},
		Data: map[string]interface{}{
			"cloud":   cloud,
			"compute": compute,
			"storage": storage,
		},
	}
	if compute.Message != "" {
		r.Notes = append(r.Notes, compute.Message)
	}
	if storage.Message != "" && storage.Message != compute.Message {
		r.Notes = append(r.Notes, storage.Message)
	}
	return r
}

// PlanAttempt is one region a provisioner would try
type PlanAttempt struct {
	Region    string         `json:"region"`
	Zones     []types.Zone   `json:"zones"`
	Variables map[string]any `json:"variables"`
}

// Plan is the provisioning plan for one cluster
type Plan struct {
	Cloud             types.Provider    `json:"cloud"`
	RequestedName     string            `json:"requested_name"`
	ClusterName       string            `json:"cluster_name"`
	InstanceType      string            `json:"instance_type"`
	Nodes             int               `json:"nodes"`
	Attempts          []PlanAttempt     `json:"attempts"`
	CredentialMounts  map[string]string `json:"credential_mounts"`
	AlternativesCount int               `json:"alternatives"`
}

// PlanReport lists the provisioning attempts in order
func PlanReport(plan Plan) *Report {
	r := &Report{
		Title:   fmt.Sprintf("%s plan for %s: %d x %s", plan.Cloud, plan.ClusterName, plan.Nodes, plan.InstanceType),
		Columns: []string{"ATTEMPT", "REGION", "ZONES", "CUSTOM RESOURCES"},
		Data:    plan,
	}
	for i, a := range plan.Attempts {
		zones := "-"
		if len(a.Zones) > 0 {
			zones = strconv.Itoa(len(a.Zones))
		}
		custom, _ := a.Variables["custom_resources"].(string)
		r.Rows = append(r.Rows, []string{strconv.Itoa(i + 1), a.Region, zones, orDash(custom)})
	}
	if len(plan.Attempts) == 0 {
		r.Notes = append(r.Notes, "No region offers this instance type.")
	}
	if plan.ClusterName != plan.RequestedName {
		r.Notes = append(r.Notes, fmt.Sprintf("Cluster name %q shortened to %q", plan.RequestedName, plan.ClusterName))
	}
	if plan.AlternativesCount > 0 {
		r.Notes = append(r.Notes, fmt.Sprintf("%d more instance type(s) also fit", plan.AlternativesCount))
	}
	for _, remote := range slices.Sorted(maps.Keys(plan.CredentialMounts)) {
		r.Notes = append(r.Notes, fmt.Sprintf("Mount %s -> %s", plan.CredentialMounts[remote], remote))
	}
	return r
}

type offeringView struct {
	InstanceType string  `json:"instance_type"`
	Accelerator  string  `json:"accelerator,omitempty"`
	VCPUs        float64 `json:"vcpus"`
	MemoryGiB    float64 `json:"memory_gib"`
	Price        string  `json:"price"`
	SpotPrice    string  `json:"spot_price,omitempty"`
	Region       string  `json:"region"`
}

// CatalogReport lists catalog offerings
func CatalogReport(cat *catalog.Catalog) *Report {
	stats := cat.Stats()
	r := &Report{
		Title:   fmt.Sprintf("%s catalog", cat.Cloud()),
		Columns: []string{"INSTANCE TYPE", "ACCELERATOR", "VCPUS", "MEMORY", "PRICE/HR", "REGION"},
		Notes: []string{fmt.Sprintf("%d offerings, %d instance types, %d regions",
			stats.Offerings, stats.InstanceTypes, stats.Regions)},
	}
	views := make([]offeringView, 0, stats.Offerings)
	for _, o := range cat.Offerings() {
		v := offeringView{
			InstanceType: o.InstanceType,
			VCPUs:        o.VCPUs,
			MemoryGiB:    o.MemoryGiB,
			Price:        o.Price.String(),
			Region:       o.Region,
		}
		if o.HasAccelerator() {
			v.Accelerator = fmt.Sprintf("%s:%d", o.AcceleratorName, o.AcceleratorCount)
		}
		if o.SpotPrice != nil {
			v.SpotPrice = o.SpotPrice.String()
		}
		views = append(views, v)
		r.Rows = append(r.Rows, []string{
			v.InstanceType,
			orDash(v.Accelerator),
			strconv.FormatFloat(v.VCPUs, 'f', -1, 64),
			strconv.FormatFloat(v.MemoryGiB, 'f', -1, 64) + " GiB",
			"$" + o.Price.StringFixed(2),
			v.Region,
		})
	}
	r.Data = map[string]interface{}{
		"cloud":     cat.Cloud(),
		"stats":     stats,
		"offerings": views,
	}
	return r
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
