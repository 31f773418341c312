package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-adapter/clouds"
	"cloud-adapter/core/catalog"
	"cloud-adapter/core/types"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("html")
	assert.Error(t, err)
}

func TestCLIFormatterAlignsColumns(t *testing.T) {
	report := &Report{
		Title:   "demo",
		Columns: []string{"A", "B"},
		Rows:    [][]string{{"short", "1"}, {"much-longer-value", "2"}},
		Notes:   []string{"done"},
	}
	var buf bytes.Buffer
	f, err := New(FormatCLI)
	require.NoError(t, err)
	require.NoError(t, f.Render(&buf, report))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[1], "demo")
	assert.Equal(t, strings.Index(lines[3], "B"), strings.Index(lines[4], "1"))
	assert.Equal(t, "done", lines[7])
}

func TestJSONFormatterEncodesData(t *testing.T) {
	result := types.FeasibilityResult{
		Resources:       []types.LaunchableResource{types.NewLaunchableResource(types.ResourceRequest{InstanceType: "n3-A100x1"})},
		FuzzyCandidates: []string{},
	}
	report := ResolveReport(types.ProviderHyperstack, types.ResourceRequest{Accelerators: map[string]int{"A100": 1}}, result)

	var buf bytes.Buffer
	f, err := New(FormatJSON)
	require.NoError(t, err)
	require.NoError(t, f.Render(&buf, report))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "hyperstack", decoded["cloud"])
	assert.Contains(t, buf.String(), `"instance_type": "n3-A100x1"`)
}

func TestResolveReportFuzzy(t *testing.T) {
	report := ResolveReport(types.ProviderHyperstack, types.ResourceRequest{}, types.FeasibilityResult{
		Resources:       []types.LaunchableResource{},
		FuzzyCandidates: []string{"H100:8"},
		Hint:            "try H100:8",
	})
	assert.Empty(t, report.Rows)
	assert.Contains(t, report.Notes, "  H100:8")
	assert.Contains(t, report.Notes, "try H100:8")
}

func TestCostReport(t *testing.T) {
	in := clouds.RunCostInput{
		Resource: types.NewLaunchableResource(types.ResourceRequest{InstanceType: "n3-A100x1"}),
		Nodes:    1,
		Hours:    decimal.NewFromInt(10),
	}
	cost := clouds.RunCost{
		InstanceHourly: decimal.RequireFromString("1.35"),
		Compute:        decimal.RequireFromString("13.5"),
		Total:          decimal.RequireFromString("13.5"),
	}
	report := CostReport(types.ProviderHyperstack, in, cost)
	assert.Equal(t, []string{"TOTAL", "$13.50"}, report.Rows[len(report.Rows)-1])
}

func TestFeaturesReportIsSorted(t *testing.T) {
	report := FeaturesReport(types.ProviderHyperstack, map[types.Feature]string{
		types.FeatureSpotInstance: "no spot",
		types.FeatureImageID:      "no image",
	}, 43)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "image-id", report.Rows[0][0])
	assert.Equal(t, "spot-instance", report.Rows[1][0])
}

func TestCatalogReport(t *testing.T) {
	cat, err := catalog.DefaultHyperstack()
	require.NoError(t, err)

	report := CatalogReport(cat)
	assert.Len(t, report.Rows, len(cat.Offerings()))
	assert.NotEmpty(t, report.Notes)
}

func TestPlanReport(t *testing.T) {
	r := PlanReport(Plan{
		Cloud:         types.ProviderHyperstack,
		RequestedName: "a-very-long-cluster-name",
		ClusterName:   "a-very-long",
		InstanceType:  "n3-A100x1",
		Nodes:         2,
		Attempts: []PlanAttempt{
			{Region: "CANADA-1", Variables: map[string]any{"custom_resources": `{"A100":1}`}},
			{Region: "NORWAY-1", Variables: map[string]any{"custom_resources": `{"A100":1}`}},
		},
		CredentialMounts: map[string]string{"~/.hyperstack/api_key": "~/.hyperstack/api_key"},
	})

	require.Len(t, r.Rows, 2)
	assert.Equal(t, []string{"2", "NORWAY-1", "-", `{"A100":1}`}, r.Rows[1])
	assert.Contains(t, r.Notes, `Cluster name "a-very-long-cluster-name" shortened to "a-very-long"`)
	assert.Contains(t, r.Notes, "Mount ~/.hyperstack/api_key -> ~/.hyperstack/api_key")

	empty := PlanReport(Plan{ClusterName: "x", RequestedName: "x"})
	assert.Equal(t, []string{"No region offers this instance type."}, empty.Notes)
}
