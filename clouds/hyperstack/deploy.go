package hyperstack

import (
	"encoding/json"
	"fmt"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// DeployVariables returns the template variables a provisioner needs to
// launch res in region. custom_resources is the JSON encoding of the
// instance type's accelerators, empty for CPU-only types.
func (c *Cloud) DeployVariables(res types.LaunchableResource, region string, zones []types.Zone, numNodes int) (map[string]any, error) {
	if res.InstanceType == "" {
		return nil, errors.Contract("resource is not launchable: no instance type")
	}
	if zones != nil {
		return nil, errors.Contract("%s does not support zones, got %d", displayName, len(zones))
	}
	if numNodes <= 0 {
		return nil, errors.Contract("num nodes must be positive, got %d", numNodes)
	}

	accs, err := c.AcceleratorsFromInstanceType(res.InstanceType)
	if err != nil {
		return nil, err
	}

	vars := map[string]any{
		"instance_type":    res.InstanceType,
		"custom_resources": "",
		"region":           region,
		"num_nodes":        numNodes,
	}
	if len(accs) > 0 {
		data, err := json.Marshal(accs)
		if err != nil {
			return nil, errors.Internal(fmt.Sprintf("encode accelerators of %s", res.InstanceType), err)
		}
		vars["custom_resources"] = string(data)
		vars["docker_run_options"] = []string{"--gpus all"}
	}
	return vars, nil
}
