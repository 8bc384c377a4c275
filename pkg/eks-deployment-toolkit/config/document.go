package config

import "fmt"

// Document is the parsed deployment configuration. It is a plain nested
// mapping so that keys the toolkit does not know about survive loading,
// resolution and re-serialization untouched.
type Document map[string]any

// DeploymentEntry describes where one cluster environment is provisioned:
// an account label from the "accounts" section and the regions to deploy to.
type DeploymentEntry struct {
	Account string
	Regions []string
}

// Deployments returns the entries under eks.deployment.
func (d Document) Deployments() ([]DeploymentEntry, error) {
	eksSection, ok := d.Section("eks")
	if !ok {
		return nil, &ConfigError{Key: "eks", Reason: "section is missing"}
	}
	rawDeployments, ok := eksSection["deployment"].([]any)
	if !ok {
		return nil, &ConfigError{Key: "eks.deployment", Reason: "must be a list of {account, regions} entries"}
	}

	deployments := make([]DeploymentEntry, 0, len(rawDeployments))
	for i, rawDeployment := range rawDeployments {
		entry, ok := rawDeployment.(map[string]any)
		if !ok {
			return nil, &ConfigError{Key: fmt.Sprintf("eks.deployment[%d]", i), Reason: "must be a mapping"}
		}
		account, ok := entry["account"].(string)
		if !ok || account == "" {
			return nil, &ConfigError{Key: fmt.Sprintf("eks.deployment[%d].account", i), Reason: "must be a non-empty account label"}
		}
		rawRegions, ok := entry["regions"].([]any)
		if !ok {
			return nil, &ConfigError{Key: fmt.Sprintf("eks.deployment[%d].regions", i), Reason: "must be a list of region names"}
		}
		regions := make([]string, 0, len(rawRegions))
		for _, rawRegion := range rawRegions {
			region, ok := rawRegion.(string)
			if !ok {
				return nil, &ConfigError{Key: fmt.Sprintf("eks.deployment[%d].regions", i), Reason: "must be a list of region names"}
			}
			regions = append(regions, region)
		}
		deployments = append(deployments, DeploymentEntry{Account: account, Regions: regions})
	}
	return deployments, nil
}

// Section returns the mapping stored under the given top-level key.
func (d Document) Section(key string) (map[string]any, bool) {
	section, ok := d[key].(map[string]any)
	return section, ok
}

// StringAt walks the document along the given key path and returns the
// string stored at the end of it.
func (d Document) StringAt(path ...string) (string, bool) {
	current := map[string]any(d)
	for i, key := range path {
		if i == len(path)-1 {
			value, ok := current[key].(string)
			return value, ok
		}
		next, ok := current[key].(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

// VPCID returns the VPC identifier discovered (or statically configured)
// for the given account label and region.
func (d Document) VPCID(accountLabel, region string) (string, bool) {
	return d.StringAt("accounts", accountLabel, "vpc", region)
}
