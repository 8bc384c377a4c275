package pipeline

import "testing"

func TestSupportsPodIdentity(t *testing.T) {
	scenarios := []struct {
		Name           string
		ClusterVersion string
		Expect         bool
	}{
		{
			Name:           "a cluster below the minimum version does not support Pod Identity",
			ClusterVersion: "1.23",
			Expect:         false,
		},
		{
			Name:           "the minimum version supports Pod Identity",
			ClusterVersion: "1.24",
			Expect:         true,
		},
		{
			Name:           "a recent cluster supports Pod Identity",
			ClusterVersion: "1.31",
			Expect:         true,
		},
		{
			Name:           "an unparsable version is assumed to support Pod Identity",
			ClusterVersion: "not-a-version",
			Expect:         true,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			result := SupportsPodIdentity(scenario.ClusterVersion)
			if result != scenario.Expect {
				t.Errorf("Expected %v, got %v", scenario.Expect, result)
			}
		})
	}
}

func TestDefaultAddonCatalogPinsVersions(t *testing.T) {
	expected := map[string]string{
		"coredns":                "v1.11.3-eksbuild.2",
		"aws-ebs-csi-driver":     "v1.32.0-eksbuild.1",
		"eks-pod-identity-agent": "v1.3.4-eksbuild.1",
		"karpenter":              "1.0.0",
	}

	catalog := map[string]Addon{}
	for _, addon := range DefaultAddonCatalog() {
		catalog[addon.Name] = addon
	}

	for name, version := range expected {
		addon, found := catalog[name]
		if !found {
			t.Errorf("add-on %s is missing from the catalog", name)
			continue
		}
		if addon.Version != version {
			t.Errorf("add-on %s: expected version %s, got %s", name, version, addon.Version)
		}
	}

	if !catalog["coredns"].Managed() {
		t.Errorf("coredns should be a managed add-on")
	}
	if catalog["karpenter"].Managed() {
		t.Errorf("karpenter should be a Helm release")
	}
}
