package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigJSON = `{
	"pipeline": {
		"account": "tooling",
		"region": "eu-west-1",
		"repositoryname": "eks-deployment-toolkit",
		"branchname": "main"
	},
	"accounts": {
		"tooling": {"id": "111111111111"},
		"dev": {"id": "222222222222"}
	},
	"eks": {
		"cluster_name": "platform-eks",
		"target_region": "eu-west-1",
		"deployment": [
			{"account": "dev", "regions": ["eu-west-1"]}
		]
	},
	"admin": {
		"key_name": "eks-admin",
		"key_material": "ssh-rsa AAAAB3NzaC1yc2E admin@example.com"
	}
}`

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	doc, err := Load(writeConfigFile(t, validConfigJSON))
	require.NoError(t, err)

	clusterName, _ := doc.StringAt("eks", "cluster_name")
	assert.Equal(t, "platform-eks", clusterName)

	deployments, err := doc.Deployments()
	require.NoError(t, err)
	require.Len(t, deployments, 1)
	assert.Equal(t, DeploymentEntry{Account: "dev", Regions: []string{"eu-west-1"}}, deployments[0])
}

func TestLoadRejectsMissingKeys(t *testing.T) {
	_, err := Load(writeConfigFile(t, `{"pipeline": {"account": "tooling"}}`))
	require.Error(t, err)
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "pipeline.region", configErr.Key)
}

func TestLoadRejectsUnknownDeploymentAccount(t *testing.T) {
	doc, err := Load(writeConfigFile(t, validConfigJSON))
	require.NoError(t, err)

	// Point the deployment at a label that does not exist.
	doc["eks"].(map[string]any)["deployment"] = []any{
		map[string]any{"account": "prod", "regions": []any{"eu-west-1"}},
	}
	err = Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prod")
}

func TestValidateAccountIDs(t *testing.T) {
	scenarios := []struct {
		Name        string
		DevAccount  map[string]any
		ExpectError bool
		ExpectedKey string
	}{
		{
			Name:       "a numeric account id",
			DevAccount: map[string]any{"id": "222222222222"},
		},
		{
			Name:        "a non-numeric account id",
			DevAccount:  map[string]any{"id": "dev-account"},
			ExpectError: true,
			ExpectedKey: "accounts.dev.id",
		},
		{
			Name:        "an empty account id",
			DevAccount:  map[string]any{"id": ""},
			ExpectError: true,
			ExpectedKey: "accounts.dev.id",
		},
		{
			Name:        "an account entry without an id",
			DevAccount:  map[string]any{},
			ExpectError: true,
			ExpectedKey: "accounts.dev.id",
		},
		{
			// Two labels may point at the same account; this only warns.
			Name:       "an id shared with another label",
			DevAccount: map[string]any{"id": "111111111111"},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			doc, err := Load(writeConfigFile(t, validConfigJSON))
			require.NoError(t, err)
			doc["accounts"].(map[string]any)["dev"] = scenario.DevAccount

			err = Validate(doc)
			if !scenario.ExpectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, scenario.ExpectedKey, configErr.Key)
		})
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(writeConfigFile(t, "{not json"))
	assert.Error(t, err)
}

func TestConfigFilePath(t *testing.T) {
	t.Setenv("EDT_CONFIG", "")
	assert.Equal(t, filepath.Join("base", "config", "config.json"), ConfigFilePath("base"))

	t.Setenv("EDT_CONFIG", "staging")
	assert.Equal(t, filepath.Join("base", "config", "staging.json"), ConfigFilePath("base"))
}
