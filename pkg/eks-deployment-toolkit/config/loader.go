package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigName is the configuration file loaded when EDT_CONFIG is not set.
const DefaultConfigName = "config"

const configNameEnvVar = "EDT_CONFIG"

// requiredKeys are the key paths every configuration file must carry.
var requiredKeys = []string{
	"pipeline.account",
	"pipeline.region",
	"pipeline.repositoryname",
	"pipeline.branchname",
	"eks.cluster_name",
	"eks.target_region",
	"admin.key_name",
	"admin.key_material",
}

// ConfigFilePath returns the path of the configuration file to load:
// <baseDir>/config/<name>.json, where <name> comes from the EDT_CONFIG
// environment variable and defaults to DefaultConfigName.
func ConfigFilePath(baseDir string) string {
	name := os.Getenv(configNameEnvVar)
	if name == "" {
		name = DefaultConfigName
	}
	return filepath.Join(baseDir, "config", name+".json")
}

// Load reads and validates a configuration document from disk.
func Load(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration file %s: %v", path, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse configuration file %s: %v", path, err)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks that the required keys are present and that every
// deployment entry references a known account with a numeric id.
func Validate(doc Document) error {
	for _, key := range requiredKeys {
		if _, ok := doc.StringAt(strings.Split(key, ".")...); !ok {
			return &ConfigError{Key: key, Reason: "missing or not a string"}
		}
	}

	accounts, ok := doc.Section("accounts")
	if !ok {
		return &ConfigError{Key: "accounts", Reason: "section is missing"}
	}
	labelByID := map[string]string{}
	for label := range accounts {
		id, ok := AccountIDFromLabel(doc, label)
		if !ok {
			return &ConfigError{Key: "accounts." + label + ".id", Reason: "missing or not a string"}
		}
		if !isNumericID(id) {
			return &ConfigError{Key: "accounts." + label + ".id", Reason: "must be a numeric account id, got " + id}
		}
		if other, seen := labelByID[id]; seen {
			log.Printf("WARNING: account labels %s and %s share id %s", other, label, id)
		}
		labelByID[id] = label
	}

	deployments, err := doc.Deployments()
	if err != nil {
		return err
	}
	for _, deployment := range deployments {
		if _, ok := AccountIDFromLabel(doc, deployment.Account); !ok {
			return &ConfigError{Key: "eks.deployment", Reason: "unknown account label " + deployment.Account}
		}
		if len(deployment.Regions) == 0 {
			return &ConfigError{Key: "eks.deployment", Reason: "account " + deployment.Account + " has no regions"}
		}
	}

	// The pipeline account label must resolve as well.
	pipelineAccount, _ := doc.StringAt("pipeline", "account")
	if _, ok := AccountIDFromLabel(doc, pipelineAccount); !ok {
		return &ConfigError{Key: "pipeline.account", Reason: "unknown account label " + pipelineAccount}
	}
	return nil
}

func isNumericID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
