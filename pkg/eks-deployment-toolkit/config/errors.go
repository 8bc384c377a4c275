package config

import "fmt"

// ConfigError reports a missing or malformed configuration key, including
// deployment entries that reference an account label that does not exist.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration key %s: %s", e.Key, e.Reason)
}

// CredentialError reports a failed cross-account role assumption. Region is
// the deployment region whose resolution triggered the assumption; it is
// empty when the session was requested outside a region-bound pass.
type CredentialError struct {
	AccountID string
	Region    string
	Err       error
}

func (e *CredentialError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("unable to assume role in account %s for region %s: %v", e.AccountID, e.Region, e.Err)
	}
	return fmt.Sprintf("unable to assume role in account %s: %v", e.AccountID, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// LookupError reports a failed remote parameter lookup.
type LookupError struct {
	AccountID string
	Region    string
	Parameter string
	Err       error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unable to read parameter %s in account %s region %s: %v", e.Parameter, e.AccountID, e.Region, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
