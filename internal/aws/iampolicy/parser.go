package iampolicy

import (
	"encoding/json"
	"fmt"
	"strings"
)

type rawStatement struct {
	Sid       string                            `json:"Sid"`
	Effect    string                            `json:"Effect"`
	Action    interface{}                       `json:"Action"`
	Resource  interface{}                       `json:"Resource"`
	Principal interface{}                       `json:"Principal"`
	Condition map[string]map[string]interface{} `json:"Condition"`
}

type rawPolicy struct {
	Statement []rawStatement `json:"Statement"`
}

// ParsePolicyDocument parses an IAM policy document (identity policy or role
// trust policy) into an evaluable Policy.
func ParsePolicyDocument(policy string) (*Policy, error) {
	var rawPolicy rawPolicy
	resultPolicy := Policy{}
	if err := json.Unmarshal([]byte(policy), &rawPolicy); err != nil {
		return nil, fmt.Errorf("unable to parse policy document from JSON: %v", err)
	}
	for i := range rawPolicy.Statement {
		statement, err := parseStatement(&rawPolicy.Statement[i])
		if err != nil {
			return nil, err
		}
		resultPolicy.Statements = append(resultPolicy.Statements, statement)
	}
	return &resultPolicy, nil
}

func parseStatement(rawStatement *rawStatement) (*Statement, error) {
	var statement Statement
	statement.Sid = rawStatement.Sid

	effect, err := parseStatementEffect(rawStatement.Effect)
	if err != nil {
		return nil, err
	}
	statement.Effect = effect

	actions, err := ensureStringArray(rawStatement.Action)
	if err != nil {
		return nil, err
	}
	statement.Actions = actions

	if rawStatement.Resource != nil {
		resources, err := ensureStringArray(rawStatement.Resource)
		if err != nil {
			return nil, err
		}
		statement.Resources = resources
	}

	if rawStatement.Principal != nil {
		principals, err := parsePrincipals(rawStatement.Principal)
		if err != nil {
			return nil, err
		}
		statement.Principals = principals
	}

	conditions, err := parseConditions(rawStatement.Condition)
	if err != nil {
		return nil, err
	}
	statement.Conditions = conditions

	return &statement, nil
}

func parseConditions(rawConditions map[string]map[string]interface{}) ([]*Condition, error) {
	result := []*Condition{}
	for conditionOperator, conditionValues := range rawConditions {
		for conditionKey, rawValues := range conditionValues {
			values, err := ensureStringArray(rawValues)
			if err != nil {
				return nil, err
			}
			result = append(result, &Condition{
				Operator:      conditionOperator,
				Key:           conditionKey,
				AllowedValues: values,
			})
		}
	}
	return result, nil
}

func parsePrincipals(principals interface{}) ([]*Principal, error) {
	// Either the string "*", or a map of
	// ("AWS" | "Federated" | "Service" | "CanonicalUser") to one or more
	// principal ids
	switch principals := principals.(type) {
	case string:
		if principals == "*" {
			return []*Principal{{Type: PrincipalTypeAny, ID: "*"}}, nil
		}
		return nil, fmt.Errorf("invalid principal: %s", principals)
	case map[string]interface{}:
		results := []*Principal{}
		for principalType, principalValue := range principals {
			result, err := parseSinglePrincipal(principalType, principalValue)
			if err != nil {
				return nil, err
			}
			results = append(results, result...)
		}
		return results, nil
	default:
		return nil, fmt.Errorf("invalid principal: %v", principals)
	}
}

func parseSinglePrincipal(rawPrincipalType string, principalID interface{}) ([]*Principal, error) {
	types := map[string]PrincipalType{
		"aws":           PrincipalTypeAWS,
		"federated":     PrincipalTypeFederated,
		"service":       PrincipalTypeService,
		"canonicaluser": PrincipalTypeCanonicalUser,
	}
	principalType, ok := types[strings.ToLower(rawPrincipalType)]
	if !ok {
		return nil, fmt.Errorf("invalid principal type: %s", rawPrincipalType)
	}
	values, err := ensureStringArray(principalID)
	if err != nil {
		return nil, fmt.Errorf("invalid principal value: %v", principalID)
	}

	principals := []*Principal{}
	for _, value := range values {
		principals = append(principals, &Principal{Type: principalType, ID: value})
	}
	return principals, nil
}

func ensureStringArray(stringOrArray interface{}) ([]string, error) {
	switch value := stringOrArray.(type) {
	case string:
		return []string{value}, nil
	case []string:
		return value, nil
	case []interface{}:
		values := make([]string, len(value))
		for i, v := range value {
			stringValue, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("value cannot be converted to string array: %v", stringOrArray)
			}
			values[i] = stringValue
		}
		return values, nil
	default:
		return nil, fmt.Errorf("value cannot be converted to string array: %v", stringOrArray)
	}
}

func parseStatementEffect(rawEffect string) (Effect, error) {
	switch strings.ToLower(rawEffect) {
	case "allow":
		return EffectAllow, nil
	case "deny":
		return EffectDeny, nil
	default:
		return "", fmt.Errorf("invalid effect: %s", rawEffect)
	}
}
