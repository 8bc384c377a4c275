package iampolicy

import (
	"regexp"
	"strings"
)

type PrincipalType string

const (
	PrincipalTypeUnknown       = PrincipalType("")
	PrincipalTypeAny           = PrincipalType("[any]")
	PrincipalTypeAWS           = PrincipalType("AWS")
	PrincipalTypeService       = PrincipalType("Service")
	PrincipalTypeFederated     = PrincipalType("Federated")
	PrincipalTypeCanonicalUser = PrincipalType("CanonicalUser")
)

type Principal struct {
	Type PrincipalType
	ID   string
}

// Statement is one evaluable policy statement. Principals are only set for
// trust policies; identity policies leave them empty, which skips principal
// matching.
type Statement struct {
	Sid        string
	Effect     Effect
	Actions    []string
	Resources  []string
	Principals []*Principal
	Conditions []*Condition
}

func (m *Statement) Authorize(context *AuthorizationContext) *AuthorizationResult {
	if !m.matches(context) {
		// The statement does not apply to this request, no decision
		return &AuthorizationResultNoDecision
	}
	if m.Effect == EffectAllow {
		return &AuthorizationResultAllow
	}
	return &AuthorizationResultDeny
}

func (m *Statement) matches(context *AuthorizationContext) bool {
	return m.actionMatches(context.Action) &&
		m.resourceMatches(context.Resource) &&
		m.principalMatches(context.Principal) &&
		m.conditionsMatch(context)
}

func (m *Statement) actionMatches(action string) bool {
	action = strings.ToLower(action)
	for _, allowedAction := range m.Actions {
		if wildcardMatch(strings.ToLower(allowedAction), action) {
			return true
		}
	}
	return false
}

func (m *Statement) resourceMatches(resource string) bool {
	if len(m.Resources) == 0 || resource == "" {
		// Trust policies have no resource element, and callers evaluating
		// only actions may omit the resource
		return true
	}
	for _, allowedResource := range m.Resources {
		if wildcardMatch(allowedResource, resource) {
			return true
		}
	}
	return false
}

func (m *Statement) principalMatches(principal *Principal) bool {
	if len(m.Principals) == 0 {
		// Identity policy, nothing to match
		return true
	}
	if principal == nil {
		return false
	}
	for _, allowedPrincipal := range m.Principals {
		if allowedPrincipal.Type == PrincipalTypeAny {
			return true
		}
		if allowedPrincipal.Type != principal.Type {
			continue
		}
		if wildcardMatch(allowedPrincipal.ID, principal.ID) {
			return true
		}
	}
	return false
}

func (m *Statement) conditionsMatch(context *AuthorizationContext) bool {
	// Conditions are AND'ed together
	for _, condition := range m.Conditions {
		if !condition.Matches(context) {
			return false
		}
	}
	return true
}

// wildcardMatch implements IAM-style pattern matching: * matches any
// sequence of characters including separators, ? matches a single character.
func wildcardMatch(pattern, value string) bool {
	var sb strings.Builder
	sb.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	matched, err := regexp.MatchString(sb.String(), value)
	return matched && err == nil
}
