package iampolicy

// Policy is an evaluable set of statements.
type Policy struct {
	Statements []*Statement
}

// Authorize evaluates the request against all statements: an explicit deny
// always wins, otherwise at least one matching allow statement is required.
func (m *Policy) Authorize(context *AuthorizationContext) *AuthorizationResult {
	willAllow := false

	for _, statement := range m.Statements {
		decision := *statement.Authorize(context)
		if decision == AuthorizationResultDeny {
			return &AuthorizationResultDeny // explicit deny, overrides any allow
		} else if decision == AuthorizationResultAllow {
			willAllow = true
		}
	}

	if willAllow {
		return &AuthorizationResultAllow
	}
	return &AuthorizationResultDeny // implicit deny
}

// Allows is a convenience wrapper for identity-policy checks: does the
// policy allow this action on this resource?
func (m *Policy) Allows(action, resource string) bool {
	result := m.Authorize(&AuthorizationContext{Action: action, Resource: resource})
	return *result == AuthorizationResultAllow
}
