package iampolicy

type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// AuthorizationContext is one access request evaluated against a policy:
// an action on a resource, optionally on behalf of a principal (for trust
// policies), with request context keys for condition evaluation.
type AuthorizationContext struct {
	Action      string
	Resource    string
	Principal   *Principal
	ContextKeys map[string]string
}

type AuthorizationResult struct {
	Decision Effect
}

var (
	AuthorizationResultDeny       = AuthorizationResult{Decision: EffectDeny}
	AuthorizationResultAllow      = AuthorizationResult{Decision: EffectAllow}
	AuthorizationResultNoDecision = AuthorizationResult{Decision: ""}
)
