package iampolicy

import (
	"strings"

	"github.com/cloudslice/eks-deployment-toolkit/internal/utils"
)

type Condition struct {
	Key           string
	Operator      string
	AllowedValues []string
}

var conditionOperators = map[string]func(string, string) bool{
	"stringequals": func(input string, value string) bool {
		return input == value
	},
	"stringlike": func(input string, pattern string) bool {
		return wildcardMatch(pattern, input)
	},
	"arnlike": func(input string, pattern string) bool {
		return wildcardMatch(pattern, input)
	},
}

func (m *Condition) Matches(context *AuthorizationContext) bool {
	operatorFunc, found := conditionOperators[strings.ToLower(m.Operator)]
	if !found {
		// unknown operator, the condition cannot match
		return false
	}

	// Context key names are case-insensitive
	contextKeys := utils.NewCaseInsensitiveMap(&context.ContextKeys)
	contextValue, hasContextKey := contextKeys.Get(m.Key)
	if !hasContextKey {
		return false
	}
	for _, allowedValue := range m.AllowedValues {
		if operatorFunc(contextValue, allowedValue) {
			return true
		}
	}
	return false
}
