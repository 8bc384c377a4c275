package iampolicy

import "testing"

func TestStatementResourceMatching(t *testing.T) {
	scenarios := []struct {
		Name      string
		Resources []string
		Resource  string
		Expect    bool
	}{
		{
			Name:      "an exact resource matches",
			Resources: []string{"arn:aws:ssm:eu-west-1:111111111111:parameter/eks/vpc/vpc_id"},
			Resource:  "arn:aws:ssm:eu-west-1:111111111111:parameter/eks/vpc/vpc_id",
			Expect:    true,
		},
		{
			Name:      "a wildcard crosses path separators",
			Resources: []string{"arn:aws:ssm:eu-west-1:111111111111:parameter/eks/*"},
			Resource:  "arn:aws:ssm:eu-west-1:111111111111:parameter/eks/vpc/vpc_id",
			Expect:    true,
		},
		{
			Name:      "a wildcard region matches any region",
			Resources: []string{"arn:aws:ssm:*:111111111111:parameter/eks/vpc/vpc_id"},
			Resource:  "arn:aws:ssm:ap-southeast-2:111111111111:parameter/eks/vpc/vpc_id",
			Expect:    true,
		},
		{
			Name:      "a different parameter path does not match",
			Resources: []string{"arn:aws:ssm:eu-west-1:111111111111:parameter/eks/*"},
			Resource:  "arn:aws:ssm:eu-west-1:111111111111:parameter/other/key",
			Expect:    false,
		},
		{
			Name:      "no resource element matches everything",
			Resources: nil,
			Resource:  "arn:aws:ssm:eu-west-1:111111111111:parameter/eks/vpc/vpc_id",
			Expect:    true,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			statement := &Statement{
				Effect:    EffectAllow,
				Actions:   []string{"ssm:GetParameter"},
				Resources: scenario.Resources,
			}
			result := *statement.Authorize(&AuthorizationContext{
				Action:   "ssm:GetParameter",
				Resource: scenario.Resource,
			})
			expected := AuthorizationResultNoDecision
			if scenario.Expect {
				expected = AuthorizationResultAllow
			}
			if result != expected {
				t.Errorf("Expected %v, got %v", expected, result)
			}
		})
	}
}

func TestStatementActionMatchingIsCaseInsensitive(t *testing.T) {
	statement := &Statement{
		Effect:  EffectAllow,
		Actions: []string{"eks:DescribeCluster"},
	}
	result := *statement.Authorize(&AuthorizationContext{Action: "eks:describecluster"})
	if result != AuthorizationResultAllow {
		t.Errorf("Expected allow, got %v", result)
	}
}

func TestStatementPrincipalMatching(t *testing.T) {
	statement := &Statement{
		Effect:  EffectAllow,
		Actions: []string{"sts:AssumeRole"},
		Principals: []*Principal{
			{Type: PrincipalTypeAWS, ID: "arn:aws:iam::111111111111:root"},
		},
	}

	allowed := *statement.Authorize(&AuthorizationContext{
		Action:    "sts:AssumeRole",
		Principal: &Principal{Type: PrincipalTypeAWS, ID: "arn:aws:iam::111111111111:root"},
	})
	if allowed != AuthorizationResultAllow {
		t.Errorf("Expected allow, got %v", allowed)
	}

	denied := *statement.Authorize(&AuthorizationContext{
		Action:    "sts:AssumeRole",
		Principal: &Principal{Type: PrincipalTypeAWS, ID: "arn:aws:iam::222222222222:root"},
	})
	if denied != AuthorizationResultNoDecision {
		t.Errorf("Expected no decision, got %v", denied)
	}

	missing := *statement.Authorize(&AuthorizationContext{Action: "sts:AssumeRole"})
	if missing != AuthorizationResultNoDecision {
		t.Errorf("Expected no decision for a missing principal, got %v", missing)
	}
}
