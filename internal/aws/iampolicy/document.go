package iampolicy

import (
	"encoding/json"
	"fmt"
)

// Document is the JSON wire form of an IAM policy, as accepted by the IAM
// APIs.
type Document struct {
	Version   string              `json:"Version"`
	Statement []DocumentStatement `json:"Statement"`
}

type DocumentStatement struct {
	Sid      string   `json:"Sid,omitempty"`
	Effect   Effect   `json:"Effect"`
	Action   []string `json:"Action"`
	Resource []string `json:"Resource"`
}

const policyVersion = "2012-10-17"

// KMSCrossAccountUsagePolicyName is the managed-policy name the iam stage
// provisions the cross-account KMS policy under, at path /eks/.
const KMSCrossAccountUsagePolicyName = "EksKmsCrossAccountUsagePolicy"

// PipelineSynthPolicyName is the managed-policy name for the synth role's
// policy.
const PipelineSynthPolicyName = "EksPipelineSynthPolicy"

// KMSCrossAccountUsagePolicy allows a cluster account to use the KMS keys
// owned by the tooling account, as required for encrypted volumes and
// secrets whose keys live there.
func KMSCrossAccountUsagePolicy(keyOwnerAccountID string) *Document {
	return &Document{
		Version: policyVersion,
		Statement: []DocumentStatement{
			{
				Sid:    "KmsCrossAccountUsage",
				Effect: EffectAllow,
				Action: []string{
					"kms:CreateGrant",
					"kms:Decrypt",
					"kms:DescribeKey",
					"kms:GenerateDataKeyWithoutPlainText",
					"kms:ReEncrypt*",
				},
				Resource: []string{
					fmt.Sprintf("arn:aws:kms:*:%s:key/*", keyOwnerAccountID),
				},
			},
		},
	}
}

// PipelineSynthPolicy is the policy attached to the pipeline's synth role:
// it may describe the target cluster and manage the published /eks/*
// parameters.
func PipelineSynthPolicy(targetRegion, accountID, clusterName string) *Document {
	return &Document{
		Version: policyVersion,
		Statement: []DocumentStatement{
			{
				Sid:    "DescribeCluster",
				Effect: EffectAllow,
				Action: []string{"eks:DescribeCluster"},
				Resource: []string{
					fmt.Sprintf("arn:aws:eks:%s:%s:cluster/%s", targetRegion, accountID, clusterName),
				},
			},
			{
				Sid:    "AccessEksParams",
				Effect: EffectAllow,
				Action: []string{
					"ssm:GetParameter",
					"ssm:GetParameters",
					"ssm:GetParameterHistory",
					"ssm:DescribeParameters",
					"ssm:PutParameter",
					"ssm:DeleteParameter",
					"ssm:AddTagsToResource",
				},
				Resource: []string{
					fmt.Sprintf("arn:aws:ssm:%s:%s:parameter/eks/*", targetRegion, accountID),
				},
			},
		},
	}
}

// CrossAccountParameterStorePolicy is the policy expected on the
// ParameterStoreCrossAccountRole in each target account: read access to the
// VPC discovery parameter and introspection of the role itself.
func CrossAccountParameterStorePolicy(accountID string) *Document {
	return &Document{
		Version: policyVersion,
		Statement: []DocumentStatement{
			{
				Sid:    "ReadVpcParameter",
				Effect: EffectAllow,
				Action: []string{"ssm:GetParameter", "ssm:GetParameters"},
				Resource: []string{
					fmt.Sprintf("arn:aws:ssm:*:%s:parameter/eks/vpc/vpc_id", accountID),
				},
			},
			{
				Sid:    "InspectOwnRole",
				Effect: EffectAllow,
				Action: []string{"iam:GetRole", "iam:GetRolePolicy", "iam:ListRolePolicies"},
				Resource: []string{
					fmt.Sprintf("arn:aws:iam::%s:role/ParameterStoreCrossAccountRole", accountID),
				},
			},
		},
	}
}

// JSON renders the document for the IAM APIs.
func (d *Document) JSON() (string, error) {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("unable to serialize policy document: %v", err)
	}
	return string(raw), nil
}

// Policy converts the document into its evaluable form.
func (d *Document) Policy() *Policy {
	policy := &Policy{}
	for _, documentStatement := range d.Statement {
		policy.Statements = append(policy.Statements, &Statement{
			Sid:       documentStatement.Sid,
			Effect:    documentStatement.Effect,
			Actions:   documentStatement.Action,
			Resources: documentStatement.Resource,
		})
	}
	return policy
}
