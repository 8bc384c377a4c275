// Package preflight verifies, before any deployment starts, that the
// cross-account parameter-store roles exist in every target account and that
// their policies actually permit the VPC discovery lookups the resolver will
// perform.
package preflight

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/cloudslice/eks-deployment-toolkit/internal/aws/iampolicy"
	"github.com/cloudslice/eks-deployment-toolkit/internal/utils"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/config"
)

// RoleInspectionAPI is the subset of the IAM client used to inspect the
// cross-account role.
type RoleInspectionAPI interface {
	GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	ListRolePolicies(ctx context.Context, params *iam.ListRolePoliciesInput, optFns ...func(*iam.Options)) (*iam.ListRolePoliciesOutput, error)
	GetRolePolicy(ctx context.Context, params *iam.GetRolePolicyInput, optFns ...func(*iam.Options)) (*iam.GetRolePolicyOutput, error)
}

// IAMClientFactory builds an IAM client authenticated with cross-account
// credentials.
type IAMClientFactory func(creds aws.Credentials) RoleInspectionAPI

// RoleCheck is the preflight result for one target account.
type RoleCheck struct {
	AccountLabel string
	AccountID    string
	RoleArn      string
	// Regions that the role's inline policies allow VPC lookups in
	AllowedRegions []string
	DeniedRegions  []string
	// ExpectedPolicy is the JSON policy document the role should carry,
	// rendered when any region is denied so operators can fix the role.
	ExpectedPolicy string
}

// Ok reports whether every deployment region of the account passed.
func (c *RoleCheck) Ok() bool {
	return len(c.DeniedRegions) == 0
}

// Checker runs the preflight checks. Sessions provides the cross-account
// credentials; the same session cache is shared with the resolver so each
// account is still only assumed once.
type Checker struct {
	Sessions     *config.Resolver
	NewIAMClient IAMClientFactory
}

// NewChecker wires a Checker against the real STS and IAM services.
func NewChecker(cfg *aws.Config) *Checker {
	return &Checker{
		Sessions: config.NewResolver(cfg),
		NewIAMClient: func(creds aws.Credentials) RoleInspectionAPI {
			return iam.NewFromConfig(utils.AssumedClientConfig(creds, cfg.Region))
		},
	}
}

// CheckAccounts verifies the cross-account role of every account referenced
// by a deployment entry. Accounts referenced by several entries are checked
// once, against the union of their regions.
func (c *Checker) CheckAccounts(ctx context.Context, doc config.Document) ([]*RoleCheck, error) {
	deployments, err := doc.Deployments()
	if err != nil {
		return nil, err
	}

	regionsByAccount := map[string][]string{}
	labelByAccount := map[string]string{}
	order := []string{}
	for _, deployment := range deployments {
		accountID, ok := config.AccountIDFromLabel(doc, deployment.Account)
		if !ok {
			return nil, &config.ConfigError{Key: "eks.deployment", Reason: "unknown account label " + deployment.Account}
		}
		if _, seen := regionsByAccount[accountID]; !seen {
			order = append(order, accountID)
			labelByAccount[accountID] = deployment.Account
		}
		regionsByAccount[accountID] = append(regionsByAccount[accountID], deployment.Regions...)
	}

	checks := make([]*RoleCheck, 0, len(order))
	for _, accountID := range order {
		check, err := c.checkAccount(ctx, accountID, labelByAccount[accountID], regionsByAccount[accountID])
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func (c *Checker) checkAccount(ctx context.Context, accountID, label string, regions []string) (*RoleCheck, error) {
	creds, err := c.Sessions.Session(ctx, accountID)
	if err != nil {
		return nil, err
	}
	iamClient := c.NewIAMClient(creds)

	roleName := config.CrossAccountRoleName
	if _, err := iamClient.GetRole(ctx, &iam.GetRoleInput{RoleName: &roleName}); err != nil {
		return nil, fmt.Errorf("unable to verify role %s in account %s: %v", roleName, accountID, err)
	}

	policies, err := c.rolePolicies(ctx, iamClient, roleName, accountID)
	if err != nil {
		return nil, err
	}

	check := &RoleCheck{
		AccountLabel: label,
		AccountID:    accountID,
		RoleArn:      config.CrossAccountRoleArn(accountID),
	}
	for _, region := range regions {
		parameterArn := fmt.Sprintf("arn:aws:ssm:%s:%s:parameter%s", region, accountID, config.VPCParameterName)
		if anyPolicyAllows(policies, "ssm:GetParameter", parameterArn) {
			check.AllowedRegions = append(check.AllowedRegions, region)
		} else {
			check.DeniedRegions = append(check.DeniedRegions, region)
		}
	}
	if len(check.DeniedRegions) > 0 {
		expected, err := iampolicy.CrossAccountParameterStorePolicy(accountID).JSON()
		if err != nil {
			return nil, err
		}
		check.ExpectedPolicy = expected
	}
	return check, nil
}

func (c *Checker) rolePolicies(ctx context.Context, iamClient RoleInspectionAPI, roleName, accountID string) ([]*iampolicy.Policy, error) {
	policyNames, err := iamClient.ListRolePolicies(ctx, &iam.ListRolePoliciesInput{RoleName: &roleName})
	if err != nil {
		return nil, fmt.Errorf("unable to list policies of role %s in account %s: %v", roleName, accountID, err)
	}

	policies := []*iampolicy.Policy{}
	for i := range policyNames.PolicyNames {
		policyName := policyNames.PolicyNames[i]
		response, err := iamClient.GetRolePolicy(ctx, &iam.GetRolePolicyInput{
			RoleName:   &roleName,
			PolicyName: &policyName,
		})
		if err != nil {
			return nil, fmt.Errorf("unable to read policy %s of role %s in account %s: %v", policyName, roleName, accountID, err)
		}
		// Inline policy documents come back URL-encoded
		document, err := url.PathUnescape(aws.ToString(response.PolicyDocument))
		if err != nil {
			return nil, fmt.Errorf("unable to decode policy %s of role %s: %v", policyName, roleName, err)
		}
		policy, err := iampolicy.ParsePolicyDocument(document)
		if err != nil {
			return nil, fmt.Errorf("unable to parse policy %s of role %s: %v", policyName, roleName, err)
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

func anyPolicyAllows(policies []*iampolicy.Policy, action, resource string) bool {
	for _, policy := range policies {
		if policy.Allows(action, resource) {
			return true
		}
	}
	return false
}
