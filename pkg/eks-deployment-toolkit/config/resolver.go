package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

const (
	// CrossAccountRoleName is the role assumed in every target account to
	// read its parameter store.
	CrossAccountRoleName = "ParameterStoreCrossAccountRole"

	// VPCParameterName is the well-known parameter holding the id of the
	// VPC provisioned out-of-band in each target account.
	VPCParameterName = "/eks/vpc/vpc_id"
)

// CrossAccountRoleArn returns the ARN of the parameter-store role in the
// given account.
func CrossAccountRoleArn(accountID string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, CrossAccountRoleName)
}

// AssumeRoleAPI is the subset of the STS client used by the resolver.
type AssumeRoleAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// GetParameterAPI is the subset of the SSM client used by the resolver.
type GetParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterClientFactory builds a parameter-store client for one region,
// authenticated with the given cross-account credentials.
type ParameterClientFactory func(creds aws.Credentials, region string) GetParameterAPI

// Resolver fills in the infrastructure identifiers that are not known
// statically because they were created out-of-band in each target account.
// Cross-account sessions are cached by account id for the lifetime of the
// resolver: a role is never assumed twice for the same account within one
// resolution pass.
type Resolver struct {
	STS                AssumeRoleAPI
	NewParameterClient ParameterClientFactory

	mu       sync.Mutex
	sessions map[string]aws.Credentials
}

// NewResolver wires a Resolver against the real STS and SSM services. The
// given AWS configuration provides the pipeline credentials used to assume
// the cross-account roles.
func NewResolver(cfg *aws.Config) *Resolver {
	return &Resolver{
		STS: sts.NewFromConfig(*cfg),
		NewParameterClient: func(creds aws.Credentials, region string) GetParameterAPI {
			return ssm.NewFromConfig(aws.Config{
				Region: region,
				Credentials: credentials.NewStaticCredentialsProvider(
					creds.AccessKeyID,
					creds.SecretAccessKey,
					creds.SessionToken,
				),
			})
		},
		sessions: map[string]aws.Credentials{},
	}
}

// Resolve returns a deep copy of doc with the VPC identifier of every
// deployment entry merged in at accounts.<label>.vpc.<region>. If vpcPresent
// is true the identifiers are assumed to be embedded already and the copy is
// returned unchanged.
//
// Resolution is all-or-nothing: any role-assumption or lookup failure aborts
// the pass, and no partially probed document is returned.
func (r *Resolver) Resolve(ctx context.Context, doc Document, vpcPresent bool) (Document, error) {
	resolved := doc.DeepCopy()
	if vpcPresent {
		return resolved, nil
	}

	deployments, err := resolved.Deployments()
	if err != nil {
		return nil, err
	}

	for _, deployment := range deployments {
		accountID, ok := AccountIDFromLabel(resolved, deployment.Account)
		if !ok {
			return nil, &ConfigError{
				Key:    "eks.deployment",
				Reason: "unknown account label " + deployment.Account,
			}
		}
		for _, region := range deployment.Regions {
			// The session cache makes this a single assumption per
			// account; failures get attributed to the region being
			// resolved.
			creds, err := r.Session(ctx, accountID)
			if err != nil {
				var credentialErr *CredentialError
				if errors.As(err, &credentialErr) {
					credentialErr.Region = region
				}
				return nil, err
			}
			vpcID, err := r.lookupVPC(ctx, creds, accountID, region)
			if err != nil {
				return nil, err
			}
			log.Printf("Discovered VPC %s for account %s in %s", vpcID, deployment.Account, region)
			resolved = Document(DeepMerge(resolved, map[string]any{
				"accounts": map[string]any{
					deployment.Account: map[string]any{
						"vpc": map[string]any{region: vpcID},
					},
				},
			}))
		}
	}
	return resolved, nil
}

// Session returns cached cross-account credentials for the account, assuming
// the parameter-store role on first use. The cache is keyed by account id,
// not label, since one account may be referenced under several labels.
func (r *Resolver) Session(ctx context.Context, accountID string) (aws.Credentials, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if creds, ok := r.sessions[accountID]; ok {
		return creds, nil
	}

	roleArn := CrossAccountRoleArn(accountID)
	sessionName := fmt.Sprintf("%s-%s", accountID, CrossAccountRoleName)
	response, err := r.STS.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         &roleArn,
		RoleSessionName: &sessionName,
	})
	if err != nil {
		return aws.Credentials{}, &CredentialError{AccountID: accountID, Err: err}
	}

	creds := aws.Credentials{
		AccessKeyID:     aws.ToString(response.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(response.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(response.Credentials.SessionToken),
	}
	if r.sessions == nil {
		r.sessions = map[string]aws.Credentials{}
	}
	r.sessions[accountID] = creds
	return creds, nil
}

func (r *Resolver) lookupVPC(ctx context.Context, creds aws.Credentials, accountID, region string) (string, error) {
	parameterName := VPCParameterName
	response, err := r.NewParameterClient(creds, region).GetParameter(ctx, &ssm.GetParameterInput{
		Name: &parameterName,
	})
	if err != nil {
		return "", &LookupError{AccountID: accountID, Region: region, Parameter: VPCParameterName, Err: err}
	}
	if response.Parameter == nil || response.Parameter.Value == nil {
		return "", &LookupError{AccountID: accountID, Region: region, Parameter: VPCParameterName, Err: fmt.Errorf("parameter has no value")}
	}
	return *response.Parameter.Value, nil
}
