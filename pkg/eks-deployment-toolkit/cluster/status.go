// Package cluster inspects a deployed EKS cluster: its control-plane
// attributes, the parameters published by the params stage, and the add-on
// workloads running inside it.
package cluster

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/pipeline"
)

// DescribeClusterAPI is the subset of the EKS client used by the status
// resolver.
type DescribeClusterAPI interface {
	DescribeCluster(ctx context.Context, params *eks.DescribeClusterInput, optFns ...func(*eks.Options)) (*eks.DescribeClusterOutput, error)
}

// GetParameterAPI is the subset of the SSM client used to read the published
// parameters.
type GetParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Status describes a deployed cluster.
type Status struct {
	Name                 string
	Arn                  string
	AccountID            string
	Endpoint             string
	Version              string
	IssuerURL            string
	PodIdentitySupported bool

	// PublishedParameters maps the well-known /eks/ parameter names to
	// their values; parameters not published yet are absent.
	PublishedParameters map[string]string
}

type StatusResolver struct {
	EKS DescribeClusterAPI
	SSM GetParameterAPI
}

// ResolveStatus retrieves the cluster's control-plane attributes and the
// parameters the params stage published for it.
func (r *StatusResolver) ResolveStatus(ctx context.Context, clusterName string) (*Status, error) {
	log.Println("Retrieving cluster information for " + clusterName)
	clusterInfo, err := r.EKS.DescribeCluster(ctx, &eks.DescribeClusterInput{Name: &clusterName})
	if err != nil {
		return nil, fmt.Errorf("unable to describe cluster %s: %v", clusterName, err)
	}

	status := &Status{
		Name:                clusterName,
		PublishedParameters: map[string]string{},
	}
	if clusterInfo.Cluster.Arn != nil {
		status.Arn = *clusterInfo.Cluster.Arn
		parsedClusterArn, _ := arn.Parse(status.Arn)
		status.AccountID = parsedClusterArn.AccountID
	}
	if clusterInfo.Cluster.Endpoint != nil {
		status.Endpoint = *clusterInfo.Cluster.Endpoint
	}
	if clusterInfo.Cluster.Version != nil {
		status.Version = *clusterInfo.Cluster.Version
		status.PodIdentitySupported = pipeline.SupportsPodIdentity(status.Version)
	}
	if clusterInfo.Cluster.Identity != nil && clusterInfo.Cluster.Identity.Oidc != nil && clusterInfo.Cluster.Identity.Oidc.Issuer != nil {
		status.IssuerURL = strings.Replace(*clusterInfo.Cluster.Identity.Oidc.Issuer, "https://", "", 1)
	}

	for _, parameterName := range pipeline.PublishedClusterParameters() {
		name := parameterName
		response, err := r.SSM.GetParameter(ctx, &ssm.GetParameterInput{Name: &name})
		if err != nil {
			// Not published yet, or not readable: report it as absent
			continue
		}
		if response.Parameter != nil && response.Parameter.Value != nil {
			status.PublishedParameters[parameterName] = *response.Parameter.Value
		}
	}
	return status, nil
}
