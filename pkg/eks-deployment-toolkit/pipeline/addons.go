package pipeline

import (
	"log"

	"github.com/hashicorp/go-version"
)

// https://docs.aws.amazon.com/eks/latest/userguide/pod-identities.html#pod-id-cluster-versions
const MinPodIdentityClusterVersion = "1.24"

// DefaultClusterVersion is the Kubernetes version provisioned for new
// clusters.
const DefaultClusterVersion = "1.31"

type WorkloadKind string

const (
	WorkloadDeployment WorkloadKind = "Deployment"
	WorkloadDaemonSet  WorkloadKind = "DaemonSet"
)

// Addon describes one cluster add-on: either an EKS managed add-on (Name +
// Version) or a Helm release (Chart + Repository). Workload identifies the
// object to look for when verifying a running cluster.
type Addon struct {
	Name           string
	Version        string
	Chart          string
	Repository     string
	Namespace      string
	ServiceAccount string
	WorkloadKind   WorkloadKind
	WorkloadName   string
}

// Managed reports whether the add-on is an EKS managed add-on rather than a
// Helm release.
func (a Addon) Managed() bool {
	return a.Chart == ""
}

// DefaultAddonCatalog returns the add-ons installed on every cluster, with
// their pinned versions.
func DefaultAddonCatalog() []Addon {
	return []Addon{
		{
			Name:         "coredns",
			Version:      "v1.11.3-eksbuild.2",
			Namespace:    "kube-system",
			WorkloadKind: WorkloadDeployment,
			WorkloadName: "coredns",
		},
		{
			Name:           "aws-ebs-csi-driver",
			Version:        "v1.32.0-eksbuild.1",
			Namespace:      "kube-system",
			ServiceAccount: "ebs-csi-controller-sa",
			WorkloadKind:   WorkloadDeployment,
			WorkloadName:   "ebs-csi-controller",
		},
		{
			Name:         "eks-pod-identity-agent",
			Version:      "v1.3.4-eksbuild.1",
			Namespace:    "kube-system",
			WorkloadKind: WorkloadDaemonSet,
			WorkloadName: "eks-pod-identity-agent",
		},
		{
			Name:           "aws-load-balancer-controller",
			Chart:          "aws-load-balancer-controller",
			Repository:     "https://aws.github.io/eks-charts",
			Namespace:      "kube-system",
			ServiceAccount: "aws-load-balancer-controller",
			WorkloadKind:   WorkloadDeployment,
			WorkloadName:   "aws-load-balancer-controller",
		},
		{
			Name:           "karpenter",
			Chart:          "karpenter",
			Repository:     "oci://public.ecr.aws/karpenter/karpenter",
			Version:        "1.0.0",
			Namespace:      "karpenter",
			ServiceAccount: "karpenter",
			WorkloadKind:   WorkloadDeployment,
			WorkloadName:   "karpenter",
		},
		{
			Name:         "aws-for-fluent-bit",
			Chart:        "aws-for-fluent-bit",
			Repository:   "https://aws.github.io/eks-charts",
			Namespace:    "kube-system",
			WorkloadKind: WorkloadDaemonSet,
			WorkloadName: "aws-for-fluent-bit",
		},
	}
}

// SupportsPodIdentity reports whether a cluster version can run the Pod
// Identity agent.
func SupportsPodIdentity(clusterVersion string) bool {
	currentVersion, err := version.NewVersion(clusterVersion)
	minimumVersion, err2 := version.NewVersion(MinPodIdentityClusterVersion)
	if err != nil || err2 != nil {
		log.Printf("WARNING: unable to parse cluster version %q, assuming it supports Pod Identity", clusterVersion)
		return true
	}
	return currentVersion.GreaterThanOrEqual(minimumVersion)
}
