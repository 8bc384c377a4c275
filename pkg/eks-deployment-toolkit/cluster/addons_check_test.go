package cluster

import (
	"context"
	"testing"

	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
)

func readyDeployment(namespace, name string, readyReplicas int32) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: v1.ObjectMeta{Namespace: namespace, Name: name},
		Status: appsv1.DeploymentStatus{
			Replicas:      2,
			ReadyReplicas: readyReplicas,
		},
	}
}

func readyDaemonSet(namespace, name string, numberReady int32) *appsv1.DaemonSet {
	return &appsv1.DaemonSet{
		ObjectMeta: v1.ObjectMeta{Namespace: namespace, Name: name},
		Status: appsv1.DaemonSetStatus{
			DesiredNumberScheduled: 3,
			NumberReady:            numberReady,
		},
	}
}

func TestVerifyAddons(t *testing.T) {
	scenarios := []struct {
		Name          string
		Objects       []*appsv1.Deployment
		DaemonSets    []*appsv1.DaemonSet
		Addon         pipeline.Addon
		ExpectPresent bool
		ExpectReady   bool
	}{
		{
			Name:    "a ready deployment addon",
			Objects: []*appsv1.Deployment{readyDeployment("kube-system", "coredns", 2)},
			Addon: pipeline.Addon{
				Name: "coredns", Namespace: "kube-system",
				WorkloadKind: pipeline.WorkloadDeployment, WorkloadName: "coredns",
			},
			ExpectPresent: true,
			ExpectReady:   true,
		},
		{
			Name:    "a deployment with no ready replicas",
			Objects: []*appsv1.Deployment{readyDeployment("karpenter", "karpenter", 0)},
			Addon: pipeline.Addon{
				Name: "karpenter", Namespace: "karpenter",
				WorkloadKind: pipeline.WorkloadDeployment, WorkloadName: "karpenter",
			},
			ExpectPresent: true,
			ExpectReady:   false,
		},
		{
			Name: "a missing deployment",
			Addon: pipeline.Addon{
				Name: "aws-load-balancer-controller", Namespace: "kube-system",
				WorkloadKind: pipeline.WorkloadDeployment, WorkloadName: "aws-load-balancer-controller",
			},
			ExpectPresent: false,
			ExpectReady:   false,
		},
		{
			Name:       "a ready daemonset addon",
			DaemonSets: []*appsv1.DaemonSet{readyDaemonSet("kube-system", "eks-pod-identity-agent", 3)},
			Addon: pipeline.Addon{
				Name: "eks-pod-identity-agent", Namespace: "kube-system",
				WorkloadKind: pipeline.WorkloadDaemonSet, WorkloadName: "eks-pod-identity-agent",
			},
			ExpectPresent: true,
			ExpectReady:   true,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			objects := []runtime.Object{}
			for _, deployment := range scenario.Objects {
				objects = append(objects, deployment)
			}
			for _, daemonSet := range scenario.DaemonSets {
				objects = append(objects, daemonSet)
			}
			k8sClient := fake.NewSimpleClientset(objects...)

			checks, err := VerifyAddons(context.Background(), k8sClient, []pipeline.Addon{scenario.Addon})
			require.NoError(t, err)
			require.Len(t, checks, 1)
			assert.Equal(t, scenario.ExpectPresent, checks[0].Present)
			assert.Equal(t, scenario.ExpectReady, checks[0].Ready)
		})
	}
}

func TestVerifyAddonsWithDefaultCatalog(t *testing.T) {
	k8sClient := fake.NewSimpleClientset(
		readyDeployment("kube-system", "coredns", 2),
		readyDeployment("karpenter", "karpenter", 1),
	)

	checks, err := VerifyAddons(context.Background(), k8sClient, pipeline.DefaultAddonCatalog())
	require.NoError(t, err)
	require.Len(t, checks, len(pipeline.DefaultAddonCatalog()))

	byName := map[string]*AddonCheck{}
	for _, check := range checks {
		byName[check.Addon.Name] = check
	}
	assert.True(t, byName["coredns"].Ready)
	assert.True(t, byName["karpenter"].Ready)
	assert.False(t, byName["aws-ebs-csi-driver"].Present)
}
