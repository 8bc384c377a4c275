package cluster

import (
	"context"
	"fmt"

	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/pipeline"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// AddonCheck is the verification result for one add-on workload.
type AddonCheck struct {
	Addon   pipeline.Addon
	Present bool
	Ready   bool
	Detail  string
}

// VerifyAddons checks that each add-on's workload exists in the cluster and
// has ready replicas.
func VerifyAddons(ctx context.Context, k8sClient kubernetes.Interface, addons []pipeline.Addon) ([]*AddonCheck, error) {
	checks := make([]*AddonCheck, 0, len(addons))
	for _, addon := range addons {
		check, err := verifySingleAddon(ctx, k8sClient, addon)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func verifySingleAddon(ctx context.Context, k8sClient kubernetes.Interface, addon pipeline.Addon) (*AddonCheck, error) {
	check := &AddonCheck{Addon: addon}

	switch addon.WorkloadKind {
	case pipeline.WorkloadDeployment:
		deployment, err := k8sClient.AppsV1().Deployments(addon.Namespace).Get(ctx, addon.WorkloadName, v1.GetOptions{})
		if apierrors.IsNotFound(err) {
			check.Detail = fmt.Sprintf("deployment %s/%s not found", addon.Namespace, addon.WorkloadName)
			return check, nil
		}
		if err != nil {
			return nil, fmt.Errorf("unable to get deployment %s/%s: %v", addon.Namespace, addon.WorkloadName, err)
		}
		check.Present = true
		check.Ready = deployment.Status.ReadyReplicas > 0
		check.Detail = fmt.Sprintf("%d/%d replicas ready", deployment.Status.ReadyReplicas, deployment.Status.Replicas)

	case pipeline.WorkloadDaemonSet:
		daemonSet, err := k8sClient.AppsV1().DaemonSets(addon.Namespace).Get(ctx, addon.WorkloadName, v1.GetOptions{})
		if apierrors.IsNotFound(err) {
			check.Detail = fmt.Sprintf("daemonset %s/%s not found", addon.Namespace, addon.WorkloadName)
			return check, nil
		}
		if err != nil {
			return nil, fmt.Errorf("unable to get daemonset %s/%s: %v", addon.Namespace, addon.WorkloadName, err)
		}
		check.Present = true
		check.Ready = daemonSet.Status.NumberReady > 0
		check.Detail = fmt.Sprintf("%d/%d nodes ready", daemonSet.Status.NumberReady, daemonSet.Status.DesiredNumberScheduled)

	default:
		return nil, fmt.Errorf("unknown workload kind %s for add-on %s", addon.WorkloadKind, addon.Name)
	}
	return check, nil
}
