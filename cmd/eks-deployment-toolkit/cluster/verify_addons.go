package cluster

import (
	"context"
	"log"

	"github.com/cloudslice/eks-deployment-toolkit/internal/utils"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/cluster"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/pipeline"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func buildVerifyAddonsCommand() *cobra.Command {
	verifyAddonsCommand := &cobra.Command{
		Use:                   "verify-addons",
		Example:               "edt cluster verify-addons",
		Short:                 "Verify that the expected add-on workloads are running in the cluster",
		Long:                  "verify-addons checks that every add-on of the catalog has its workload deployed in the cluster the current kubeconfig points at, with ready replicas",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doVerifyAddonsCommand()
		},
	}

	return verifyAddonsCommand
}

// Actual logic implementing the "cluster verify-addons" command
func doVerifyAddonsCommand() error {
	checks, err := cluster.VerifyAddons(context.Background(), utils.K8sClient(), pipeline.DefaultAddonCatalog())
	if err != nil {
		log.Fatalf("unable to verify add-ons: %v", err)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Add-on", "Version", "Namespace", "Present", "Ready", "Detail"})
	unready := 0
	for _, check := range checks {
		t.AppendRow([]interface{}{
			check.Addon.Name,
			check.Addon.Version,
			check.Addon.Namespace,
			check.Present,
			check.Ready,
			check.Detail,
		})
		if !check.Ready {
			unready++
		}
	}
	print(t.Render() + "\n")

	if unready > 0 {
		warningColor := color.New(color.BgRed, color.FgWhite, color.Bold)
		log.Println(warningColor.Sprintf("%d add-on(s) are not ready", unready))
	} else {
		log.Println("All add-ons are running")
	}
	return nil
}
