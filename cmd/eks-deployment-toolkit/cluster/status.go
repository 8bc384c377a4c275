package cluster

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/cloudslice/eks-deployment-toolkit/internal/utils"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/cluster"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/pipeline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func buildClusterStatusCommand() *cobra.Command {
	clusterStatusCommand := &cobra.Command{
		Use:                   "status",
		Example:               "edt cluster status <eks-cluster-name>",
		Short:                 "Show the control-plane attributes and published parameters of a cluster",
		DisableFlagsInUseLine: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				cmd.Help()
				os.Exit(1)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return doClusterStatusCommand(args[0])
		},
	}

	return clusterStatusCommand
}

// Actual logic implementing the "cluster status" command
func doClusterStatusCommand(clusterName string) error {
	cfg := utils.AWSClient()
	resolver := cluster.StatusResolver{
		EKS: eks.NewFromConfig(*cfg),
		SSM: ssm.NewFromConfig(*cfg),
	}
	status, err := resolver.ResolveStatus(context.Background(), clusterName)
	if err != nil {
		log.Fatalf("unable to retrieve cluster status: %v", err)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Attribute", "Value"})
	t.AppendRow(table.Row{"Name", status.Name})
	t.AppendRow(table.Row{"ARN", status.Arn})
	t.AppendRow(table.Row{"Account", status.AccountID})
	t.AppendRow(table.Row{"Endpoint", status.Endpoint})
	t.AppendRow(table.Row{"Version", status.Version})
	t.AppendRow(table.Row{"OIDC issuer", status.IssuerURL})
	t.AppendRow(table.Row{"Pod Identity supported", status.PodIdentitySupported})
	t.AppendSeparator()
	for _, parameterName := range pipeline.PublishedClusterParameters() {
		value, ok := status.PublishedParameters[parameterName]
		if !ok {
			value = "(not published)"
		}
		t.AppendRow(table.Row{parameterName, value})
	}
	print(t.Render() + "\n")
	return nil
}
