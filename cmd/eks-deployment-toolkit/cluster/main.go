package cluster

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

func BuildClusterSubcommand() *cobra.Command {
	clusterCommand := &cobra.Command{
		Use:   "cluster",
		Short: "Commands to inspect a deployed EKS cluster",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			figure.NewFigure("edt", "", true).Print()
			println()
		},
	}

	clusterCommand.AddCommand(buildClusterStatusCommand())
	clusterCommand.AddCommand(buildVerifyAddonsCommand())

	return clusterCommand
}
