package main

import (
	"github.com/cloudslice/eks-deployment-toolkit/cmd/eks-deployment-toolkit/cluster"
	"github.com/cloudslice/eks-deployment-toolkit/cmd/eks-deployment-toolkit/config"
	"github.com/cloudslice/eks-deployment-toolkit/cmd/eks-deployment-toolkit/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var rootCmd = &cobra.Command{
	Use:                   "edt",
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(config.BuildConfigSubcommand())
	rootCmd.AddCommand(pipeline.BuildPipelineSubcommand())
	rootCmd.AddCommand(cluster.BuildClusterSubcommand())
	rootCmd.AddCommand(&cobra.Command{
		Use: "autogen-docs",
		Run: func(cmd *cobra.Command, args []string) {
			doc.GenMarkdownTree(rootCmd, "./docs")
		},
	})
}

func main() {
	rootCmd.Execute()
}
