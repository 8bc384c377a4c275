package pipeline

import (
	"context"
	"log"

	"github.com/cloudslice/eks-deployment-toolkit/internal/utils"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/config"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Command-line arguments
var configFile string
var resolveVPCs bool

func BuildPipelineSubcommand() *cobra.Command {
	pipelineCommand := &cobra.Command{
		Use:   "pipeline",
		Short: "Commands to synthesize the deployment plan and inspect its stage graph",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			figure.NewFigure("edt", "", true).Print()
			println()
		},
	}

	pipelineCommand.PersistentFlags().StringVarP(&configFile, "config-file", "c", "", "Configuration file to use. Defaults to config/<EDT_CONFIG>.json, or config/config.json")
	pipelineCommand.PersistentFlags().BoolVarP(&resolveVPCs, "resolve", "", false, "Run VPC discovery against the target accounts before synthesizing")
	pipelineCommand.AddCommand(buildPipelineSynthCommand())
	pipelineCommand.AddCommand(buildPipelineOrderCommand())

	return pipelineCommand
}

// loadDocument reads the configuration and, when --resolve is set, fills in
// the VPC identifiers of every target account.
func loadDocument() config.Document {
	path := configFile
	if path == "" {
		path = config.ConfigFilePath(".")
	}
	log.Println("Loading configuration from " + path)
	doc, err := config.Load(path)
	if err != nil {
		log.Fatalf("unable to load configuration: %v", err)
	}

	if resolveVPCs {
		resolver := config.NewResolver(utils.AWSClient())
		doc, err = resolver.Resolve(context.Background(), doc, false)
		if err != nil {
			log.Fatalf("unable to resolve configuration: %v", err)
		}
	}
	return doc
}
