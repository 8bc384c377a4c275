package config

import (
	"log"

	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/config"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var configFile string

func BuildConfigSubcommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   "config",
		Short: "Commands to load, validate and resolve the deployment configuration",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			figure.NewFigure("edt", "", true).Print()
			println()
		},
	}

	configCommand.PersistentFlags().StringVarP(&configFile, "config-file", "c", "", "Configuration file to use. Defaults to config/<EDT_CONFIG>.json, or config/config.json")
	configCommand.AddCommand(buildConfigResolveCommand())
	configCommand.AddCommand(buildConfigPreflightCommand())

	return configCommand
}

// loadDocument reads the configuration file selected by --config-file, or the
// conventional config/<name>.json path otherwise.
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
	return doc
}
