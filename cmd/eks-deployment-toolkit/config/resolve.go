package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudslice/eks-deployment-toolkit/internal/utils"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// Command-line arguments
var vpcPresent bool
var resolveOutputFormat string

// Output formats
const (
	JsonOutputFormat  string = "json"
	TableOutputFormat string = "table"
)

var availableResolveOutputFormats = []string{JsonOutputFormat, TableOutputFormat}

func buildConfigResolveCommand() *cobra.Command {
	configResolveCommand := &cobra.Command{
		Use:                   "resolve",
		Example:               "edt config resolve",
		Short:                 "Resolve the deployment configuration, discovering the VPC of every target account",
		Long:                  "resolve loads the configuration file, assumes the parameter-store role in every target account, and fills in the VPC identifiers provisioned out-of-band",
		DisableFlagsInUseLine: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(availableResolveOutputFormats, resolveOutputFormat) {
				return fmt.Errorf("invalid output format %s", resolveOutputFormat)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return doConfigResolveCommand()
		},
	}

	configResolveCommand.Flags().BoolVarP(&vpcPresent, "vpc-present", "", false, "Assume the VPC identifiers are already embedded in the configuration and skip discovery")
	configResolveCommand.Flags().StringVarP(&resolveOutputFormat, "output-format", "f", JsonOutputFormat, "Output format. Supported formats: "+strings.Join(availableResolveOutputFormats, ", "))
	return configResolveCommand
}

// Actual logic implementing the "config resolve" command
func doConfigResolveCommand() error {
	doc := loadDocument()

	resolver := config.NewResolver(utils.AWSClient())
	resolved, err := resolver.Resolve(context.Background(), doc, vpcPresent)
	if err != nil {
		log.Fatalf("unable to resolve configuration: %v", err)
	}

	switch resolveOutputFormat {
	case TableOutputFormat:
		print(getResolveTableOutput(resolved))
	default:
		raw, err := json.MarshalIndent(resolved, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to render resolved configuration: %v", err)
		}
		println(string(raw))
	}
	return nil
}

func getResolveTableOutput(resolved config.Document) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Account", "Region", "VPC ID"})

	deployments, err := resolved.Deployments()
	if err != nil {
		return ""
	}
	for _, deployment := range deployments {
		for _, region := range deployment.Regions {
			vpcID, ok := resolved.VPCID(deployment.Account, region)
			if !ok {
				vpcID = "(not resolved)"
			}
			t.AppendRow([]interface{}{deployment.Account, region, vpcID})
		}
	}
	return t.Render()
}
