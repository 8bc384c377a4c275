package pipeline

import (
	"log"
	"strings"

	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/pipeline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func buildPipelineSynthCommand() *cobra.Command {
	pipelineSynthCommand := &cobra.Command{
		Use:                   "synth",
		Example:               "edt pipeline synth",
		Short:                 "Synthesize the deployment plan from the configuration",
		Long:                  "synth builds the waves and provisioning stages for every deployment entry of the configuration, in the order the pipeline would run them",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPipelineSynthCommand()
		},
	}

	return pipelineSynthCommand
}

// Actual logic implementing the "pipeline synth" command
func doPipelineSynthCommand() error {
	plan, err := pipeline.Synthesize(loadDocument())
	if err != nil {
		log.Fatalf("unable to synthesize deployment plan: %v", err)
	}

	log.Printf("Synthesized plan for cluster %s (%d waves, %d stages)", plan.ClusterName, len(plan.Waves), len(plan.Stages()))
	print(getSynthTableOutput(plan))
	return nil
}

func getSynthTableOutput(plan *pipeline.Plan) string {
	t := table.NewWriter()
	if term.IsTerminal(0) {
		width, _, err := term.GetSize(0)
		if err == nil {
			t.SetAllowedRowLength(width)
		}
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, VAlign: text.VAlignMiddle},
	})
	t.AppendHeader(table.Row{"Wave", "Stage", "Kind", "Account", "Region", "Details"})
	for _, wave := range plan.Waves {
		for _, stage := range wave.Stages {
			t.AppendRow([]interface{}{wave.Name, stage.ID, stage.Kind, stage.Account.ID, stage.Region, stageDetails(stage)})
		}
		t.AppendSeparator()
	}
	return t.Render()
}

func stageDetails(stage *pipeline.Stage) string {
	details := []string{}
	if stage.KeyName != "" {
		details = append(details, "key "+stage.KeyName)
	}
	if stage.VPCID != "" {
		details = append(details, "vpc "+stage.VPCID)
	}
	if len(stage.Policies) > 0 {
		names := make([]string, len(stage.Policies))
		for i, policy := range stage.Policies {
			names[i] = policy.Name
		}
		details = append(details, "policies: "+strings.Join(names, " "))
	}
	if len(stage.Addons) > 0 {
		names := make([]string, len(stage.Addons))
		for i, addon := range stage.Addons {
			names[i] = addon.Name
		}
		details = append(details, "addons: "+strings.Join(names, " "))
	}
	if len(stage.Publishes) > 0 {
		details = append(details, "publishes: "+strings.Join(stage.Publishes, " "))
	}
	return strings.Join(details, "\n")
}
