package pipeline

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/pipeline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
	"golang.org/x/term"
)

// Command-line arguments
var outputFormat string
var outputFile string

// Output formats
const (
	CsvOutputFormat  string = "csv"
	TextOutputFormat string = "text"
	DotOutputFormat  string = "dot"
)

var availableOutputFormats = []string{CsvOutputFormat, TextOutputFormat, DotOutputFormat}

const DefaultOutputFormat = TextOutputFormat

func buildPipelineOrderCommand() *cobra.Command {
	pipelineOrderCommand := &cobra.Command{
		Use:                   "order",
		Example:               "edt pipeline order -f dot",
		Short:                 "Print the execution order of the provisioning stages",
		Long:                  "order synthesizes the deployment plan and prints its stages so that every prerequisite appears before its dependents",
		DisableFlagsInUseLine: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(availableOutputFormats, outputFormat) {
				return fmt.Errorf("invalid output format %s", outputFormat)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return doPipelineOrderCommand()
		},
	}

	pipelineOrderCommand.Flags().StringVarP(&outputFormat, "output-format", "f", DefaultOutputFormat, "Output format. Supported formats: "+strings.Join(availableOutputFormats, ", "))
	pipelineOrderCommand.Flags().StringVarP(&outputFile, "output-file", "o", "", "Output file. If not specified, output will be printed to stdout.")
	return pipelineOrderCommand
}

// Actual logic implementing the "pipeline order" command
func doPipelineOrderCommand() error {
	plan, err := pipeline.Synthesize(loadDocument())
	if err != nil {
		log.Fatalf("unable to synthesize deployment plan: %v", err)
	}

	output, err := getOrderOutput(plan)
	if err != nil {
		return err
	}
	if outputFile != "" {
		return os.WriteFile(outputFile, []byte(output), 0644)
	} else {
		print(output)
	}

	return nil
}

func getOrderOutput(plan *pipeline.Plan) (string, error) {
	switch outputFormat {
	case TextOutputFormat:
		return getTextOutput(plan)
	case DotOutputFormat:
		return getDotOutput(plan)
	case CsvOutputFormat:
		return getCsvOutput(plan)
	default:
		return "", fmt.Errorf("unsupported output format %s", outputFormat)
	}
}

func getTextOutput(plan *pipeline.Plan) (string, error) {
	order, err := plan.Graph.TopologicalOrder()
	if err != nil {
		return "", err
	}

	t := table.NewWriter()
	if term.IsTerminal(0) {
		width, _, err := term.GetSize(0)
		if err == nil {
			t.SetAllowedRowLength(width)
		}
	}
	t.AppendHeader(table.Row{"#", "Stage", "Runs After"})
	for i, stageID := range order {
		prerequisites, err := plan.Graph.Dependencies(stageID)
		if err != nil {
			return "", err
		}
		t.AppendRow([]interface{}{i + 1, stageID, strings.Join(prerequisites, ", ")})
	}

	return t.Render(), nil
}

func getDotOutput(plan *pipeline.Plan) (string, error) {
	sb := new(strings.Builder)
	if err := plan.Graph.DOT(sb); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func getCsvOutput(plan *pipeline.Plan) (string, error) {
	order, err := plan.Graph.TopologicalOrder()
	if err != nil {
		return "", err
	}

	sb := new(strings.Builder)
	sb.WriteString("stage,runs_after\n")
	for _, stageID := range order {
		prerequisites, err := plan.Graph.Dependencies(stageID)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("%s,%s", stageID, strings.Join(prerequisites, " ")))
		sb.WriteRune('\n')
	}

	return sb.String(), nil
}
