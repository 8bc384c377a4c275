package config

import (
	"context"
	"log"
	"strings"

	"github.com/cloudslice/eks-deployment-toolkit/internal/utils"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/preflight"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func buildConfigPreflightCommand() *cobra.Command {
	configPreflightCommand := &cobra.Command{
		Use:                   "preflight",
		Example:               "edt config preflight",
		Short:                 "Check that the cross-account parameter-store roles permit VPC discovery",
		Long:                  "preflight assumes the parameter-store role in every target account and verifies that its inline policies allow the ssm:GetParameter calls the resolver will perform",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doConfigPreflightCommand()
		},
	}

	return configPreflightCommand
}

// Actual logic implementing the "config preflight" command
func doConfigPreflightCommand() error {
	doc := loadDocument()

	checker := preflight.NewChecker(utils.AWSClient())
	checks, err := checker.CheckAccounts(context.Background(), doc)
	if err != nil {
		log.Fatalf("preflight check failed: %v", err)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Account", "Account ID", "Role ARN", "Allowed Regions", "Denied Regions"})
	allOk := true
	for _, check := range checks {
		t.AppendRow([]interface{}{
			check.AccountLabel,
			check.AccountID,
			check.RoleArn,
			strings.Join(check.AllowedRegions, ", "),
			strings.Join(check.DeniedRegions, ", "),
		})
		if !check.Ok() {
			allOk = false
		}
	}
	print(t.Render() + "\n")

	if !allOk {
		warningColor := color.New(color.BgRed, color.FgWhite, color.Bold)
		log.Println(warningColor.Sprint("Some accounts are not ready") + ": VPC discovery would fail in the denied regions listed above")
		for _, check := range checks {
			if check.Ok() {
				continue
			}
			log.Printf("Role %s should carry an inline policy equivalent to:\n%s", check.RoleArn, check.ExpectedPolicy)
		}
	} else {
		log.Println("All target accounts are ready for VPC discovery")
	}
	return nil
}
