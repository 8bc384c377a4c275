package pipeline

import (
	"fmt"

	"github.com/cloudslice/eks-deployment-toolkit/internal/aws/iampolicy"
	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/config"
)

type StageKind string

const (
	StageKeypair StageKind = "keypair"
	StageNetwork StageKind = "network"
	StageIAM     StageKind = "iam"
	StageCluster StageKind = "cluster"
	StageParams  StageKind = "params"
)

// NamedPolicy pairs an IAM policy document with the managed-policy name it
// is provisioned under.
type NamedPolicy struct {
	Name     string
	Document *iampolicy.Document
}

// Stage is one unit of provisioning, bound to an account and region.
// Prerequisites are declared on the plan's StageGraph, not on the stage
// itself.
type Stage struct {
	ID        string
	Kind      StageKind
	Account   config.Account
	Phase     string
	Region    string
	KeyName   string        // keypair stage only
	VPCID     string        // network stage, when discovered by the resolver
	Policies  []NamedPolicy // iam stage only
	Addons    []Addon       // cluster stage only
	Publishes []string      // parameters written by this stage
}

func stageID(phase, region string, kind StageKind) string {
	return fmt.Sprintf("%s-%s/%s", phase, region, kind)
}

func newKeypairStage(doc config.Document, account config.Account, phase, region string) *Stage {
	keyName, _ := doc.StringAt("admin", "key_name")
	return &Stage{
		ID:      stageID(phase, region, StageKeypair),
		Kind:    StageKeypair,
		Account: account,
		Phase:   phase,
		Region:  region,
		KeyName: keyName,
	}
}

func newNetworkStage(doc config.Document, account config.Account, phase, region string) *Stage {
	vpcID, _ := doc.VPCID(account.Label, region)
	return &Stage{
		ID:        stageID(phase, region, StageNetwork),
		Kind:      StageNetwork,
		Account:   account,
		Phase:     phase,
		Region:    region,
		VPCID:     vpcID,
		Publishes: []string{ParamVPCID},
	}
}

func newIAMStage(doc config.Document, account config.Account, phase, region, targetRegion, clusterName string) *Stage {
	// KMS keys live in the pipeline account; cluster accounts get usage
	// rights on them.
	pipelineLabel, _ := doc.StringAt("pipeline", "account")
	keyOwnerID, _ := config.AccountIDFromLabel(doc, pipelineLabel)

	return &Stage{
		ID:      stageID(phase, region, StageIAM),
		Kind:    StageIAM,
		Account: account,
		Phase:   phase,
		Region:  region,
		Policies: []NamedPolicy{
			{
				Name:     iampolicy.KMSCrossAccountUsagePolicyName,
				Document: iampolicy.KMSCrossAccountUsagePolicy(keyOwnerID),
			},
			{
				Name:     iampolicy.PipelineSynthPolicyName,
				Document: iampolicy.PipelineSynthPolicy(targetRegion, account.ID, clusterName),
			},
		},
	}
}

func newClusterStage(account config.Account, phase, region string, clusterVersion string) *Stage {
	addons := DefaultAddonCatalog()
	if !SupportsPodIdentity(clusterVersion) {
		filtered := addons[:0]
		for _, addon := range addons {
			if addon.Name != "eks-pod-identity-agent" {
				filtered = append(filtered, addon)
			}
		}
		addons = filtered
	}
	return &Stage{
		ID:      stageID(phase, region, StageCluster),
		Kind:    StageCluster,
		Account: account,
		Phase:   phase,
		Region:  region,
		Addons:  addons,
	}
}

func newParamsStage(account config.Account, phase, region string) *Stage {
	return &Stage{
		ID:        stageID(phase, region, StageParams),
		Kind:      StageParams,
		Account:   account,
		Phase:     phase,
		Region:    region,
		Publishes: PublishedClusterParameters(),
	}
}
