package pipeline

import (
	"fmt"
	"strings"

	"github.com/cloudslice/eks-deployment-toolkit/pkg/eks-deployment-toolkit/config"
)

// Wave is a group of stages the pipeline runs together. Waves execute in
// order; stages within a wave are only ordered by the stage graph.
type Wave struct {
	Name   string
	Stages []*Stage
}

// Plan is the synthesized deployment: the waves to run and the dependency
// graph the orchestrator must respect. Keypair waves always come before the
// cluster waves of the same deployment entry.
type Plan struct {
	ClusterName  string
	TargetRegion string
	Waves        []Wave
	Graph        *StageGraph
}

// Stages returns all stages of the plan in wave order.
func (p *Plan) Stages() []*Stage {
	var stages []*Stage
	for _, wave := range p.Waves {
		stages = append(stages, wave.Stages...)
	}
	return stages
}

// Stage looks up a stage by id.
func (p *Plan) Stage(id string) (*Stage, bool) {
	for _, stage := range p.Stages() {
		if stage.ID == id {
			return stage, true
		}
	}
	return nil, false
}

// Synthesize builds the deployment plan from a resolved configuration
// document. For every deployment entry it emits a keypair wave followed by a
// cluster wave (network, IAM, cluster and params stages), and wires the
// fixed stage topology: the cluster stage runs after the network and IAM
// stages, the params stage after the cluster stage.
func Synthesize(doc config.Document) (*Plan, error) {
	clusterName, ok := doc.StringAt("eks", "cluster_name")
	if !ok {
		return nil, &config.ConfigError{Key: "eks.cluster_name", Reason: "missing or not a string"}
	}
	targetRegion, ok := doc.StringAt("eks", "target_region")
	if !ok {
		return nil, &config.ConfigError{Key: "eks.target_region", Reason: "missing or not a string"}
	}
	clusterVersion, ok := doc.StringAt("eks", "version")
	if !ok {
		clusterVersion = DefaultClusterVersion
	}

	deployments, err := doc.Deployments()
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		ClusterName:  clusterName,
		TargetRegion: targetRegion,
		Graph:        NewStageGraph(),
	}

	for _, deployment := range deployments {
		account, err := config.NewAccount(doc, deployment.Account, "")
		if err != nil {
			return nil, err
		}
		phase := deployment.Account

		for _, region := range deployment.Regions {
			keypair := newKeypairStage(doc, *account, phase, region)
			network := newNetworkStage(doc, *account, phase, region)
			iam := newIAMStage(doc, *account, phase, region, targetRegion, clusterName)
			cluster := newClusterStage(*account, phase, region, clusterVersion)
			params := newParamsStage(*account, phase, region)

			for _, stage := range []*Stage{keypair, network, iam, cluster, params} {
				if err := plan.Graph.AddStage(stage.ID); err != nil {
					return nil, err
				}
			}
			if err := plan.Graph.AddDependency(cluster.ID, network.ID); err != nil {
				return nil, err
			}
			if err := plan.Graph.AddDependency(cluster.ID, iam.ID); err != nil {
				return nil, err
			}
			if err := plan.Graph.AddDependency(params.ID, cluster.ID); err != nil {
				return nil, err
			}

			plan.Waves = append(plan.Waves,
				Wave{
					Name:   fmt.Sprintf("%s-Keypair-%s", titleCase(phase), region),
					Stages: []*Stage{keypair},
				},
				Wave{
					Name:   fmt.Sprintf("%s-EksCluster-%s", titleCase(phase), region),
					Stages: []*Stage{network, iam, cluster, params},
				},
			)
		}
	}
	return plan, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
