package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// CycleError reports a dependency declaration that would make the stage
// graph cyclic.
type CycleError struct {
	Dependent    string
	Prerequisite string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("declaring %s as a prerequisite of %s would create a dependency cycle", e.Prerequisite, e.Dependent)
}

// StageGraph records the happens-before relationships between provisioning
// stages. It is consumed by an external orchestrator, which may run stages
// sequentially or in parallel wherever no edge exists between them.
type StageGraph struct {
	g graph.Graph[string, string]

	// declaration order, used to break ties deterministically when sorting
	declared map[string]int
}

func NewStageGraph() *StageGraph {
	return &StageGraph{
		g:        graph.New(graph.StringHash, graph.Directed(), graph.Acyclic(), graph.PreventCycles()),
		declared: map[string]int{},
	}
}

// AddStage registers a stage identifier. Adding the same stage twice has no
// effect.
func (s *StageGraph) AddStage(id string) error {
	err := s.g.AddVertex(id)
	if errors.Is(err, graph.ErrVertexAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to add stage %s: %v", id, err)
	}
	s.declared[id] = len(s.declared)
	return nil
}

// AddDependency declares that dependent must run after prerequisite. Both
// stages are registered if they were not already. The declaration is
// idempotent; an edge that would create a cycle is rejected with CycleError.
func (s *StageGraph) AddDependency(dependent, prerequisite string) error {
	if err := s.AddStage(prerequisite); err != nil {
		return err
	}
	if err := s.AddStage(dependent); err != nil {
		return err
	}

	err := s.g.AddEdge(prerequisite, dependent)
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return nil
	}
	if errors.Is(err, graph.ErrEdgeCreatesCycle) {
		return &CycleError{Dependent: dependent, Prerequisite: prerequisite}
	}
	if err != nil {
		return fmt.Errorf("unable to add dependency %s -> %s: %v", prerequisite, dependent, err)
	}
	return nil
}

// TopologicalOrder returns the stages so that every prerequisite appears
// before its dependents. The order is deterministic: ties are broken by
// declaration order.
func (s *StageGraph) TopologicalOrder() ([]string, error) {
	order, err := graph.StableTopologicalSort(s.g, func(a, b string) bool {
		return s.declared[a] < s.declared[b]
	})
	if err != nil {
		return nil, fmt.Errorf("unable to sort stage graph: %v", err)
	}
	return order, nil
}

// Dependencies returns the direct prerequisites of a stage, sorted by
// declaration order.
func (s *StageGraph) Dependencies(id string) ([]string, error) {
	predecessors, err := s.g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("unable to read stage graph: %v", err)
	}
	edges, ok := predecessors[id]
	if !ok {
		return nil, fmt.Errorf("unknown stage %s", id)
	}
	prerequisites := make([]string, 0, len(edges))
	for prerequisite := range edges {
		prerequisites = append(prerequisites, prerequisite)
	}
	sort.Slice(prerequisites, func(i, j int) bool {
		return s.declared[prerequisites[i]] < s.declared[prerequisites[j]]
	})
	return prerequisites, nil
}

// DOT writes the stage graph in Graphviz format.
func (s *StageGraph) DOT(w io.Writer) error {
	return draw.DOT(s.g, w)
}
