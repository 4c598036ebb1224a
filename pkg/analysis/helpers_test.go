package analysis

import (
	"github.com/archscope/archscope/pkg/depgraph"
	"github.com/archscope/archscope/pkg/facts"
)

// buildGraph is the shared test fixture builder: services by name, one
// layer fact per entry in deps.
func buildGraph(services []string, deps map[string][]string) *depgraph.Graph {
	sf := make([]facts.ServiceFact, len(services))
	for i, s := range services {
		sf[i] = facts.ServiceFact{Name: s}
	}
	var lf []facts.LayerFact
	for svc, d := range deps {
		lf = append(lf, facts.LayerFact{Service: svc, DependsOn: d})
	}
	return depgraph.Build(sf, lf)
}

// chain builds A→B→C→D.
func chain() *depgraph.Graph {
	return buildGraph(
		[]string{"A", "B", "C", "D"},
		map[string][]string{"A": {"B"}, "B": {"C"}, "C": {"D"}},
	)
}
