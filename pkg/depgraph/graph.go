// Package depgraph builds the immutable service dependency graph that every
// analysis reads from.
//
// The graph is an arena of nodes with index-based adjacency lists: nodes live
// in a slice sorted by name, and edges are (from, to) index pairs. Node
// indices are stable for the lifetime of the graph, so downstream algorithms
// can use plain int-indexed slices instead of name-keyed maps.
//
// A Graph is never mutated after Build returns. All accessors are safe for
// concurrent use.
package depgraph

import (
	"slices"

	"github.com/archscope/archscope/pkg/facts"
)

// Role classifies a node for presentation and for the layering rules.
// It is a heuristic derived from the node's tag and degrees, not a
// structural property of the graph.
type Role int

const (
	// RoleIntermediate is a service with both dependents and dependencies.
	RoleIntermediate Role = iota
	// RoleRoot is a foundational service: others depend on it, it depends
	// on nothing.
	RoleRoot
	// RoleLeaf is a top-level consumer: it depends on others, nothing
	// depends on it.
	RoleLeaf
	// RoleOrphan is a fully disconnected service.
	RoleOrphan
	// RoleViewModel is a service tagged as a view model.
	RoleViewModel
)

// String returns the lowercase role name used in reports.
func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleLeaf:
		return "leaf"
	case RoleOrphan:
		return "orphan"
	case RoleViewModel:
		return "vm"
	default:
		return "intermediate"
	}
}

// Node is a service in the graph. Fields are populated from the first
// ServiceFact seen for the name; Role is computed during Build.
type Node struct {
	Name      string
	File      string
	Line      int
	ViewModel bool
	Role      Role
}

// Edge is a directed dependency as an index pair into the node arena.
type Edge struct {
	From int
	To   int
}

// Graph is the immutable dependency graph. Nodes are sorted by name, so
// iterating indices 0..Len()-1 visits services in deterministic order.
type Graph struct {
	nodes []Node
	index map[string]int
	out   [][]int // successor indices, sorted ascending
	in    [][]int // predecessor indices, sorted ascending
	edges []Edge
}

// Build constructs a graph from a fact set.
//
// One node is created per distinct service name; duplicate ServiceFacts
// collapse to a single node and the first fact wins for location and tag.
// Each LayerFact contributes edges from its owning service to every listed
// dependency that names a known service. Dependencies on unknown names are
// silently dropped, edges are deduplicated, and self-loops are kept as
// declared. Build never fails: an empty fact set yields an empty graph.
func Build(services []facts.ServiceFact, layers []facts.LayerFact) *Graph {
	g := &Graph{index: make(map[string]int)}

	seen := make(map[string]facts.ServiceFact)
	names := make([]string, 0, len(services))
	for _, s := range services {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = s
		names = append(names, s.Name)
	}
	slices.Sort(names)

	g.nodes = make([]Node, len(names))
	g.out = make([][]int, len(names))
	g.in = make([][]int, len(names))
	for i, name := range names {
		f := seen[name]
		g.nodes[i] = Node{
			Name:      name,
			File:      f.File,
			Line:      f.Line,
			ViewModel: f.IsViewModel(),
		}
		g.index[name] = i
	}

	edgeSet := make(map[Edge]struct{})
	for _, layer := range layers {
		from, ok := g.index[layer.Service]
		if !ok {
			continue
		}
		for _, dep := range layer.DependsOn {
			to, ok := g.index[dep]
			if !ok {
				continue // unresolved dependency: dropped
			}
			edgeSet[Edge{From: from, To: to}] = struct{}{}
		}
	}

	g.edges = make([]Edge, 0, len(edgeSet))
	for e := range edgeSet {
		g.edges = append(g.edges, e)
	}
	slices.SortFunc(g.edges, func(a, b Edge) int {
		if a.From != b.From {
			return a.From - b.From
		}
		return a.To - b.To
	})
	for _, e := range g.edges {
		g.out[e.From] = append(g.out[e.From], e.To)
		g.in[e.To] = append(g.in[e.To], e.From)
	}
	for i := range g.in {
		slices.Sort(g.in[i])
	}

	g.classify()
	return g
}

// classify assigns a Role to every node. Precedence: view-model tag, then
// orphan (fully disconnected), then root (no outgoing dependencies), then
// leaf (no dependents), then intermediate.
func (g *Graph) classify() {
	for i := range g.nodes {
		n := &g.nodes[i]
		out, in := len(g.out[i]), len(g.in[i])
		switch {
		case n.ViewModel:
			n.Role = RoleViewModel
		case out == 0 && in == 0:
			n.Role = RoleOrphan
		case out == 0:
			n.Role = RoleRoot
		case in == 0:
			n.Role = RoleLeaf
		default:
			n.Role = RoleIntermediate
		}
	}
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node at index i. The index must be in [0, Len()).
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Name returns the name of the node at index i.
func (g *Graph) Name(i int) string { return g.nodes[i].Name }

// Lookup returns the index of the named node and true, or 0 and false
// if the name is not a known service.
func (g *Graph) Lookup(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Out returns the successor indices of node i (its dependencies).
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Out(i int) []int { return g.out[i] }

// In returns the predecessor indices of node i (its dependents).
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) In(i int) []int { return g.in[i] }

// OutDegree returns the number of distinct dependencies of node i.
func (g *Graph) OutDegree(i int) int { return len(g.out[i]) }

// InDegree returns the number of distinct dependents of node i.
func (g *Graph) InDegree(i int) int { return len(g.in[i]) }

// Edges returns the edge list sorted by (From, To).
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// HasEdge reports whether a direct edge from → to exists.
func (g *Graph) HasEdge(from, to int) bool {
	_, found := slices.BinarySearch(g.out[from], to)
	return found
}

// Names returns all service names in sorted order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		names[i] = n.Name
	}
	return names
}

// Undirected returns the neighbor indices of node i ignoring edge
// direction, sorted ascending without duplicates. Self-loops do not make
// a node its own neighbor.
func (g *Graph) Undirected(i int) []int {
	merged := make([]int, 0, len(g.out[i])+len(g.in[i]))
	merged = append(merged, g.out[i]...)
	merged = append(merged, g.in[i]...)
	slices.Sort(merged)
	merged = slices.Compact(merged)
	merged = slices.DeleteFunc(merged, func(j int) bool { return j == i })
	return merged
}
