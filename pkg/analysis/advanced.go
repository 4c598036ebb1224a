package analysis

import (
	"slices"
	"strings"

	"github.com/archscope/archscope/pkg/depgraph"
)

// AdvancedMetrics holds the centrality and decomposition measures.
type AdvancedMetrics struct {
	// Centrality maps service name to normalized betweenness centrality
	// in [0, 1]. All zero when no shortest path has interior nodes.
	Centrality map[string]float64 `json:"centrality" bson:"centrality"`

	// Clustering maps service name to its directed clustering
	// coefficient in [0, 1].
	Clustering map[string]float64 `json:"clustering" bson:"clustering"`

	// CutVertices lists the services whose removal disconnects the
	// undirected view of the graph, sorted by name.
	CutVertices []string `json:"cut_vertices" bson:"cut_vertices"`

	// Domains are the size≥2 components remaining after all cut vertices
	// are removed, sorted by size descending.
	Domains []Domain `json:"domains" bson:"domains"`
}

// Domain is a group of services that stay connected once the graph's cut
// vertices are removed. Members are sorted alphabetically.
type Domain struct {
	Members []string `json:"members" bson:"members"`
	Size    int      `json:"size" bson:"size"`
}

// Advanced computes betweenness centrality, clustering coefficients, and
// the cut-vertex/domain decomposition. Like every analysis it is a pure
// function of the graph and total over any valid input.
func Advanced(g *depgraph.Graph) AdvancedMetrics {
	cuts := cutVertices(g)
	return AdvancedMetrics{
		Centrality:  betweenness(g),
		Clustering:  clustering(g),
		CutVertices: cutNames(g, cuts),
		Domains:     domains(g, cuts),
	}
}

// betweenness counts, for every ordered pair with finite distance greater
// than one, the strictly-interior nodes of the canonical shortest path, then
// normalizes by the maximum count. Path reconstruction follows the
// lexicographic predecessor rule in [pathTable], so results are
// deterministic across equivalent graphs.
func betweenness(g *depgraph.Graph) map[string]float64 {
	n := g.Len()
	counts := make([]int, n)
	t := shortestPaths(g)

	for s := 0; s < n; s++ {
		for dst := 0; dst < n; dst++ {
			if s == dst || t.dist[s][dst] == unreachable || t.dist[s][dst] <= 1 {
				continue
			}
			t.walkInterior(s, dst, func(v int) { counts[v]++ })
		}
	}

	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	out := make(map[string]float64, n)
	for i := 0; i < n; i++ {
		v := 0.0
		if max > 0 {
			v = float64(counts[i]) / float64(max)
		}
		out[g.Name(i)] = v
	}
	return out
}

// clustering computes the directed clustering coefficient for every node:
// the fraction of unordered successor pairs that are themselves joined by
// an edge in either direction. Nodes with fewer than two successors get 0.
func clustering(g *depgraph.Graph) map[string]float64 {
	out := make(map[string]float64, g.Len())
	for v := 0; v < g.Len(); v++ {
		succ := g.Out(v)
		k := len(succ)
		if k < 2 {
			out[g.Name(v)] = 0
			continue
		}
		linked := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if g.HasEdge(succ[i], succ[j]) || g.HasEdge(succ[j], succ[i]) {
					linked++
				}
			}
		}
		out[g.Name(v)] = float64(linked) / float64(k*(k-1)/2)
	}
	return out
}

// cutVertices identifies articulation points by removal: a node is a cut
// vertex when deleting it strictly increases the number of connected
// components of the undirected view. O(V·(V+E)), fine for the graph sizes
// this tool targets.
func cutVertices(g *depgraph.Graph) []bool {
	n := g.Len()
	cuts := make([]bool, n)
	if n == 0 {
		return cuts
	}
	baseline := countComponents(g, nil)
	for v := 0; v < n; v++ {
		removed := make([]bool, n)
		removed[v] = true
		if countComponents(g, removed) > baseline {
			cuts[v] = true
		}
	}
	return cuts
}

// countComponents counts connected components of the undirected view,
// skipping removed nodes. Traversal uses an explicit stack so depth is
// bounded independent of graph size.
func countComponents(g *depgraph.Graph, removed []bool) int {
	n := g.Len()
	visited := make([]bool, n)
	count := 0
	for start := 0; start < n; start++ {
		if visited[start] || (removed != nil && removed[start]) {
			continue
		}
		count++
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, w := range g.Undirected(u) {
				if visited[w] || (removed != nil && removed[w]) {
					continue
				}
				visited[w] = true
				stack = append(stack, w)
			}
		}
	}
	return count
}

func cutNames(g *depgraph.Graph, cuts []bool) []string {
	names := []string{}
	for i, cut := range cuts {
		if cut {
			names = append(names, g.Name(i))
		}
	}
	return names // node order is name order
}

// domains removes all cut vertices and collects the remaining components of
// size ≥ 2, sorted descending by size, members alphabetical. Equal-sized
// domains order by first member so output is stable.
func domains(g *depgraph.Graph, cuts []bool) []Domain {
	n := g.Len()
	visited := make([]bool, n)
	result := []Domain{}

	for start := 0; start < n; start++ {
		if visited[start] || cuts[start] {
			continue
		}
		var members []string
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, g.Name(u))
			for _, w := range g.Undirected(u) {
				if visited[w] || cuts[w] {
					continue
				}
				visited[w] = true
				stack = append(stack, w)
			}
		}
		if len(members) < 2 {
			continue
		}
		slices.Sort(members)
		result = append(result, Domain{Members: members, Size: len(members)})
	}

	slices.SortStableFunc(result, func(a, b Domain) int {
		if a.Size != b.Size {
			return b.Size - a.Size
		}
		return strings.Compare(a.Members[0], b.Members[0])
	})
	return result
}
