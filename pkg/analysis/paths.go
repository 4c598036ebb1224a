// Package analysis implements the read-only computations over a dependency
// graph: structural metrics, centrality and decomposition, reachability
// queries, and the invariant/warning checker.
//
// Every function in this package is a pure function of an immutable
// [depgraph.Graph]. Nothing is cached between calls, so independent
// computations can run concurrently without coordination.
package analysis

import "github.com/archscope/archscope/pkg/depgraph"

// unreachable marks a pair with no directed path in a distance table.
const unreachable = -1

// pathTable holds all-pairs shortest paths over the directed graph.
// dist[s][t] is the hop count of the shortest path s→t, or unreachable.
// pred[s][t] is the predecessor of t on the canonical shortest path from s,
// or -1 for t==s and unreachable targets.
//
// When several shortest paths exist, the canonical one is the path whose
// predecessors have the lexicographically smallest names. Node indices are
// name-sorted, so "smallest index" and "smallest name" coincide; this makes
// path reconstruction (and everything derived from it) deterministic across
// equivalent graphs regardless of fact ordering.
type pathTable struct {
	dist [][]int
	pred [][]int
}

// shortestPaths runs a BFS from every node over outgoing edges.
// O(V·(V+E)) for the unweighted graphs this tool targets.
func shortestPaths(g *depgraph.Graph) pathTable {
	n := g.Len()
	t := pathTable{
		dist: make([][]int, n),
		pred: make([][]int, n),
	}
	for s := 0; s < n; s++ {
		t.dist[s], t.pred[s] = bfsFrom(g, s)
	}
	return t
}

// bfsFrom computes distances and canonical predecessors from a single source.
func bfsFrom(g *depgraph.Graph, s int) (dist, pred []int) {
	n := g.Len()
	dist = make([]int, n)
	pred = make([]int, n)
	for i := range dist {
		dist[i] = unreachable
		pred[i] = -1
	}
	dist[s] = 0

	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Out(u) {
			if dist[v] != unreachable {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}

	// Predecessors are assigned after distances settle: the canonical
	// predecessor of t is the smallest-indexed u with an edge u→t at
	// distance dist[t]-1, independent of BFS visit order.
	for v := 0; v < n; v++ {
		if v == s || dist[v] == unreachable {
			continue
		}
		for _, u := range g.In(v) {
			if dist[u] == dist[v]-1 {
				pred[v] = u
				break // In() is sorted ascending, first hit is canonical
			}
		}
	}
	return dist, pred
}

// walkInterior visits the strictly-interior nodes of the canonical shortest
// path s→t, calling fn for each. The endpoints are never visited.
func (t pathTable) walkInterior(s, dst int, fn func(node int)) {
	for v := t.pred[s][dst]; v != -1 && v != s; v = t.pred[s][v] {
		fn(v)
	}
}

// reachableFrom returns the set of nodes reachable from s over the given
// adjacency accessor, excluding s itself. Used by the reachability queries
// and the redundant-edge detector.
func reachableFrom(g *depgraph.Graph, s int, next func(int) []int) map[int]struct{} {
	out := make(map[int]struct{})
	queue := []int{s}
	visited := make([]bool, g.Len())
	visited[s] = true
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range next(u) {
			if visited[v] {
				continue
			}
			visited[v] = true
			out[v] = struct{}{}
			queue = append(queue, v)
		}
	}
	return out
}
