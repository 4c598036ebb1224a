package analysis

import "github.com/archscope/archscope/pkg/depgraph"

// GraphMetrics holds the scalar structure measures of a graph.
// All fields are recomputed fresh per call; nothing is cached.
type GraphMetrics struct {
	Nodes         int     `json:"nodes" bson:"nodes"`
	Edges         int     `json:"edges" bson:"edges"`
	Density       float64 `json:"density" bson:"density"`
	Diameter      int     `json:"diameter" bson:"diameter"`
	AverageDegree float64 `json:"average_degree" bson:"average_degree"`

	// Degrees lists per-service in/out degree, sorted by service name.
	Degrees []DegreeRow `json:"degrees" bson:"degrees"`
}

// DegreeRow is one service's degree entry in the metrics table.
type DegreeRow struct {
	Service string `json:"service" bson:"service"`
	In      int    `json:"in" bson:"in"`
	Out     int    `json:"out" bson:"out"`
}

// Metrics computes the structural metrics of the graph.
//
// Density is |E| / (|V|·(|V|−1)) for |V|>1, else 0. Diameter is the maximum
// finite shortest-path distance over all ordered pairs (unreachable pairs
// are excluded, not treated as infinite), and 0 for |V|≤1. Average degree
// is the mean deduplicated out-neighbor count, 0 for an empty graph.
//
// Metrics is total: any structurally valid graph, including the empty one,
// yields a result.
func Metrics(g *depgraph.Graph) GraphMetrics {
	n := g.Len()
	m := GraphMetrics{
		Nodes:   n,
		Edges:   g.EdgeCount(),
		Degrees: make([]DegreeRow, n),
	}

	for i := 0; i < n; i++ {
		m.Degrees[i] = DegreeRow{
			Service: g.Name(i),
			In:      g.InDegree(i),
			Out:     g.OutDegree(i),
		}
	}

	if n > 1 {
		m.Density = float64(m.Edges) / float64(n*(n-1))
		m.Diameter = diameter(g)
	}
	if n > 0 {
		total := 0
		for i := 0; i < n; i++ {
			total += g.OutDegree(i)
		}
		m.AverageDegree = float64(total) / float64(n)
	}
	return m
}

// diameter is the longest finite shortest path over all ordered pairs.
func diameter(g *depgraph.Graph) int {
	max := 0
	for s := 0; s < g.Len(); s++ {
		dist, _ := bfsFrom(g, s)
		for t, d := range dist {
			if t != s && d > max {
				max = d
			}
		}
	}
	return max
}
