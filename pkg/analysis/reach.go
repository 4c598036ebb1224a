package analysis

import (
	"slices"
	"strings"

	"github.com/archscope/archscope/pkg/depgraph"
)

// Risk grades how dangerous a change to a service is, based on how much of
// the graph it can affect.
type Risk string

// Risk tiers, ordered from most to least severe.
const (
	RiskHigh   Risk = "HIGH"
	RiskMedium Risk = "MEDIUM"
	RiskLow    Risk = "LOW"
)

// Blast-radius tier thresholds over the total count of affected services.
const (
	blastHighThreshold   = 5
	blastMediumThreshold = 3
)

// Level groups the services discovered at one BFS depth.
type Level struct {
	Depth    int      `json:"depth" bson:"depth"`
	Services []string `json:"services" bson:"services"`
}

// BlastRadiusResult lists every service that transitively depends on the
// queried one, grouped by distance.
type BlastRadiusResult struct {
	Service string  `json:"service" bson:"service"`
	Levels  []Level `json:"levels" bson:"levels"`
	Total   int     `json:"total" bson:"total"`
	Risk    Risk    `json:"risk" bson:"risk"`
}

// AncestorsResult lists every service the queried one transitively depends
// on, grouped by distance. Depending on something is not inherently risky,
// so there is no tier.
type AncestorsResult struct {
	Service string  `json:"service" bson:"service"`
	Levels  []Level `json:"levels" bson:"levels"`
	Total   int     `json:"total" bson:"total"`
}

// SharedDependency is one element of a common-ancestors result: a service
// that all queried services transitively depend on.
type SharedDependency struct {
	Service  string `json:"service" bson:"service"`
	Coverage int    `json:"coverage" bson:"coverage"`
	Risk     Risk   `json:"risk" bson:"risk"`
}

// CommonAncestorsResult ranks the dependencies shared by a group of
// services — the usual starting point for root-cause analysis when several
// services break at once.
type CommonAncestorsResult struct {
	Services   []string           `json:"services" bson:"services"`
	Shared     []SharedDependency `json:"shared" bson:"shared"`
	RootCauses []string           `json:"root_causes" bson:"root_causes"`
}

// rootCauseLimit caps the ranked candidate list.
const rootCauseLimit = 5

// BlastRadius reports the downstream impact of a change to the named
// service: a BFS over incoming edges, leveled by depth and excluding the
// service itself. The second return is false when the name is not a known
// service; an unknown name is never an error.
func BlastRadius(g *depgraph.Graph, name string) (BlastRadiusResult, bool) {
	s, ok := g.Lookup(name)
	if !ok {
		return BlastRadiusResult{}, false
	}
	levels, total := levelsFrom(g, s, g.In)
	return BlastRadiusResult{
		Service: name,
		Levels:  levels,
		Total:   total,
		Risk:    blastRisk(total),
	}, true
}

// Ancestors reports everything the named service transitively depends on,
// leveled by depth. The second return is false for unknown names.
func Ancestors(g *depgraph.Graph, name string) (AncestorsResult, bool) {
	s, ok := g.Lookup(name)
	if !ok {
		return AncestorsResult{}, false
	}
	levels, total := levelsFrom(g, s, g.Out)
	return AncestorsResult{Service: name, Levels: levels, Total: total}, true
}

// CommonAncestors intersects the transitive dependency sets of the given
// services and ranks the shared elements by coverage (how many of the
// queried services reach them), tie-broken by name. Unknown or empty names
// contribute empty sets; with any such input the intersection is empty.
func CommonAncestors(g *depgraph.Graph, names []string) CommonAncestorsResult {
	result := CommonAncestorsResult{
		Services:   slices.Clone(names),
		Shared:     []SharedDependency{},
		RootCauses: []string{},
	}

	sets := make([]map[int]struct{}, len(names))
	for i, name := range names {
		if s, ok := g.Lookup(name); ok {
			sets[i] = reachableFrom(g, s, g.Out)
		} else {
			sets[i] = map[int]struct{}{}
		}
	}
	if len(sets) == 0 {
		return result
	}

	for candidate := range sets[0] {
		coverage := 0
		for _, set := range sets {
			if _, ok := set[candidate]; ok {
				coverage++
			}
		}
		if coverage != len(sets) {
			continue // not shared by all queried services
		}
		result.Shared = append(result.Shared, SharedDependency{
			Service:  g.Name(candidate),
			Coverage: coverage,
			Risk:     coverageRisk(coverage, len(sets)),
		})
	}

	slices.SortFunc(result.Shared, func(a, b SharedDependency) int {
		if a.Coverage != b.Coverage {
			return b.Coverage - a.Coverage
		}
		return strings.Compare(a.Service, b.Service)
	})

	for i, dep := range result.Shared {
		if i == rootCauseLimit {
			break
		}
		result.RootCauses = append(result.RootCauses, dep.Service)
	}
	return result
}

// levelsFrom runs a BFS from s over the given adjacency accessor, grouping
// discovered nodes by depth. Names within a level are sorted so output is
// deterministic.
func levelsFrom(g *depgraph.Graph, s int, next func(int) []int) ([]Level, int) {
	visited := make([]bool, g.Len())
	visited[s] = true

	levels := []Level{}
	total := 0
	frontier := []int{s}
	for depth := 1; len(frontier) > 0; depth++ {
		var nextFrontier []int
		var names []string
		for _, u := range frontier {
			for _, v := range next(u) {
				if visited[v] {
					continue
				}
				visited[v] = true
				nextFrontier = append(nextFrontier, v)
				names = append(names, g.Name(v))
			}
		}
		if len(names) > 0 {
			slices.Sort(names)
			levels = append(levels, Level{Depth: depth, Services: names})
			total += len(names)
		}
		frontier = nextFrontier
	}
	return levels, total
}

func blastRisk(total int) Risk {
	switch {
	case total >= blastHighThreshold:
		return RiskHigh
	case total >= blastMediumThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// coverageRisk grades a shared dependency by how many of the queried
// services reach it.
func coverageRisk(coverage, n int) Risk {
	switch {
	case coverage == n:
		return RiskHigh
	case 2*coverage >= n:
		return RiskMedium
	default:
		return RiskLow
	}
}
