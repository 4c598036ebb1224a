package analysis

import (
	"fmt"

	"github.com/archscope/archscope/pkg/depgraph"
)

// Rule identifiers for violations. Stable: renderers and tests key on them.
const (
	RuleViewModelDependency = "vm-depends-on-vm"
	RuleDependsOnViewModel  = "service-depends-on-vm"
	RuleAcyclic             = "dependency-cycle"
	RuleRootHasDependencies = "root-has-dependencies"
	RuleIntermediateLayer   = "intermediate-layering"
)

// Warning identifiers. Warnings are informational, never fatal.
const (
	WarnRedundantEdge = "redundant-edge"
	WarnHotService    = "hot-service"
	WarnWideService   = "wide-service"
	WarnOrphanService = "orphan-service"
)

// Degree thresholds for the heuristic warning detectors.
const (
	hotInDegree   = 4
	wideOutDegree = 5
)

// Violation is a broken architecture invariant.
type Violation struct {
	Rule        string   `json:"rule" bson:"rule"`
	Description string   `json:"description" bson:"description"`
	Services    []string `json:"services" bson:"services"`
}

// Warning is a heuristic smell that deserves attention but breaks no rule.
type Warning struct {
	Kind        string   `json:"kind" bson:"kind"`
	Description string   `json:"description" bson:"description"`
	Services    []string `json:"services" bson:"services"`
}

// Invariants checks the fixed architecture rule set and returns zero or
// more violations. Results are ordered by rule, then by node/edge order,
// so repeated runs over the same graph produce identical output.
func Invariants(g *depgraph.Graph) []Violation {
	violations := []Violation{}

	// Rules 1 and 2: nothing may depend directly on a view model, and a
	// view model may not depend on another view model.
	for _, e := range g.Edges() {
		from, to := g.Node(e.From), g.Node(e.To)
		if !to.ViewModel || e.From == e.To {
			continue
		}
		if from.ViewModel {
			violations = append(violations, Violation{
				Rule:        RuleViewModelDependency,
				Description: fmt.Sprintf("view model %s depends on view model %s", from.Name, to.Name),
				Services:    []string{from.Name, to.Name},
			})
		} else {
			violations = append(violations, Violation{
				Rule:        RuleDependsOnViewModel,
				Description: fmt.Sprintf("%s depends on view model %s", from.Name, to.Name),
				Services:    []string{from.Name, to.Name},
			})
		}
	}

	// Rule 3: the graph must be acyclic. Every strongly connected
	// component with more than one member is a cycle, reported once with
	// its members in discovery order.
	for _, scc := range stronglyConnected(g) {
		if len(scc) < 2 {
			continue
		}
		names := make([]string, len(scc))
		for i, v := range scc {
			names[i] = g.Name(v)
		}
		violations = append(violations, Violation{
			Rule:        RuleAcyclic,
			Description: fmt.Sprintf("dependency cycle among %d services", len(names)),
			Services:    names,
		})
	}

	// Rules 4 and 5: layering constraints over the role classification.
	for i := 0; i < g.Len(); i++ {
		n := g.Node(i)
		switch n.Role {
		case depgraph.RoleRoot:
			if g.OutDegree(i) > 0 {
				violations = append(violations, Violation{
					Rule:        RuleRootHasDependencies,
					Description: fmt.Sprintf("root service %s has %d outgoing dependencies", n.Name, g.OutDegree(i)),
					Services:    []string{n.Name},
				})
			}
		case depgraph.RoleIntermediate:
			for _, t := range g.Out(i) {
				target := g.Node(t)
				if target.Role == depgraph.RoleRoot || target.Role == depgraph.RoleIntermediate {
					continue
				}
				violations = append(violations, Violation{
					Rule:        RuleIntermediateLayer,
					Description: fmt.Sprintf("intermediate service %s depends on %s service %s", n.Name, target.Role, target.Name),
					Services:    []string{n.Name, target.Name},
				})
			}
		}
	}

	return violations
}

// Warnings runs the heuristic smell detectors: redundant direct edges,
// hot services (in-degree ≥ 4), wide services (out-degree ≥ 5), and
// orphans. Output order follows node/edge order and is deterministic.
func Warnings(g *depgraph.Graph) []Warning {
	warnings := []Warning{}

	// A direct edge A→B is redundant when some other dependency C of A
	// already reaches B transitively.
	reach := make([]map[int]struct{}, g.Len())
	for i := 0; i < g.Len(); i++ {
		reach[i] = reachableFrom(g, i, g.Out)
	}
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		for _, c := range g.Out(e.From) {
			if c == e.To || c == e.From {
				continue
			}
			if _, ok := reach[c][e.To]; ok {
				warnings = append(warnings, Warning{
					Kind: WarnRedundantEdge,
					Description: fmt.Sprintf("%s→%s is redundant: %s already reaches %s through %s",
						g.Name(e.From), g.Name(e.To), g.Name(e.From), g.Name(e.To), g.Name(c)),
					Services: []string{g.Name(e.From), g.Name(e.To)},
				})
				break
			}
		}
	}

	for i := 0; i < g.Len(); i++ {
		n := g.Node(i)
		in, out := g.InDegree(i), g.OutDegree(i)
		if in >= hotInDegree {
			warnings = append(warnings, Warning{
				Kind:        WarnHotService,
				Description: fmt.Sprintf("%s has %d dependents; changes ripple widely", n.Name, in),
				Services:    []string{n.Name},
			})
		}
		if out >= wideOutDegree {
			warnings = append(warnings, Warning{
				Kind:        WarnWideService,
				Description: fmt.Sprintf("%s depends on %d services; consider splitting", n.Name, out),
				Services:    []string{n.Name},
			})
		}
		if in == 0 && out == 0 {
			warnings = append(warnings, Warning{
				Kind:        WarnOrphanService,
				Description: fmt.Sprintf("%s is declared but never used", n.Name),
				Services:    []string{n.Name},
			})
		}
	}

	return warnings
}

// stronglyConnected runs Tarjan's algorithm with an explicit stack so
// recursion depth is bounded independent of graph size. Components are
// returned in completion order with members in discovery order.
func stronglyConnected(g *depgraph.Graph) [][]int {
	n := g.Len()
	const unvisited = -1

	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	var (
		counter    int
		stack      []int // Tarjan component stack
		components [][]int
	)

	// frame replaces the recursive call: ni tracks which successor of v
	// is visited next when the frame resumes.
	type frame struct {
		v  int
		ni int
	}

	for start := 0; start < n; start++ {
		if index[start] != unvisited {
			continue
		}
		work := []frame{{v: start}}
		for len(work) > 0 {
			f := &work[len(work)-1]
			v := f.v

			if f.ni == 0 {
				index[v] = counter
				lowlink[v] = counter
				counter++
				stack = append(stack, v)
				onStack[v] = true
			}

			advanced := false
			succ := g.Out(v)
			for f.ni < len(succ) {
				w := succ[f.ni]
				f.ni++
				if index[w] == unvisited {
					work = append(work, frame{v: w})
					advanced = true
					break
				}
				if onStack[w] && index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
			if advanced {
				continue
			}

			// All successors handled: close the frame.
			if lowlink[v] == index[v] {
				var comp []int
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == v {
						break
					}
				}
				// Popping yields reverse discovery order.
				for i, j := 0, len(comp)-1; i < j; i, j = i+1, j-1 {
					comp[i], comp[j] = comp[j], comp[i]
				}
				components = append(components, comp)
			}
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1].v
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}
		}
	}
	return components
}
