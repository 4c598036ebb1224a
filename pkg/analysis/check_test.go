package analysis

import (
	"slices"
	"testing"

	"github.com/archscope/archscope/pkg/depgraph"
)

func violationsByRule(vs []Violation, rule string) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}

func warningsByKind(ws []Warning, kind string) []Warning {
	var out []Warning
	for _, w := range ws {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

func TestInvariantsCleanChain(t *testing.T) {
	if vs := Invariants(chain()); len(vs) != 0 {
		t.Errorf("Invariants = %v, want none", vs)
	}
}

func TestInvariantsRootRuleSilentOnClassifiedRoots(t *testing.T) {
	// D ends two paths, so it classifies as a root. Classification
	// already requires zero outgoing dependencies, so the root rule
	// must stay silent on any graph built through classification.
	g := buildGraph(
		[]string{"A", "B", "C", "D"},
		map[string][]string{"A": {"B"}, "B": {"D"}, "C": {"D"}},
	)

	var foundRoot bool
	for i := 0; i < g.Len(); i++ {
		if n := g.Node(i); n.Role == depgraph.RoleRoot {
			foundRoot = true
			if g.OutDegree(i) != 0 {
				t.Errorf("root %s has out-degree %d", n.Name, g.OutDegree(i))
			}
		}
	}
	if !foundRoot {
		t.Fatal("fixture should classify at least one root")
	}

	if vs := violationsByRule(Invariants(g), RuleRootHasDependencies); len(vs) != 0 {
		t.Errorf("root violations = %v, want none", vs)
	}
}

func TestInvariantsCycle(t *testing.T) {
	g := buildGraph(
		[]string{"A", "B", "C"},
		map[string][]string{"A": {"B"}, "B": {"C"}, "C": {"A"}},
	)
	cycles := violationsByRule(Invariants(g), RuleAcyclic)
	if len(cycles) != 1 {
		t.Fatalf("cycle violations = %v, want exactly 1", cycles)
	}
	if !slices.Equal(cycles[0].Services, []string{"A", "B", "C"}) {
		t.Errorf("cycle members = %v, want [A B C] in discovery order", cycles[0].Services)
	}
}

func TestInvariantsTwoIndependentCycles(t *testing.T) {
	g := buildGraph(
		[]string{"A", "B", "X", "Y"},
		map[string][]string{"A": {"B"}, "B": {"A"}, "X": {"Y"}, "Y": {"X"}},
	)
	if cycles := violationsByRule(Invariants(g), RuleAcyclic); len(cycles) != 2 {
		t.Errorf("cycle violations = %v, want 2", cycles)
	}
}

func TestInvariantsSelfLoopNotACycleViolation(t *testing.T) {
	g := buildGraph([]string{"A"}, map[string][]string{"A": {"A"}})
	if cycles := violationsByRule(Invariants(g), RuleAcyclic); len(cycles) != 0 {
		// Single-member SCCs are not reported, matching the rule text.
		t.Errorf("cycle violations = %v, want none for a self-loop", cycles)
	}
}

func TestInvariantsViewModelRules(t *testing.T) {
	g := buildGraph(
		[]string{"ScreenVM", "DetailVM", "OrderService"},
		map[string][]string{
			"ScreenVM":     {"DetailVM"},
			"OrderService": {"ScreenVM"},
		},
	)
	vs := Invariants(g)

	vmvm := violationsByRule(vs, RuleViewModelDependency)
	if len(vmvm) != 1 || !slices.Equal(vmvm[0].Services, []string{"ScreenVM", "DetailVM"}) {
		t.Errorf("vm→vm violations = %v, want ScreenVM→DetailVM", vmvm)
	}

	anyvm := violationsByRule(vs, RuleDependsOnViewModel)
	if len(anyvm) != 1 || !slices.Equal(anyvm[0].Services, []string{"OrderService", "ScreenVM"}) {
		t.Errorf("service→vm violations = %v, want OrderService→ScreenVM", anyvm)
	}
}

func TestInvariantsIntermediateDependsOnViewModel(t *testing.T) {
	// Mid has dependents and dependencies, so it classifies as
	// intermediate; its edge to a view model breaks the layering rule.
	g := buildGraph(
		[]string{"App", "Mid", "ScreenVM"},
		map[string][]string{"App": {"Mid"}, "Mid": {"ScreenVM"}},
	)
	vs := violationsByRule(Invariants(g), RuleIntermediateLayer)
	if len(vs) != 1 || !slices.Equal(vs[0].Services, []string{"Mid", "ScreenVM"}) {
		t.Errorf("layering violations = %v, want Mid→ScreenVM", vs)
	}
}

func TestWarningsRedundantEdge(t *testing.T) {
	// A→C is redundant: A→B→C covers it.
	g := buildGraph(
		[]string{"A", "B", "C"},
		map[string][]string{"A": {"B", "C"}, "B": {"C"}},
	)
	ws := warningsByKind(Warnings(g), WarnRedundantEdge)
	if len(ws) != 1 || !slices.Equal(ws[0].Services, []string{"A", "C"}) {
		t.Errorf("redundant warnings = %v, want A→C", ws)
	}
}

func TestWarningsDegreeThresholds(t *testing.T) {
	services := []string{"Hot", "Wide", "U1", "U2", "U3", "U4", "W1"}
	deps := map[string][]string{
		"U1":   {"Hot"},
		"U2":   {"Hot"},
		"U3":   {"Hot"},
		"U4":   {"Hot"},
		"Wide": {"Hot", "U1", "U2", "U3", "U4"},
	}
	ws := Warnings(buildGraph(services, deps))

	hot := warningsByKind(ws, WarnHotService)
	if len(hot) != 1 || hot[0].Services[0] != "Hot" {
		t.Errorf("hot warnings = %v, want Hot", hot)
	}
	wide := warningsByKind(ws, WarnWideService)
	if len(wide) != 1 || wide[0].Services[0] != "Wide" {
		t.Errorf("wide warnings = %v, want Wide", wide)
	}
	orphan := warningsByKind(ws, WarnOrphanService)
	if len(orphan) != 1 || orphan[0].Services[0] != "W1" {
		t.Errorf("orphan warnings = %v, want W1", orphan)
	}
}

func TestWarningsCleanGraph(t *testing.T) {
	g := buildGraph([]string{"A", "B"}, map[string][]string{"A": {"B"}})
	if ws := Warnings(g); len(ws) != 0 {
		t.Errorf("Warnings = %v, want none", ws)
	}
}
