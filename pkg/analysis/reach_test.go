package analysis

import (
	"slices"
	"testing"
)

func TestBlastRadiusChain(t *testing.T) {
	r, ok := BlastRadius(chain(), "D")
	if !ok {
		t.Fatal("BlastRadius(D) not found")
	}
	if r.Total != 3 {
		t.Errorf("Total = %d, want 3", r.Total)
	}
	want := [][]string{{"C"}, {"B"}, {"A"}}
	if len(r.Levels) != 3 {
		t.Fatalf("Levels = %v, want 3 levels", r.Levels)
	}
	for i, lvl := range r.Levels {
		if lvl.Depth != i+1 {
			t.Errorf("Levels[%d].Depth = %d, want %d", i, lvl.Depth, i+1)
		}
		if !slices.Equal(lvl.Services, want[i]) {
			t.Errorf("Levels[%d].Services = %v, want %v", i, lvl.Services, want[i])
		}
	}
	if r.Risk != RiskMedium {
		t.Errorf("Risk = %v, want MEDIUM", r.Risk)
	}
}

func TestBlastRadiusUnknownService(t *testing.T) {
	if _, ok := BlastRadius(chain(), "DoesNotExist"); ok {
		t.Error("BlastRadius(DoesNotExist) = found, want empty option")
	}
}

func TestBlastRadiusRiskTiers(t *testing.T) {
	// Core has 6 direct dependents: HIGH.
	services := []string{"Core", "U1", "U2", "U3", "U4", "U5", "U6"}
	deps := map[string][]string{}
	for _, u := range services[1:] {
		deps[u] = []string{"Core"}
	}
	r, ok := BlastRadius(buildGraph(services, deps), "Core")
	if !ok {
		t.Fatal("BlastRadius(Core) not found")
	}
	if r.Total != 6 || r.Risk != RiskHigh {
		t.Errorf("Total=%d Risk=%v, want 6 HIGH", r.Total, r.Risk)
	}

	// A leaf with nothing depending on it: LOW.
	r, _ = BlastRadius(buildGraph(services, deps), "U1")
	if r.Total != 0 || r.Risk != RiskLow {
		t.Errorf("Total=%d Risk=%v, want 0 LOW", r.Total, r.Risk)
	}
}

func TestAncestorsChain(t *testing.T) {
	r, ok := Ancestors(chain(), "A")
	if !ok {
		t.Fatal("Ancestors(A) not found")
	}
	if r.Total != 3 {
		t.Errorf("Total = %d, want 3", r.Total)
	}
	want := [][]string{{"B"}, {"C"}, {"D"}}
	for i, lvl := range r.Levels {
		if !slices.Equal(lvl.Services, want[i]) {
			t.Errorf("Levels[%d] = %v, want %v", i, lvl.Services, want[i])
		}
	}
}

func TestAncestorsUnknownService(t *testing.T) {
	if _, ok := Ancestors(chain(), "Nope"); ok {
		t.Error("Ancestors(Nope) = found, want empty option")
	}
}

func TestCommonAncestors(t *testing.T) {
	// S1, S2, S3 all transitively depend on D; E is reachable from S1 only.
	g := buildGraph(
		[]string{"S1", "S2", "S3", "Mid", "D", "E"},
		map[string][]string{
			"S1":  {"Mid", "E"},
			"S2":  {"Mid"},
			"S3":  {"D"},
			"Mid": {"D"},
		},
	)

	r := CommonAncestors(g, []string{"S1", "S2", "S3"})

	if len(r.Shared) != 1 {
		t.Fatalf("Shared = %v, want exactly D", r.Shared)
	}
	d := r.Shared[0]
	if d.Service != "D" || d.Coverage != 3 || d.Risk != RiskHigh {
		t.Errorf("Shared[0] = %+v, want D coverage 3 HIGH", d)
	}
	if len(r.RootCauses) != 1 || r.RootCauses[0] != "D" {
		t.Errorf("RootCauses = %v, want [D]", r.RootCauses)
	}
}

func TestCommonAncestorsRanking(t *testing.T) {
	// Both query services reach Base and Log; ties break by name.
	g := buildGraph(
		[]string{"S1", "S2", "Base", "Log"},
		map[string][]string{
			"S1": {"Base", "Log"},
			"S2": {"Base", "Log"},
		},
	)
	r := CommonAncestors(g, []string{"S1", "S2"})
	if len(r.Shared) != 2 {
		t.Fatalf("Shared = %v, want 2", r.Shared)
	}
	if r.Shared[0].Service != "Base" || r.Shared[1].Service != "Log" {
		t.Errorf("tie-break order = %v %v, want Base then Log", r.Shared[0].Service, r.Shared[1].Service)
	}
}

func TestCommonAncestorsUnknownName(t *testing.T) {
	g := buildGraph([]string{"S1", "D"}, map[string][]string{"S1": {"D"}})

	// An unknown name contributes an empty reachable set, so nothing is
	// shared by all inputs. No error either way.
	r := CommonAncestors(g, []string{"S1", "Ghost"})
	if len(r.Shared) != 0 {
		t.Errorf("Shared = %v, want empty", r.Shared)
	}
}

func TestCommonAncestorsEmptyQuery(t *testing.T) {
	g := chain()

	// No query services means no intersection to take; the result is
	// empty rather than "everything".
	for _, names := range [][]string{nil, {}} {
		r := CommonAncestors(g, names)
		if len(r.Services) != 0 {
			t.Errorf("CommonAncestors(%v): Services = %v, want empty", names, r.Services)
		}
		if len(r.Shared) != 0 || len(r.RootCauses) != 0 {
			t.Errorf("CommonAncestors(%v): Shared = %v, RootCauses = %v, want empty",
				names, r.Shared, r.RootCauses)
		}
	}
}

func TestCommonAncestorsRootCauseLimit(t *testing.T) {
	services := []string{"S1", "S2"}
	shared := []string{"D1", "D2", "D3", "D4", "D5", "D6", "D7"}
	deps := map[string][]string{"S1": shared, "S2": shared}
	g := buildGraph(append(services, shared...), deps)

	r := CommonAncestors(g, services)
	if len(r.Shared) != 7 {
		t.Fatalf("Shared = %d, want 7", len(r.Shared))
	}
	if len(r.RootCauses) != 5 {
		t.Errorf("RootCauses = %v, want top 5 only", r.RootCauses)
	}
}
