package analysis

import (
	"slices"
	"testing"
)

func TestBetweennessChain(t *testing.T) {
	adv := Advanced(chain())

	// Interior nodes of A→C, A→D, B→D are B (twice) and C (twice).
	if adv.Centrality["B"] != 1.0 || adv.Centrality["C"] != 1.0 {
		t.Errorf("centrality B=%v C=%v, want 1.0 each", adv.Centrality["B"], adv.Centrality["C"])
	}
	if adv.Centrality["A"] != 0 || adv.Centrality["D"] != 0 {
		t.Errorf("centrality A=%v D=%v, want 0 each", adv.Centrality["A"], adv.Centrality["D"])
	}
}

func TestBetweennessStar(t *testing.T) {
	g := buildGraph(
		[]string{"Hub", "S1", "S2", "S3"},
		map[string][]string{"Hub": {"S1", "S2", "S3"}},
	)
	adv := Advanced(g)

	// Every path has length 1, so no interior nodes exist anywhere and
	// normalization is skipped: the hub's centrality is still the maximum.
	for name, c := range adv.Centrality {
		if c != 0 {
			t.Errorf("centrality[%s] = %v, want 0", name, c)
		}
	}
	if m := Metrics(g); m.Diameter != 1 {
		t.Errorf("Diameter = %d, want 1", m.Diameter)
	}
}

func TestBetweennessDeterministicTieBreak(t *testing.T) {
	// Two shortest paths A→D: via B and via C. The canonical path takes
	// the lexicographically smaller predecessor, so B gets the credit.
	g := buildGraph(
		[]string{"A", "B", "C", "D"},
		map[string][]string{"A": {"B", "C"}, "B": {"D"}, "C": {"D"}},
	)
	adv := Advanced(g)
	if adv.Centrality["B"] != 1.0 {
		t.Errorf("centrality[B] = %v, want 1.0", adv.Centrality["B"])
	}
	if adv.Centrality["C"] != 0 {
		t.Errorf("centrality[C] = %v, want 0", adv.Centrality["C"])
	}
}

func TestClustering(t *testing.T) {
	g := buildGraph(
		[]string{"V", "A", "B", "C"},
		map[string][]string{"V": {"A", "B", "C"}, "A": {"B"}},
	)
	adv := Advanced(g)

	// V's successors {A,B,C} have one linked pair (A,B) of three.
	want := 1.0 / 3.0
	if got := adv.Clustering["V"]; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("clustering[V] = %v, want %v", got, want)
	}
	// A has one successor: coefficient 0 by definition.
	if adv.Clustering["A"] != 0 {
		t.Errorf("clustering[A] = %v, want 0", adv.Clustering["A"])
	}
}

func TestCutVerticesChain(t *testing.T) {
	adv := Advanced(chain())

	if !slices.Equal(adv.CutVertices, []string{"B", "C"}) {
		t.Errorf("CutVertices = %v, want [B C]", adv.CutVertices)
	}
	// After removing B and C only singletons remain: no domains.
	if len(adv.Domains) != 0 {
		t.Errorf("Domains = %v, want none", adv.Domains)
	}
}

func TestDomains(t *testing.T) {
	// Two triangles joined through a single bridge node X.
	g := buildGraph(
		[]string{"A1", "A2", "A3", "B1", "B2", "B3", "X"},
		map[string][]string{
			"A1": {"A2", "A3"}, "A2": {"A3"},
			"B1": {"B2", "B3"}, "B2": {"B3"},
			"A3": {"X"}, "X": {"B1"},
		},
	)
	adv := Advanced(g)

	// X bridges the triangles; A3 and B1 anchor the bridge, so all three
	// are articulation points.
	if !slices.Equal(adv.CutVertices, []string{"A3", "B1", "X"}) {
		t.Fatalf("CutVertices = %v, want [A3 B1 X]", adv.CutVertices)
	}
	// Removing them leaves the two remaining triangle pairs as domains.
	if len(adv.Domains) != 2 {
		t.Fatalf("Domains = %v, want 2", adv.Domains)
	}
	if !slices.Equal(adv.Domains[0].Members, []string{"A1", "A2"}) {
		t.Errorf("Domains[0] = %v, want [A1 A2]", adv.Domains[0].Members)
	}
	if !slices.Equal(adv.Domains[1].Members, []string{"B2", "B3"}) {
		t.Errorf("Domains[1] = %v, want [B2 B3]", adv.Domains[1].Members)
	}
}

func TestAdvancedEmptyGraph(t *testing.T) {
	adv := Advanced(buildGraph(nil, nil))
	if len(adv.Centrality) != 0 || len(adv.Clustering) != 0 {
		t.Errorf("expected empty maps, got %v / %v", adv.Centrality, adv.Clustering)
	}
	if len(adv.CutVertices) != 0 || len(adv.Domains) != 0 {
		t.Errorf("expected no cuts/domains, got %v / %v", adv.CutVertices, adv.Domains)
	}
}
