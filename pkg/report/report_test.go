package report

import (
	"context"
	"strings"
	"testing"

	"github.com/archscope/archscope/pkg/depgraph"
	"github.com/archscope/archscope/pkg/facts"
)

func sampleGraph() *depgraph.Graph {
	return depgraph.Build(
		[]facts.ServiceFact{
			{Name: "App", File: "app.swift", Line: 1},
			{Name: "Core"},
			{Name: "Mid"},
			{Name: "ScreenVM"},
		},
		[]facts.LayerFact{
			{Service: "App", DependsOn: []string{"Mid"}},
			{Service: "Mid", DependsOn: []string{"Core"}},
			{Service: "App", DependsOn: []string{"ScreenVM"}},
		},
	)
}

func TestBuild(t *testing.T) {
	r := Build(context.Background(), sampleGraph())

	if r.ID == "" {
		t.Error("report ID empty")
	}
	if r.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
	if len(r.Services) != 4 {
		t.Errorf("services = %d, want 4", len(r.Services))
	}
	if len(r.Edges) != 3 {
		t.Errorf("edges = %d, want 3", len(r.Edges))
	}
	if r.Metrics.Nodes != 4 {
		t.Errorf("Metrics.Nodes = %d, want 4", r.Metrics.Nodes)
	}
	// App depends on a view model: the run is not healthy.
	if r.Healthy() {
		t.Errorf("Healthy() = true with violations %v", r.Violations)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	r := Build(context.Background(), sampleGraph())

	data, err := Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.ID != r.ID {
		t.Errorf("ID = %s, want %s", back.ID, r.ID)
	}
	if len(back.Services) != len(r.Services) || len(back.Violations) != len(r.Violations) {
		t.Errorf("round trip lost entries: %d/%d services, %d/%d violations",
			len(back.Services), len(r.Services), len(back.Violations), len(r.Violations))
	}
}

func TestMarkdown(t *testing.T) {
	r := Build(context.Background(), sampleGraph())
	md := Markdown(r)

	for _, want := range []string{
		"# Architecture Analysis",
		"## Services",
		"| App |",
		"## Violations",
		"service-depends-on-vm",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownCleanReport(t *testing.T) {
	g := depgraph.Build(
		[]facts.ServiceFact{{Name: "A"}, {Name: "B"}},
		[]facts.LayerFact{{Service: "A", DependsOn: []string{"B"}}},
	)
	md := Markdown(Build(context.Background(), g))
	if !strings.Contains(md, "No invariant violations.") {
		t.Error("markdown missing clean-violations line")
	}
	if !strings.Contains(md, "No warnings.") {
		t.Error("markdown missing clean-warnings line")
	}
}

func TestToDOT(t *testing.T) {
	r := Build(context.Background(), sampleGraph())
	dot := ToDOT(r)

	for _, want := range []string{
		"digraph architecture",
		`"App" -> "Mid";`,
		"fillcolor=lightyellow", // the view model
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTMarksCutVertices(t *testing.T) {
	g := depgraph.Build(
		[]facts.ServiceFact{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		[]facts.LayerFact{
			{Service: "A", DependsOn: []string{"B"}},
			{Service: "B", DependsOn: []string{"C"}},
		},
	)
	dot := ToDOT(Build(context.Background(), g))
	if !strings.Contains(dot, "penwidth=2.5") {
		t.Errorf("DOT missing cut-vertex outline:\n%s", dot)
	}
}
