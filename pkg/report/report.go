// Package report assembles the output of every analysis into a single
// immutable document and renders it for humans, agents, and storage.
//
// A Report is the canonical serialization format for analysis results. It is
// designed for round-trip fidelity and deterministic output: building two
// reports from equivalent fact sets produces byte-identical JSON apart from
// the run ID and timestamp.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/archscope/archscope/pkg/analysis"
	"github.com/archscope/archscope/pkg/depgraph"
	"github.com/archscope/archscope/pkg/observability"
)

// ServiceEntry is one service row in the report, carrying its source
// location and computed role.
type ServiceEntry struct {
	Name string `json:"name" bson:"name"`
	File string `json:"file,omitempty" bson:"file,omitempty"`
	Line int    `json:"line,omitempty" bson:"line,omitempty"`
	Role string `json:"role" bson:"role"`
}

// EdgeEntry is one dependency edge by service name.
type EdgeEntry struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Report is the complete result of one analysis run.
type Report struct {
	ID          string    `json:"id" bson:"_id"`
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`

	Services []ServiceEntry `json:"services" bson:"services"`
	Edges    []EdgeEntry    `json:"edges" bson:"edges"`

	Metrics    analysis.GraphMetrics    `json:"metrics" bson:"metrics"`
	Advanced   analysis.AdvancedMetrics `json:"advanced" bson:"advanced"`
	Violations []analysis.Violation     `json:"violations" bson:"violations"`
	Warnings   []analysis.Warning       `json:"warnings" bson:"warnings"`
}

// Build runs every analysis over the graph and assembles the report.
// The graph is only read; concurrent Build calls over the same graph are
// safe. Stage timings are emitted through the observability hooks.
func Build(ctx context.Context, g *depgraph.Graph) *Report {
	start := time.Now()
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Services:    make([]ServiceEntry, g.Len()),
		Edges:       make([]EdgeEntry, 0, g.EdgeCount()),
	}

	for i := 0; i < g.Len(); i++ {
		n := g.Node(i)
		r.Services[i] = ServiceEntry{Name: n.Name, File: n.File, Line: n.Line, Role: n.Role.String()}
	}
	for _, e := range g.Edges() {
		r.Edges = append(r.Edges, EdgeEntry{From: g.Name(e.From), To: g.Name(e.To)})
	}

	stage := func(name string, fn func()) {
		t := time.Now()
		fn()
		observability.Analysis().OnStageComplete(ctx, name, time.Since(t))
	}
	stage("metrics", func() { r.Metrics = analysis.Metrics(g) })
	stage("advanced", func() { r.Advanced = analysis.Advanced(g) })
	stage("invariants", func() { r.Violations = analysis.Invariants(g) })
	stage("warnings", func() { r.Warnings = analysis.Warnings(g) })

	observability.Analysis().OnAnalyzeComplete(ctx, g.Len(), g.EdgeCount(), time.Since(start), nil)
	return r
}

// Healthy reports whether the run found no violations.
func (r *Report) Healthy() bool { return len(r.Violations) == 0 }

// Marshal encodes the report as indented JSON.
func Marshal(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONTo(r, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes the report as JSON to w.
func WriteJSON(r *Report, w io.Writer) error {
	return writeJSONTo(r, w)
}

// WriteJSONFile writes the report to a JSON file with 0644 permissions.
func WriteJSONFile(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeJSONTo(r, f)
}

// Unmarshal decodes a report from JSON bytes.
func Unmarshal(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

func writeJSONTo(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
