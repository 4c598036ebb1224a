package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Fill colors for node roles in DOT output.
var roleColors = map[string]string{
	"root":         "lightblue",
	"intermediate": "white",
	"leaf":         "palegreen",
	"orphan":       "lightgrey",
	"vm":           "lightyellow",
}

// ToDOT converts a report's graph to Graphviz DOT format.
// Nodes are filled by role; cut vertices get a heavier outline so the
// structural weak points stand out. The output can be rendered with
// [RenderSVG] or any external Graphviz install.
func ToDOT(r *Report) string {
	cuts := make(map[string]bool, len(r.Advanced.CutVertices))
	for _, v := range r.Advanced.CutVertices {
		cuts[v] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph architecture {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, s := range r.Services {
		attrs := []string{fmt.Sprintf("label=%q", s.Name)}
		if color, ok := roleColors[s.Role]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%s", color))
		}
		if cuts[s.Name] {
			attrs = append(attrs, "penwidth=2.5", "color=red")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", s.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range r.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
