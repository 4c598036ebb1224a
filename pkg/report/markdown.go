package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown renders the report as a markdown document suitable for
// humans and coding agents. Section order and row order are fixed, so the
// same report always renders to the same bytes.
func WriteMarkdown(r *Report, w io.Writer) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Architecture Analysis\n\n")
	fmt.Fprintf(&buf, "Run `%s` at %s\n\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&buf, "## Overview\n\n")
	fmt.Fprintf(&buf, "- Services: %d\n", r.Metrics.Nodes)
	fmt.Fprintf(&buf, "- Dependencies: %d\n", r.Metrics.Edges)
	fmt.Fprintf(&buf, "- Density: %.3f\n", r.Metrics.Density)
	fmt.Fprintf(&buf, "- Diameter: %d\n", r.Metrics.Diameter)
	fmt.Fprintf(&buf, "- Average degree: %.2f\n\n", r.Metrics.AverageDegree)

	fmt.Fprintf(&buf, "## Services\n\n")
	fmt.Fprintf(&buf, "| Service | Role | In | Out | Centrality | Clustering |\n")
	fmt.Fprintf(&buf, "|---------|------|----|-----|------------|------------|\n")
	for i, s := range r.Services {
		deg := r.Metrics.Degrees[i]
		fmt.Fprintf(&buf, "| %s | %s | %d | %d | %.2f | %.2f |\n",
			s.Name, s.Role, deg.In, deg.Out,
			r.Advanced.Centrality[s.Name], r.Advanced.Clustering[s.Name])
	}
	buf.WriteString("\n")

	if len(r.Advanced.CutVertices) > 0 {
		fmt.Fprintf(&buf, "## Cut Vertices\n\n")
		fmt.Fprintf(&buf, "Removing any of these services splits the architecture:\n\n")
		for _, v := range r.Advanced.CutVertices {
			fmt.Fprintf(&buf, "- %s\n", v)
		}
		buf.WriteString("\n")
	}

	if len(r.Advanced.Domains) > 0 {
		fmt.Fprintf(&buf, "## Domains\n\n")
		for i, d := range r.Advanced.Domains {
			fmt.Fprintf(&buf, "%d. (%d services) %s\n", i+1, d.Size, strings.Join(d.Members, ", "))
		}
		buf.WriteString("\n")
	}

	fmt.Fprintf(&buf, "## Violations\n\n")
	if len(r.Violations) == 0 {
		buf.WriteString("No invariant violations.\n\n")
	} else {
		for _, v := range r.Violations {
			fmt.Fprintf(&buf, "- **%s**: %s\n", v.Rule, v.Description)
		}
		buf.WriteString("\n")
	}

	fmt.Fprintf(&buf, "## Warnings\n\n")
	if len(r.Warnings) == 0 {
		buf.WriteString("No warnings.\n")
	} else {
		for _, warn := range r.Warnings {
			fmt.Fprintf(&buf, "- **%s**: %s\n", warn.Kind, warn.Description)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Markdown renders the report to a markdown string.
func Markdown(r *Report) string {
	var buf bytes.Buffer
	_ = WriteMarkdown(r, &buf) // buffer writes cannot fail
	return buf.String()
}
