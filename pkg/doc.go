// Package pkg provides the core libraries for archscope dependency analysis.
//
// # Overview
//
// Archscope turns facts extracted from a codebase — which services exist
// and what each one depends on — into a directed dependency graph, and
// reports on its structure. The pkg directory is organized into five areas:
//
//  1. [facts] - Input contract (the versioned facts document)
//  2. [depgraph] - Graph construction and node classification
//  3. [analysis] - Metrics, reachability queries, invariants, warnings
//  4. [report] - Report assembly and rendering (JSON, Markdown, DOT/SVG)
//  5. [cache], [store], [observability], [errors] - Infrastructure
//
// # Architecture
//
// The typical data flow through archscope:
//
//	Facts document (JSON)
//	         ↓
//	    [facts] package (decode + validate)
//	         ↓
//	    [depgraph] package (build graph, classify nodes)
//	         ↓
//	    [analysis] package (metrics, invariants, queries)
//	         ↓
//	    [report] package (assemble + render)
//	         ↓
//	    JSON/Markdown/DOT/SVG output
//
// # Quick Start
//
// Analyze a facts document and render a report:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/archscope/archscope/pkg/depgraph"
//	    "github.com/archscope/archscope/pkg/facts"
//	    "github.com/archscope/archscope/pkg/report"
//	)
//
//	set, _ := facts.ReadSetFile("facts.json")
//	g := depgraph.Build(set.Services, set.Layers)
//	rep := report.Build(context.Background(), g)
//	report.WriteMarkdown(rep, os.Stdout)
//
// # Main Packages
//
// [facts] - The boundary to extraction front ends. Any scanner that can
// emit a facts document can drive the analyzer.
//
// [depgraph] - Arena-backed directed graph with index-based adjacency.
// Building is total: duplicate and unresolved names are resolved, never
// rejected. Every node is classified as root, intermediate, leaf, orphan,
// or vm.
//
// [analysis] - Pure functions over an immutable graph: structural metrics
// (density, diameter, degrees), betweenness centrality and clustering, cut
// vertices and domains, blast-radius and ancestor queries, and the
// invariant and warning checkers. All outputs are deterministically
// ordered.
//
// [report] - Assembles every analysis into one immutable report with a
// run ID, and renders it as JSON, Markdown, or a Graphviz diagram.
//
// ## Infrastructure
//
// [cache] - Content-addressed report cache keyed by the SHA-256 of the
// canonical facts document. File, Redis, and null backends.
//
// [store] - Optional report archive with memory and MongoDB backends.
//
// [observability] - Hook registry for analysis-stage and cache events, so
// embedders can attach their own telemetry without hard dependencies.
//
// [errors] - Structured errors with stable codes shared by the CLI and
// the HTTP API.
//
// [facts]: https://pkg.go.dev/github.com/archscope/archscope/pkg/facts
// [depgraph]: https://pkg.go.dev/github.com/archscope/archscope/pkg/depgraph
// [analysis]: https://pkg.go.dev/github.com/archscope/archscope/pkg/analysis
// [report]: https://pkg.go.dev/github.com/archscope/archscope/pkg/report
// [cache]: https://pkg.go.dev/github.com/archscope/archscope/pkg/cache
// [store]: https://pkg.go.dev/github.com/archscope/archscope/pkg/store
// [observability]: https://pkg.go.dev/github.com/archscope/archscope/pkg/observability
// [errors]: https://pkg.go.dev/github.com/archscope/archscope/pkg/errors
package pkg
