package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/depgraph"
	"github.com/archscope/archscope/pkg/facts"
	"github.com/archscope/archscope/pkg/observability"
	"github.com/archscope/archscope/pkg/report"
)

// Output formats for the analyze command.
const (
	formatSummary  = "summary"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		output      string
		format      string
		noCache     bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [facts.json]",
		Short: "Run the full analysis and produce a report",
		Long: `Run the full analysis over a facts document.

The analyze command builds the dependency graph, computes structural and
advanced metrics, checks architecture invariants, and assembles everything
into a single report. Reports for identical facts documents are served from
the local cache.

Output defaults to a terminal summary; use --format markdown or json for a
complete report, or --output to write it to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatSummary && format != formatMarkdown && format != formatJSON {
				return fmt.Errorf("unknown format %q (want summary, markdown, or json)", format)
			}
			return c.runAnalyze(cmd.Context(), args[0], output, format, noCache, interactive)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file")
	cmd.Flags().StringVarP(&format, "format", "f", formatSummary, "output format: summary (default), markdown, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the report in the terminal")

	return cmd
}

// runAnalyze loads the facts, produces the report, and renders it.
func (c *CLI) runAnalyze(ctx context.Context, input, output, format string, noCache, interactive bool) error {
	rep, cached, err := c.buildReport(ctx, input, noCache)
	if err != nil {
		return err
	}

	if interactive {
		p := tea.NewProgram(newReportModel(rep), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("report browser: %w", err)
		}
		return nil
	}

	if output != "" {
		if format == formatSummary {
			format = formatFromExtension(output)
		}
		if err := writeReportFile(rep, output, format); err != nil {
			return err
		}
		printSuccess("Report written")
		printFile(output)
		return nil
	}

	switch format {
	case formatMarkdown:
		return report.WriteMarkdown(rep, os.Stdout)
	case formatJSON:
		return report.WriteJSON(rep, os.Stdout)
	default:
		c.printSummary(rep, cached, input)
		return nil
	}
}

// buildReport produces the analysis report for a facts file, consulting the
// cache first. The bool reports whether the result came from the cache.
func (c *CLI) buildReport(ctx context.Context, input string, noCache bool) (*report.Report, bool, error) {
	set, err := facts.ReadSetFile(input)
	if err != nil {
		return nil, false, err
	}

	cch := c.newCache(noCache)
	defer cch.Close()

	doc, err := facts.MarshalSet(set)
	if err != nil {
		return nil, false, err
	}
	key := cache.ReportKey(doc)

	if data, ok, err := cch.Get(ctx, key); err == nil && ok {
		rep, err := report.Unmarshal(data)
		if err == nil {
			return rep, true, nil
		}
		c.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
	} else if err != nil {
		c.Logger.Debug("cache read failed", "err", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s...", filepath.Base(input)))
	spinner.Start()

	prog := newProgress(c.Logger)
	observability.Analysis().OnAnalyzeStart(ctx, len(set.Services), len(set.Layers))
	g := depgraph.Build(set.Services, set.Layers)
	rep := report.Build(ctx, g)

	if spinner.Cancelled() {
		spinner.Stop()
		return nil, false, ctx.Err()
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Analyzed %d services", g.Len()))

	if data, err := report.Marshal(rep); err == nil {
		if err := cch.Set(ctx, key, data, c.cacheTTL()); err != nil {
			c.Logger.Debug("cache write failed", "err", err)
		}
	}

	return rep, false, nil
}

// printSummary renders the report as a styled terminal summary.
func (c *CLI) printSummary(rep *report.Report, cached bool, input string) {
	printSuccess("Analysis complete")
	printStats(rep.Metrics.Nodes, rep.Metrics.Edges, cached)
	printNewline()

	printKeyValue("Density", fmt.Sprintf("%.4f", rep.Metrics.Density))
	printKeyValue("Diameter", fmt.Sprintf("%d", rep.Metrics.Diameter))
	printKeyValue("Avg degree", fmt.Sprintf("%.2f", rep.Metrics.AverageDegree))
	if len(rep.Advanced.CutVertices) > 0 {
		printKeyValue("Cut vertices", strings.Join(rep.Advanced.CutVertices, ", "))
	}
	printNewline()

	if rep.Healthy() {
		printSuccess("No invariant violations")
	} else {
		printError("%d invariant violation(s)", len(rep.Violations))
		for _, v := range rep.Violations {
			printDetail("%s: %s", v.Rule, v.Description)
		}
	}
	for _, w := range rep.Warnings {
		printWarning("%s: %s", w.Kind, w.Description)
	}
	printNewline()

	printNextStep("Inspect change impact", fmt.Sprintf("%s impact %s <service>", appName, input))
}

// formatFromExtension infers the report format from an output filename.
func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return formatMarkdown
	default:
		return formatJSON
	}
}

// writeReportFile writes the report to path in the given format.
func writeReportFile(rep *report.Report, path, format string) error {
	if format == formatJSON {
		return report.WriteJSONFile(rep, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return report.WriteMarkdown(rep, f)
}
