package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/report"
)

// Export formats.
const (
	exportDOT = "dot"
	exportSVG = "svg"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export [facts.json]",
		Short: "Emit the dependency graph as DOT, SVG, or JSON",
		Long: `Export the dependency graph for external tooling.

Formats:
  dot   Graphviz source, nodes colored by classification
  svg   rendered image (requires no external binaries)
  json  the full analysis report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case exportDOT, exportSVG, formatJSON:
			default:
				return fmt.Errorf("unknown format %q (want dot, svg, or json)", format)
			}
			return c.runExport(cmd.Context(), args[0], output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout, required for svg)")
	cmd.Flags().StringVarP(&format, "format", "f", exportDOT, "output format: dot (default), svg, json")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, output, format string) error {
	g, err := loadGraph(input)
	if err != nil {
		return err
	}
	rep := report.Build(ctx, g)

	switch format {
	case formatJSON:
		if output == "" {
			return report.WriteJSON(rep, os.Stdout)
		}
		if err := report.WriteJSONFile(rep, output); err != nil {
			return err
		}

	case exportDOT:
		dot := report.ToDOT(rep)
		if output == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}

	case exportSVG:
		if output == "" {
			output = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".svg"
		}
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
		svg, err := report.RenderSVG(ctx, report.ToDOT(rep))
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
		if err := os.WriteFile(output, svg, 0644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	}

	printSuccess("Exported %s", format)
	printFile(output)
	return nil
}
