package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/analysis"
	"github.com/archscope/archscope/pkg/depgraph"
	"github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/facts"
)

// impactCommand creates the impact command (blast radius).
func (c *CLI) impactCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "impact [facts.json] [service]",
		Short: "Show the blast radius of a change to one service",
		Long: `Show the blast radius of a change to one service.

The blast radius is every service that transitively depends on the given
one, grouped by dependency distance and graded by risk.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			result, ok := analysis.BlastRadius(g, args[1])
			if !ok {
				return errors.New(errors.ErrCodeServiceNotFound, "unknown service %q", args[1])
			}
			if asJSON {
				return writeJSONOut(result)
			}
			printInfo("Blast radius of %s", StyleHighlight.Render(result.Service))
			printKeyValue("Affected", fmt.Sprintf("%d", result.Total))
			printKeyValue("Risk", renderRisk(result.Risk))
			printLevels(result.Levels)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a summary")
	return cmd
}

// ancestorsCommand creates the ancestors command.
func (c *CLI) ancestorsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ancestors [facts.json] [service]",
		Short: "Show everything one service depends on",
		Long: `Show everything one service transitively depends on, grouped by
dependency distance.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			result, ok := analysis.Ancestors(g, args[1])
			if !ok {
				return errors.New(errors.ErrCodeServiceNotFound, "unknown service %q", args[1])
			}
			if asJSON {
				return writeJSONOut(result)
			}
			printInfo("Dependencies of %s", StyleHighlight.Render(result.Service))
			printKeyValue("Total", fmt.Sprintf("%d", result.Total))
			printLevels(result.Levels)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a summary")
	return cmd
}

// sharedCommand creates the shared command (common ancestors).
func (c *CLI) sharedCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "shared [facts.json] [service]...",
		Short: "Rank the dependencies common to a set of services",
		Long: `Rank the dependencies shared by two or more services.

When several services break at once, their shared dependencies are the
first root-cause candidates. Results are ranked by how many of the queried
services reach them.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			result := analysis.CommonAncestors(g, args[1:])
			if asJSON {
				return writeJSONOut(result)
			}
			printInfo("Dependencies shared by %s", StyleHighlight.Render(fmt.Sprintf("%d services", len(result.Services))))
			if len(result.Shared) == 0 {
				printDetail("none")
				return nil
			}
			for _, dep := range result.Shared {
				fmt.Printf("  %s %s %s\n",
					renderRisk(dep.Risk),
					StyleValue.Render(dep.Service),
					StyleDim.Render(fmt.Sprintf("reached by %d/%d", dep.Coverage, len(result.Services))))
			}
			printNewline()
			printKeyValue("Root causes", fmt.Sprintf("%v", result.RootCauses))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a summary")
	return cmd
}

// loadGraph reads a facts file and builds the dependency graph.
func loadGraph(path string) (*depgraph.Graph, error) {
	set, err := facts.ReadSetFile(path)
	if err != nil {
		return nil, err
	}
	return depgraph.Build(set.Services, set.Layers), nil
}

// printLevels renders BFS levels, one line per depth.
func printLevels(levels []analysis.Level) {
	for _, level := range levels {
		printDetail("depth %d: %v", level.Depth, level.Services)
	}
}

// writeJSONOut encodes v as indented JSON on stdout.
func writeJSONOut(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
