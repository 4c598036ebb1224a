package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/pkg/analysis"
)

// checkCommand creates the check command. It exits non-zero when any
// invariant is violated, which makes it usable as a CI gate.
func (c *CLI) checkCommand() *cobra.Command {
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "check [facts.json]",
		Short: "Verify architecture invariants, fail on violations",
		Long: `Check the dependency graph against the architecture rule set.

Violations (view-model dependencies, cycles, layering breaks) fail the
command. Warnings (redundant edges, hot or wide services, orphans) are
reported but only fail with --strict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(args[0])
			if err != nil {
				return err
			}

			violations := analysis.Invariants(g)
			warnings := analysis.Warnings(g)

			for _, v := range violations {
				printError("%s: %s", v.Rule, v.Description)
				printDetail("%s", strings.Join(v.Services, " → "))
			}
			for _, w := range warnings {
				printWarning("%s: %s", w.Kind, w.Description)
			}

			switch {
			case len(violations) > 0:
				return fmt.Errorf("%d invariant violation(s)", len(violations))
			case warningsAsErrors && len(warnings) > 0:
				return fmt.Errorf("%d warning(s) with --strict", len(warnings))
			default:
				printSuccess("All invariants hold")
				if len(warnings) > 0 {
					printDetail("%d warning(s)", len(warnings))
				}
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&warningsAsErrors, "strict", false, "treat warnings as errors")
	return cmd
}
