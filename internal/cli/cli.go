// Package cli implements the archscope command-line interface.
//
// This package provides commands for analyzing service dependency graphs
// from facts documents, querying impact and shared dependencies, checking
// architecture invariants, and exporting reports. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: Run the full analysis and produce a report
//   - impact: Show the blast radius of a change to one service
//   - ancestors: Show everything one service depends on
//   - shared: Rank the dependencies common to a set of services
//   - check: Verify architecture invariants, fail on violations
//   - export: Emit the dependency graph as DOT, SVG, or JSON
//   - serve: Run the HTTP API
//   - cache: Manage the local report cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archscope/archscope/internal/config"
	"github.com/archscope/archscope/pkg/buildinfo"
	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = "archscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Archscope analyzes service dependency graphs",
		Long:         `Archscope turns service and layer facts into a dependency graph and reports structural metrics, change impact, invariant violations, and architecture smells.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			observability.SetAnalysisHooks(logHooks{})
			observability.SetCacheHooks(logHooks{})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/archscope/config.toml)")

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.impactCommand())
	root.AddCommand(c.ancestorsCommand())
	root.AddCommand(c.sharedCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache builds the report cache from the loaded config. Cache failures
// degrade to the null cache rather than blocking analysis.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache()
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheTTL returns the configured TTL or the cache default.
func (c *CLI) cacheTTL() time.Duration {
	if ttl := c.Config.Cache.TTL(); ttl > 0 {
		return ttl
	}
	return cache.DefaultTTL
}
