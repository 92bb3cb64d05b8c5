// Package cli implements the pillbox command-line interface.
//
// The CLI is a thin shell over [pillbox.Client]: it loads configuration,
// turns flags into [pillbox.SearchParams] and renders results as a styled
// listing or JSON. Commands are built with cobra and log through
// charmbracelet/log; --verbose switches the logger to debug level, which
// also logs each outbound request.
//
// # Commands
//
//   - search: query the service by color, shape, ingredient, imprint data
//   - codes: print the SPL shape and color code tables
//   - image: print download URLs for a pill image id
//   - config: show where configuration is read from and what it resolves to
//   - completion: shell completion scripts
//
// [pillbox.Client]: github.com/matzehuels/pillbox/pkg/pillbox.Client
// [pillbox.SearchParams]: github.com/matzehuels/pillbox/pkg/pillbox.SearchParams
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pillbox/pkg/buildinfo"
	"github.com/matzehuels/pillbox/pkg/pillbox"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pillbox"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer // command output
	errOut     io.Writer // spinner and status output
	configPath string
	getenv     func(string) string
}

// New creates a new CLI instance with a default logger writing to w.
// Command output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		errOut: w,
		getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Identify pills with the NLM Pillbox service",
		Long:         `pillbox searches the NLM Pillbox service for solid oral medications by color, shape, imprint data and active ingredient.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+defaultConfigPathHint()+")")

	// Register all subcommands
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.codesCommand())
	root.AddCommand(c.imageCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient builds a service client from the resolved configuration.
func (c *CLI) newClient(cfg Config) (*pillbox.Client, error) {
	if cfg.APIKey == "" {
		return nil, errMissingKey
	}
	return pillbox.New(cfg.APIKey,
		pillbox.WithBaseURL(cfg.BaseURL),
		pillbox.WithLogger(c.Logger),
		pillbox.WithStrict(cfg.Strict),
	)
}
