package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization
// with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the kinetree CLI with a background context.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the kinetree CLI and returns an error if any
// command fails. This is the main entry point for the CLI application;
// ctx cancellation propagates to long-running commands such as serve.
//
// Logging defaults to info level on stderr; --verbose (-v) switches to
// debug level. The logger is attached to the context and accessible to
// all commands via loggerFromContext.
func ExecuteContext(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "kinetree",
		Short:        "Kinetree computes forward kinematics over robot link trees",
		Long:         `Kinetree loads robot models from TOML or URDF files, computes forward kinematics and kinematic chains over them, renders link-tree diagrams, and serves the same operations over HTTP.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("kinetree %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newInfoCmd())
	root.AddCommand(newFKCmd())
	root.AddCommand(newChainsCmd())
	root.AddCommand(newDotCmd())
	root.AddCommand(newJogCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
