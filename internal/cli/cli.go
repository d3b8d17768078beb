// Package cli implements the gradgraph command-line interface.
//
// The CLI compiles an expression (given inline or in a TOML problem file)
// into a computation graph and prints its value together with forward-mode
// and reverse-mode derivatives for every input. It is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - eval: differentiate an inline expression
//   - run: differentiate a problem file
//   - ops: list the available primitives
//   - version: print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. Derivation traces (--trace, or trace = true
// in a problem file) are written to stderr independently of the log level.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0-dev" // semantic version
	commit  string         // git commit SHA
	date    string         // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is typically called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// Execute runs the gradgraph CLI against os.Args and returns an error if
// any command fails.
func Execute(ctx context.Context) error {
	return NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree writing results to out and logs to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "gradgraph",
		Short:        "gradgraph differentiates scalar expressions",
		Long:         `gradgraph records a scalar expression as a computation graph and computes exact derivatives with forward-mode and reverse-mode automatic differentiation.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(fmt.Sprintf("gradgraph %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newEvalCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newOpsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gradgraph %s\n", version)
		},
	}
}
