// Package cli provides the command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
)

// NewRootCmd returns the chainsdk command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chainsdk",
		Short: "Generate chainable GraphQL client SDKs",
		Long: `chainsdk reads a GraphQL schema and a set of operation documents and
generates a typed client SDK in which related operations are chained:
the result of one call carries the methods of the calls it identifies.

Supported targets:
  - TypeScript
  - Go`,
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chainsdk version %s (commit: %s)\n", Version, Commit)
		},
	}
}

// newLogger returns a slog logger backed by a charm log handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix: "chainsdk",
		Level:  log.InfoLevel,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
		l.SetReportTimestamp(true)
	}
	return slog.New(l)
}

// Execute runs the root command.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
