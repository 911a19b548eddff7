// Package cmd contains all CLI commands for the staf binary.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/cmd/analyze"
	"github.com/klytics/stafkit/cmd/completion"
	cmdconfig "github.com/klytics/stafkit/cmd/config"
	"github.com/klytics/stafkit/cmd/convert"
	"github.com/klytics/stafkit/cmd/doctor"
	cmdhistory "github.com/klytics/stafkit/cmd/history"
	"github.com/klytics/stafkit/cmd/note"
	cmdshell "github.com/klytics/stafkit/cmd/shell"
	"github.com/klytics/stafkit/cmd/tui"
	"github.com/klytics/stafkit/cmd/version"
	cmdwatch "github.com/klytics/stafkit/cmd/watch"
	shellpkg "github.com/klytics/stafkit/internal/shell"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "staf",
		Short: "Insert floor-plan notes into STAF workbooks without losing shapes",
		Long: `STAF Kit — legacy note insertion that keeps your floor plan intact.

Reads machine details and daily metrics with a pure read-only pass, detects
which metric the floor plan displays, and writes legacy notes through the
host spreadsheet application so embedded drawings survive the save.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(note.NewCommand())
	rootCmd.AddCommand(analyze.NewCommand())
	rootCmd.AddCommand(convert.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(tui.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(doctor.NewCommand())
	rootCmd.AddCommand(cmdhistory.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	shellpkg.DefaultRunner = func(ctx context.Context, args []string, stdout, stderr io.Writer) error {
		root := NewRootCommand()
		root.SetArgs(args)
		root.SetOut(stdout)
		root.SetErr(stderr)
		return root.ExecuteContext(ctx)
	}

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
