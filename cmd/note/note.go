// Package note provides CLI commands for writing legacy notes through the
// host spreadsheet application.
package note

import "github.com/spf13/cobra"

// NewCommand returns the note subcommand group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Insert or update legacy notes on the floor plan",
		Long: "Commands that write legacy notes (old-style comments) to a workbook. " +
			"All writes run through the host application's automation interface so " +
			"floor-plan shapes survive the save.",
	}

	cmd.AddCommand(newInsertCommand())
	cmd.AddCommand(newWriteCommand())

	return cmd
}
