// Package output provides formatting utilities for CLI output.
package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/klytics/stafkit/internal/automation"
)

// WriteError writes an error message to stderr.
func WriteError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// PrintSummary renders a write-operation summary for humans.
func PrintSummary(title string, s *automation.Summary) {
	header := color.New(color.Bold, color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	header.Printf("%s\n", title)
	fmt.Printf("  Workbook:  %s\n", s.InPath)
	fmt.Printf("  Saved to:  %s\n", s.OutPath)
	fmt.Printf("  Sheet:     %s\n", s.Sheet)
	fmt.Printf("  Notes:     %d created, %d updated, %d skipped (of %d)\n",
		s.Created, s.Updated, s.Skipped, s.Placements)
	if s.ShapesIntact {
		green.Printf("  Shapes:    intact (%d before, %d after)\n", s.ShapesBefore, s.ShapesAfter)
	} else {
		yellow.Printf("  Shapes:    CHANGED (%d before, %d after)\n", s.ShapesBefore, s.ShapesAfter)
	}
}
