// Package analyze provides the read-only "staf analyze" command.
package analyze

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/output"
	"github.com/klytics/stafkit/internal/staf"
)

// NewCommand creates the "analyze" command.
func NewCommand() *cobra.Command {
	var (
		ship     string
		planPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze <machine-details> <staf-workbook>",
		Short: "Run the full read-only logic (read + detect, no writes)",
		Long: `Builds the note dictionary from the machine details workbook, extracts
the daily coin-in and net-win metrics from the totals sheet, detects which
metric the floor plan is displaying, and plans note placements.

Neither file is modified. Pass --plan to export the placements as YAML for
a later 'staf note write --plan'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if ship == "" {
				ship = cfg.ShipCode
			}

			report, err := staf.Analyze(args[0], args[1], staf.Options{
				ShipCode:    ship,
				FloorSheet:  cfg.Sheets.FloorPlan,
				TotalsSheet: cfg.Sheets.Totals,
				Tolerance:   cfg.Tolerance,
			})
			if err != nil {
				return err
			}

			if planPath != "" {
				if err := staf.WritePlanFile(report.Plan, planPath); err != nil {
					return err
				}
			}

			if jsonFlag {
				return output.PrintJSON("analyze", report)
			}

			header := color.New(color.Bold, color.FgCyan)
			dim := color.New(color.FgHiBlack)

			header.Println("Read-only analysis")
			for _, line := range report.Log {
				fmt.Printf("  %s\n", line)
			}
			fmt.Println()
			header.Printf("Floor plan is displaying: %s\n", report.ActiveMetric.Label())
			fmt.Println()

			if len(report.Plan.Placements) == 0 {
				dim.Println("No placements found.")
				return nil
			}

			header.Printf("Planned placements (%d):\n", len(report.Plan.Placements))
			for _, p := range report.Plan.Placements {
				fmt.Printf("  %-8s %s\n", p.Cell, p.Position)
			}
			if planPath != "" {
				fmt.Println()
				fmt.Printf("Plan written to %s\n", planPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ship, "ship", "", "Two-letter ship code (default from config)")
	cmd.Flags().StringVar(&planPath, "plan", "", "Export the placement plan as YAML")

	return cmd
}
