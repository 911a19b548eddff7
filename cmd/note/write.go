package note

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/internal/automation"
	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/history"
	"github.com/klytics/stafkit/internal/output"
	"github.com/klytics/stafkit/internal/progress"
	"github.com/klytics/stafkit/internal/staf"
)

func newWriteCommand() *cobra.Command {
	var (
		ship     string
		source   string
		planPath string
		out      string
		inPlace  bool
	)

	cmd := &cobra.Command{
		Use:   "write <target.xlsm>",
		Short: "Batch-write planned notes in one application session",
		Long: `Writes every planned note placement to the floor plan.

The plan comes either from a YAML file exported by 'staf analyze --plan'
or from a fresh read-only analysis when --source is given. Notes whose
text is already present are skipped; differing notes are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			target := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var plan *staf.Plan
			switch {
			case planPath != "":
				plan, err = staf.ReadPlanFile(planPath)
				if err != nil {
					return err
				}
			case source != "":
				if ship == "" {
					ship = cfg.ShipCode
				}
				report, err := staf.Analyze(source, target, staf.Options{
					ShipCode:    ship,
					FloorSheet:  cfg.Sheets.FloorPlan,
					TotalsSheet: cfg.Sheets.Totals,
					Tolerance:   cfg.Tolerance,
				})
				if err != nil {
					return err
				}
				plan = report.Plan
			default:
				return fmt.Errorf("either --plan or --source is required\n\nExamples:\n  staf analyze details.xlsx %s --plan plan.yaml && staf note write %s --plan plan.yaml\n  staf note write %s --source details.xlsx", target, target, target)
			}

			if len(plan.Placements) == 0 {
				fmt.Println("No placements found. Nothing to write.")
				return nil
			}

			outPath := out
			if outPath == "" {
				if inPlace {
					outPath = target
				} else {
					outPath = automation.DefaultOutPath(target, cfg.Note.OutSuffix)
				}
			}

			bar := progress.New(fmt.Sprintf("Writing notes to %s", plan.Sheet), len(plan.Placements))
			opts := automation.Options{
				Sheet:    plan.Sheet,
				Visible:  cfg.Note.Visible,
				AutoSize: cfg.Note.AutoSize,
				Width:    cfg.Note.Width,
				Height:   cfg.Note.Height,
				OnNote: func(done, total int, cell string) {
					bar.Set(done, cell)
				},
			}

			start := time.Now()
			summary, err := automation.WritePlacements(target, plan.Placements, opts, outPath)
			history.Record(config.HistoryPath(), "write", summary, time.Since(start), err)
			if err != nil {
				bar.Fail("Batch write failed")
				if errors.Is(err, automation.ErrUnavailable) {
					return fmt.Errorf("%w\n\nThe write pass needs Excel; the read-only analysis does not", err)
				}
				return err
			}
			bar.Finish(fmt.Sprintf("Wrote %d notes to %s", summary.Created+summary.Updated, summary.OutPath))

			if jsonFlag {
				return output.PrintJSON("note write", summary)
			}
			output.PrintSummary("Batch note write", summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&ship, "ship", "", "Two-letter ship code (default from config)")
	cmd.Flags().StringVar(&source, "source", "", "Machine details workbook — runs a fresh analysis")
	cmd.Flags().StringVar(&planPath, "plan", "", "Placement plan YAML from 'staf analyze --plan'")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output workbook path")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "Save over the input workbook")

	return cmd
}
