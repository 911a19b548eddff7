package note

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/stafkit/internal/automation"
	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/history"
	"github.com/klytics/stafkit/internal/output"
	"github.com/klytics/stafkit/internal/progress"
	"github.com/klytics/stafkit/internal/staf"
	"github.com/klytics/stafkit/internal/workbook"
)

func newInsertCommand() *cobra.Command {
	var (
		ship    string
		cell    string
		sheet   string
		text    string
		out     string
		inPlace bool
	)

	cmd := &cobra.Command{
		Use:   "insert <target.xlsm>",
		Short: "Insert a single test note on the floor plan",
		Long: `Attaches one legacy note to a cell through the host application.

If the cell already carries a note with identical text, nothing is written.
A note with different text is replaced in place. By default the result is
saved beside the input as *_with_Note.xlsm; pass --in-place to save over
the original.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			target := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if ship == "" {
				ship = cfg.ShipCode
			}
			code, err := staf.ValidateShipCode(ship)
			if err != nil {
				return err
			}

			if sheet == "" {
				sheet = cfg.Sheets.FloorPlan
			}
			if text == "" {
				text = staf.SampleNoteText(code)
			}
			if _, _, err := workbook.ParseCellRef(cell); err != nil {
				return err
			}

			outPath := out
			if outPath == "" {
				if inPlace {
					outPath = target
				} else {
					outPath = automation.DefaultOutPath(target, cfg.Note.OutSuffix)
				}
			}

			opts := automation.Options{
				Sheet:    sheet,
				Visible:  cfg.Note.Visible,
				AutoSize: cfg.Note.AutoSize,
				Width:    cfg.Note.Width,
				Height:   cfg.Note.Height,
			}

			spinner := progress.NewSpinner(fmt.Sprintf("Inserting note at %s via Excel...", cell))
			spinner.Start()
			start := time.Now()
			summary, err := automation.InsertNote(target, cell, text, opts, outPath)
			history.Record(config.HistoryPath(), "insert", summary, time.Since(start), err)
			if err != nil {
				spinner.Fail("Insert failed")
				if errors.Is(err, automation.ErrUnavailable) {
					return fmt.Errorf("%w\n\nInstall Excel on this machine or run the read-only 'staf analyze' instead", err)
				}
				return err
			}
			spinner.Stop(fmt.Sprintf("Note written to %s", summary.OutPath))

			if jsonFlag {
				return output.PrintJSON("note insert", summary)
			}

			output.PrintSummary("Test note insert", summary)
			if summary.Skipped == summary.Placements {
				color.New(color.FgHiBlack).Println("  Identical note already present — no write performed.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ship, "ship", "", "Two-letter ship code (default from config)")
	cmd.Flags().StringVar(&cell, "cell", "F12", "Target cell (A1-style)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name (default from config)")
	cmd.Flags().StringVar(&text, "text", "", "Note text (default: fixed test note)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output workbook path")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "Save over the input workbook")

	return cmd
}
