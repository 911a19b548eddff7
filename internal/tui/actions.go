package tui

import (
	"fmt"
	"time"

	"github.com/klytics/stafkit/internal/automation"
	"github.com/klytics/stafkit/internal/config"
	"github.com/klytics/stafkit/internal/history"
	"github.com/klytics/stafkit/internal/staf"
)

// Actions are the operations the form can trigger. The interface exists so
// form behavior is testable without a workbook or a running host application.
type Actions interface {
	Analyze(sourcePath, targetPath, shipCode string) (*staf.Report, error)
	InsertTest(targetPath, shipCode, cell string) (*automation.Summary, error)
	Write(plan *staf.Plan) (*automation.Summary, error)
}

// appActions wires the form to the real analysis and automation layers.
type appActions struct {
	cfg *config.Config
}

// NewActions builds the production Actions from loaded configuration.
func NewActions(cfg *config.Config) Actions {
	return &appActions{cfg: cfg}
}

func (a *appActions) Analyze(sourcePath, targetPath, shipCode string) (*staf.Report, error) {
	return staf.Analyze(sourcePath, targetPath, staf.Options{
		ShipCode:    shipCode,
		FloorSheet:  a.cfg.Sheets.FloorPlan,
		TotalsSheet: a.cfg.Sheets.Totals,
		Tolerance:   a.cfg.Tolerance,
	})
}

func (a *appActions) InsertTest(targetPath, shipCode, cell string) (*automation.Summary, error) {
	code, err := staf.ValidateShipCode(shipCode)
	if err != nil {
		return nil, err
	}
	if targetPath == "" {
		return nil, fmt.Errorf("select a target workbook first")
	}
	if cell == "" {
		cell = "F12"
	}

	opts := a.noteOptions()
	out := automation.DefaultOutPath(targetPath, a.cfg.Note.OutSuffix)

	start := time.Now()
	summary, err := automation.InsertNote(targetPath, cell, staf.SampleNoteText(code), opts, out)
	history.Record(config.HistoryPath(), "insert", summary, time.Since(start), err)
	return summary, err
}

func (a *appActions) Write(plan *staf.Plan) (*automation.Summary, error) {
	if plan == nil || len(plan.Placements) == 0 {
		return nil, fmt.Errorf("no placements to write — run the full logic first")
	}

	opts := a.noteOptions()
	opts.Sheet = plan.Sheet
	out := automation.DefaultOutPath(plan.Target, a.cfg.Note.OutSuffix)

	start := time.Now()
	summary, err := automation.WritePlacements(plan.Target, plan.Placements, opts, out)
	history.Record(config.HistoryPath(), "write", summary, time.Since(start), err)
	return summary, err
}

func (a *appActions) noteOptions() automation.Options {
	return automation.Options{
		Sheet:    a.cfg.Sheets.FloorPlan,
		Visible:  a.cfg.Note.Visible,
		AutoSize: a.cfg.Note.AutoSize,
		Width:    a.cfg.Note.Width,
		Height:   a.cfg.Note.Height,
	}
}
