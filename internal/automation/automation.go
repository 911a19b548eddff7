// Package automation drives the host spreadsheet application to attach
// legacy notes to cells. Every write goes through a live application
// instance so that sheet shapes survive the save; the session is a scoped
// resource acquired per operation and released on every exit path.
package automation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/klytics/stafkit/internal/staf"
	"github.com/klytics/stafkit/internal/workbook"
)

// ErrUnavailable is returned when the host spreadsheet application is not
// installed or cannot be automated on this machine.
var ErrUnavailable = errors.New("spreadsheet automation unavailable — Excel must be installed and automatable on this machine")

// Options configures one write session.
type Options struct {
	Sheet    string
	Visible  bool
	AutoSize bool
	Width    float64
	Height   float64

	// OnNote, when set, is called after each placement is decided, with
	// the running count, the total, and the cell just handled.
	OnNote func(done, total int, cell string)
}

// DefaultOptions are the sizing defaults applied to new notes.
func DefaultOptions(sheet string) Options {
	return Options{Sheet: sheet, AutoSize: true, Width: 200, Height: 100}
}

// Session is one live automation connection to an open workbook sheet.
// Close must run on every exit path or an application process leaks.
type Session interface {
	// NoteText reads the note at an A1-style cell. exists is false when the
	// cell has no note.
	NoteText(cell string) (text string, exists bool, err error)
	// SetNote replaces the note at cell (clearing any existing one) and
	// applies the configured sizing and visibility.
	SetNote(cell, text string) error
	// ShapeCount returns the number of shapes on the sheet.
	ShapeCount() (int, error)
	// SaveAs saves natively to path, or in place when path equals the
	// opened file.
	SaveAs(path string) error
	// Close releases the workbook and quits the application instance.
	Close() error
}

// Open acquires an automation session on the given workbook and sheet.
func Open(path string, opts Options) (Session, error) {
	return openPlatform(path, opts)
}

// Available reports whether the host application can be automated here.
func Available() bool {
	return availablePlatform()
}

// ConvertToXLSX uses the host application to save a legacy .xls workbook as
// .xlsx so the read-only pass can open it.
func ConvertToXLSX(in, out string) error {
	return convertPlatform(in, out)
}

// NoteAction is the duplicate-guard decision for one cell.
type NoteAction int

const (
	// NoteCreate means the cell has no note yet.
	NoteCreate NoteAction = iota
	// NoteUpdate means the cell's note text differs and will be replaced.
	NoteUpdate
	// NoteSkip means identical text is already present; no write happens.
	NoteSkip
)

// DecideNoteAction compares existing note text with the desired text.
// Comparison trims surrounding whitespace so a note differing only by
// trailing newlines is not rewritten.
func DecideNoteAction(existing string, exists bool, desired string) NoteAction {
	if !exists {
		return NoteCreate
	}
	if strings.TrimSpace(existing) == strings.TrimSpace(desired) {
		return NoteSkip
	}
	return NoteUpdate
}

// Summary reports what one write operation did.
type Summary struct {
	InPath       string `json:"inPath"`
	OutPath      string `json:"outPath"`
	Sheet        string `json:"sheet"`
	Placements   int    `json:"placements"`
	Created      int    `json:"created"`
	Updated      int    `json:"updated"`
	Skipped      int    `json:"skipped"`
	ShapesBefore int    `json:"shapesBefore"`
	ShapesAfter  int    `json:"shapesAfter"`
	ShapesIntact bool   `json:"shapesIntact"`
}

// DefaultOutPath places the output next to the input as <stem><suffix><ext>.
func DefaultOutPath(in, suffix string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + suffix + ext
}

// applyNote runs the duplicate guard for one cell and performs the write
// only when needed.
func applyNote(s Session, cell, text string) (NoteAction, error) {
	existing, exists, err := s.NoteText(cell)
	if err != nil {
		return 0, err
	}
	action := DecideNoteAction(existing, exists, text)
	if action == NoteSkip {
		return action, nil
	}
	if err := s.SetNote(cell, text); err != nil {
		return 0, err
	}
	return action, nil
}

// writeNotes applies every placement through one session and tallies the
// outcome per note.
func writeNotes(s Session, placements []staf.Placement, onNote func(done, total int, cell string)) (created, updated, skipped int, err error) {
	for i, p := range placements {
		action, err := applyNote(s, p.Cell, p.Text)
		if err != nil {
			return created, updated, skipped, fmt.Errorf("note at %s: %w", p.Cell, err)
		}
		switch action {
		case NoteCreate:
			created++
		case NoteUpdate:
			updated++
		case NoteSkip:
			skipped++
		}
		if onNote != nil {
			onNote(i+1, len(placements), p.Cell)
		}
	}
	return created, updated, skipped, nil
}

// InsertNote attaches or updates a single note. outPath "" saves beside the
// input with the given suffix applied by the caller via DefaultOutPath.
func InsertNote(inPath, cell, text string, opts Options, outPath string) (*Summary, error) {
	return writeOperation(inPath, opts, outPath, []staf.Placement{{Cell: cell, Text: text}})
}

// WritePlacements batch-writes a placement plan in a single session.
func WritePlacements(inPath string, placements []staf.Placement, opts Options, outPath string) (*Summary, error) {
	return writeOperation(inPath, opts, outPath, placements)
}

func writeOperation(inPath string, opts Options, outPath string, placements []staf.Placement) (*Summary, error) {
	for _, p := range placements {
		if _, _, err := workbook.ParseCellRef(p.Cell); err != nil {
			return nil, err
		}
	}
	if outPath == "" {
		outPath = inPath
	}

	s, err := Open(inPath, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	before, err := s.ShapeCount()
	if err != nil {
		return nil, err
	}

	created, updated, skipped, err := writeNotes(s, placements, opts.OnNote)
	if err != nil {
		return nil, err
	}

	after, err := s.ShapeCount()
	if err != nil {
		return nil, err
	}

	if err := s.SaveAs(outPath); err != nil {
		return nil, err
	}

	return &Summary{
		InPath:       inPath,
		OutPath:      outPath,
		Sheet:        opts.Sheet,
		Placements:   len(placements),
		Created:      created,
		Updated:      updated,
		Skipped:      skipped,
		ShapesBefore: before,
		ShapesAfter:  after,
		ShapesIntact: before == after,
	}, nil
}
