//go:build windows

package automation

import (
	"fmt"
	"path/filepath"
	"strings"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/klytics/stafkit/internal/workbook"
)

// Native file format codes used by the host application's SaveAs.
const (
	xlOpenXMLWorkbook            = 51 // .xlsx
	xlOpenXMLWorkbookMacroEnable = 52 // .xlsm
)

// comSession drives one Excel.Application instance over COM.
type comSession struct {
	opts   Options
	inPath string
	app    *ole.IDispatch
	books  *ole.IDispatch
	wb     *ole.IDispatch
	ws     *ole.IDispatch
}

func availablePlatform() bool {
	ole.CoInitialize(0)
	defer ole.CoUninitialize()
	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		return false
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		return false
	}
	oleutil.CallMethod(app, "Quit")
	app.Release()
	return true
}

func openPlatform(path string, opts Options) (Session, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// S_FALSE from an already-initialized apartment is fine.
	ole.CoInitialize(0)

	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s := &comSession{opts: opts, inPath: abs, app: app}

	oleutil.PutProperty(app, "Visible", opts.Visible)
	oleutil.PutProperty(app, "DisplayAlerts", false)
	oleutil.PutProperty(app, "ScreenUpdating", false)

	booksVar, err := oleutil.GetProperty(app, "Workbooks")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("automation failure: %w", err)
	}
	s.books = booksVar.ToIDispatch()

	// Open(path, UpdateLinks:=0, ReadOnly:=false)
	wbVar, err := oleutil.CallMethod(s.books, "Open", abs, 0, false)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("could not open %s in Excel: %w", abs, err)
	}
	s.wb = wbVar.ToIDispatch()

	if opts.Sheet != "" {
		wsVar, err := oleutil.CallMethod(s.wb, "Worksheets", opts.Sheet)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("sheet %q not found in %s: %w", opts.Sheet, abs, err)
		}
		s.ws = wsVar.ToIDispatch()
	}

	return s, nil
}

func (s *comSession) rangeAt(cell string) (*ole.IDispatch, error) {
	rngVar, err := oleutil.CallMethod(s.ws, "Range", cell)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", workbook.ErrInvalidReference, cell)
	}
	return rngVar.ToIDispatch(), nil
}

func (s *comSession) NoteText(cell string) (string, bool, error) {
	rng, err := s.rangeAt(cell)
	if err != nil {
		return "", false, err
	}
	defer rng.Release()

	cmtVar, err := oleutil.GetProperty(rng, "Comment")
	if err != nil {
		return "", false, fmt.Errorf("could not read note at %s: %w", cell, err)
	}
	cmt := cmtVar.ToIDispatch()
	if cmt == nil {
		return "", false, nil
	}
	defer cmt.Release()

	textVar, err := oleutil.CallMethod(cmt, "Text")
	if err != nil {
		return "", false, fmt.Errorf("could not read note text at %s: %w", cell, err)
	}
	return textVar.ToString(), true, nil
}

func (s *comSession) SetNote(cell, text string) error {
	rng, err := s.rangeAt(cell)
	if err != nil {
		return err
	}
	defer rng.Release()

	if cmtVar, err := oleutil.GetProperty(rng, "Comment"); err == nil {
		if cmt := cmtVar.ToIDispatch(); cmt != nil {
			cmt.Release()
			if _, err := oleutil.CallMethod(rng, "ClearComments"); err != nil {
				return fmt.Errorf("could not clear note at %s: %w", cell, err)
			}
		}
	}

	if _, err := oleutil.CallMethod(rng, "AddComment", text); err != nil {
		return fmt.Errorf("could not add note at %s: %w", cell, err)
	}

	cmtVar, err := oleutil.GetProperty(rng, "Comment")
	if err != nil {
		return fmt.Errorf("note at %s vanished after write: %w", cell, err)
	}
	cmt := cmtVar.ToIDispatch()
	if cmt == nil {
		return fmt.Errorf("note at %s vanished after write", cell)
	}
	defer cmt.Release()

	oleutil.PutProperty(cmt, "Visible", s.opts.Visible)

	shapeVar, err := oleutil.GetProperty(cmt, "Shape")
	if err != nil {
		return fmt.Errorf("could not size note at %s: %w", cell, err)
	}
	shape := shapeVar.ToIDispatch()
	defer shape.Release()

	if s.opts.Width > 0 {
		oleutil.PutProperty(shape, "Width", s.opts.Width)
	}
	if s.opts.Height > 0 {
		oleutil.PutProperty(shape, "Height", s.opts.Height)
	}
	if s.opts.AutoSize {
		tfVar, err := oleutil.GetProperty(shape, "TextFrame")
		if err == nil {
			tf := tfVar.ToIDispatch()
			oleutil.PutProperty(tf, "AutoSize", true)
			tf.Release()
		}
	}
	return nil
}

func (s *comSession) ShapeCount() (int, error) {
	shapesVar, err := oleutil.GetProperty(s.ws, "Shapes")
	if err != nil {
		return 0, fmt.Errorf("could not read sheet shapes: %w", err)
	}
	shapes := shapesVar.ToIDispatch()
	defer shapes.Release()

	countVar, err := oleutil.GetProperty(shapes, "Count")
	if err != nil {
		return 0, fmt.Errorf("could not count sheet shapes: %w", err)
	}
	return int(countVar.Val), nil
}

func (s *comSession) SaveAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(abs, s.inPath) {
		if _, err := oleutil.CallMethod(s.wb, "Save"); err != nil {
			return fmt.Errorf("could not save %s: %w", abs, err)
		}
		return nil
	}
	if _, err := oleutil.CallMethod(s.wb, "SaveAs", abs, fileFormatFor(abs)); err != nil {
		return fmt.Errorf("could not save as %s: %w", abs, err)
	}
	return nil
}

func fileFormatFor(path string) int {
	if strings.EqualFold(filepath.Ext(path), ".xlsm") {
		return xlOpenXMLWorkbookMacroEnable
	}
	return xlOpenXMLWorkbook
}

// Close releases everything acquired by openPlatform. Safe to call after a
// partial open; errors on the way out are deliberately swallowed so cleanup
// always runs to the end.
func (s *comSession) Close() error {
	if s.ws != nil {
		s.ws.Release()
		s.ws = nil
	}
	if s.wb != nil {
		oleutil.CallMethod(s.wb, "Close", false)
		s.wb.Release()
		s.wb = nil
	}
	if s.books != nil {
		s.books.Release()
		s.books = nil
	}
	if s.app != nil {
		oleutil.CallMethod(s.app, "Quit")
		s.app.Release()
		s.app = nil
		ole.CoUninitialize()
	}
	return nil
}

func convertPlatform(in, out string) error {
	s, err := openPlatform(in, Options{})
	if err != nil {
		return err
	}
	defer s.Close()

	abs, err := filepath.Abs(out)
	if err != nil {
		return err
	}
	cs := s.(*comSession)
	if _, err := oleutil.CallMethod(cs.wb, "SaveAs", abs, xlOpenXMLWorkbook); err != nil {
		return fmt.Errorf("could not convert %s to %s: %w", in, abs, err)
	}
	return nil
}
