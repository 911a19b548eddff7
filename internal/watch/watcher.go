// Package watch monitors directories for changed workbooks and re-runs the
// read-only analysis pass, so the planned placements stay current while the
// floor plan is being edited.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config holds the watcher configuration.
type Config struct {
	Directories []string
	Recursive   bool
	Debounce    int // milliseconds to wait before processing
}

// Event represents a file event that was detected and processed.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"` // "create", "modify", "rename"
	Status    string    `json:"status"`    // "processed", "error", "skipped"
	Error     string    `json:"error,omitempty"`
}

// Handler is called with the path of a changed workbook.
type Handler func(path string) error

// Watcher monitors directories for workbook changes and triggers the handler.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Events  []Event
	Handler Handler

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// Status represents the current watcher status.
type Status struct {
	Running     bool     `json:"running"`
	Directories []string `json:"directories"`
	EventCount  int      `json:"eventCount"`
	StartedAt   string   `json:"startedAt,omitempty"`
}

// workbookExtensions are the spreadsheet file extensions worth re-analyzing.
var workbookExtensions = map[string]bool{
	".xlsx": true, ".xlsm": true, ".xls": true,
}

// New creates a new Watcher with the given configuration.
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if config.Debounce <= 0 {
		config.Debounce = 500
	}

	w := &Watcher{
		Config:   config,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
	}

	return w, nil
}

// Start begins watching the configured directories. It blocks until the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, dir := range w.Config.Directories {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", dir, err)
		}

		if w.Config.Recursive {
			if err := w.addRecursive(absDir); err != nil {
				return err
			}
		} else {
			if err := w.watcher.Add(absDir); err != nil {
				return fmt.Errorf("could not watch %s: %w", absDir, err)
			}
		}
		w.Logger.Printf("watching %s", absDir)
	}

	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("watch error: %v", err)
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("could not watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !ShouldProcess(event.Name) {
		return
	}

	op := ""
	switch {
	case event.Op&fsnotify.Create != 0:
		op = "create"
	case event.Op&fsnotify.Write != 0:
		op = "modify"
	case event.Op&fsnotify.Rename != 0:
		op = "rename"
	default:
		return
	}

	// Debounce: editors fire bursts of writes while saving.
	w.mu.Lock()
	if t, ok := w.debounce[event.Name]; ok {
		t.Stop()
	}
	w.debounce[event.Name] = time.AfterFunc(
		time.Duration(w.Config.Debounce)*time.Millisecond,
		func() { w.process(event.Name, op) },
	)
	w.mu.Unlock()
}

func (w *Watcher) process(path, op string) {
	e := Event{Time: time.Now(), Path: path, Operation: op, Status: "processed"}

	if w.Handler != nil {
		if err := w.Handler(path); err != nil {
			e.Status = "error"
			e.Error = err.Error()
			w.Logger.Printf("%s: %v", path, err)
		}
	} else {
		e.Status = "skipped"
	}

	w.mu.Lock()
	w.Events = append(w.Events, e)
	delete(w.debounce, path)
	w.mu.Unlock()
}

// EventLog returns a copy of the processed events.
func (w *Watcher) EventLog() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Event, len(w.Events))
	copy(out, w.Events)
	return out
}

// ShouldProcess reports whether a path looks like a workbook worth
// re-analyzing. Office lock files ("~$...") are ignored.
func ShouldProcess(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	return workbookExtensions[strings.ToLower(filepath.Ext(path))]
}
