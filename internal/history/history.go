// Package history keeps an append-only log of write operations so past
// note insertions can be reviewed and the shapes-intact checks audited.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klytics/stafkit/internal/automation"
)

// Entry records one completed (or failed) write operation.
type Entry struct {
	Timestamp    time.Time `json:"timestamp"`
	Machine      string    `json:"machine"`
	Operation    string    `json:"operation"` // "insert", "write", "convert"
	Target       string    `json:"target"`
	OutPath      string    `json:"out_path,omitempty"`
	Sheet        string    `json:"sheet,omitempty"`
	Created      int       `json:"created"`
	Updated      int       `json:"updated"`
	Skipped      int       `json:"skipped"`
	ShapesIntact bool      `json:"shapes_intact"`
	DurationMs   int64     `json:"duration_ms"`
	Error        string    `json:"error,omitempty"`
}

// Record appends one entry for a finished write operation. Best-effort:
// logging must never block or fail the operation itself.
func Record(filePath, operation string, summary *automation.Summary, took time.Duration, opErr error) {
	host, _ := os.Hostname()
	e := Entry{
		Timestamp:  time.Now(),
		Machine:    host,
		Operation:  operation,
		DurationMs: took.Milliseconds(),
	}
	if summary != nil {
		e.Target = summary.InPath
		e.OutPath = summary.OutPath
		e.Sheet = summary.Sheet
		e.Created = summary.Created
		e.Updated = summary.Updated
		e.Skipped = summary.Skipped
		e.ShapesIntact = summary.ShapesIntact
	}
	if opErr != nil {
		e.Error = opErr.Error()
	}
	appendEntry(filePath, e)
}

func appendEntry(filePath string, e Entry) {
	if filePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return
	}
	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = f.Write(data)
}

// ReadEntries reads all history entries from the log file.
func ReadEntries(filePath string) ([]Entry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue // skip malformed lines
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FilterEntries returns entries matching the given criteria.
func FilterEntries(entries []Entry, since time.Time, operation string) []Entry {
	var result []Entry
	for _, e := range entries {
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		if operation != "" && e.Operation != operation {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Clear truncates the history log file.
func Clear(filePath string) error {
	err := os.Truncate(filePath, 0)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
