// Package progress paints write-pass feedback on stderr while the host
// application is busy: a per-note bar for batch writes and a spinner for
// calls with no countable steps (opening a workbook, SaveAs). stdout is
// left clean so --json pipelines stay parseable. STAF_NO_PROGRESS=1
// silences everything.
package progress

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Bar tracks one note write per tick.
type Bar struct {
	Total   int
	Current int
	Label   string
	Width   int
	Enabled bool

	mu sync.Mutex
}

// New creates a bar sized to the placement count. Disabled off-TTY, under
// --json, or with STAF_NO_PROGRESS=1.
func New(label string, total int) *Bar {
	return &Bar{
		Total:   total,
		Label:   label,
		Width:   30,
		Enabled: shouldEnable(),
	}
}

// Increment advances by one note. status is the cell just written.
func (b *Bar) Increment(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Current++
	if b.Current > b.Total {
		b.Current = b.Total
	}
	b.render(status)
}

// Set jumps the bar to n notes done.
func (b *Bar) Set(n int, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Current = n
	if b.Current > b.Total {
		b.Current = b.Total
	}
	b.render(status)
}

// Finish replaces the bar with a completion line.
func (b *Bar) Finish(summary string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.Enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r\033[K✓ %s\n", summary)
}

// Fail replaces the bar with a failure line. The actual error goes to the
// caller; this only keeps a half-drawn bar off the terminal.
func (b *Bar) Fail(summary string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.Enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "\r\033[K✗ %s\n", summary)
}

func (b *Bar) render(status string) {
	if !b.Enabled {
		return
	}

	pct := 0.0
	if b.Total > 0 {
		pct = float64(b.Current) / float64(b.Total)
	}

	filled := int(pct * float64(b.Width))
	if filled > b.Width {
		filled = b.Width
	}

	bar := strings.Repeat("#", filled) + strings.Repeat("-", b.Width-filled)
	fmt.Fprintf(os.Stderr, "\r\033[K%s [%s] %d/%d notes  %s",
		b.Label, bar, b.Current, b.Total, status)
}

// Pct returns how far along the bar is, 0 to 100.
func (b *Bar) Pct() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Total == 0 {
		return 0
	}
	return float64(b.Current) / float64(b.Total) * 100
}

// Spinner covers the stretches where Excel gives no progress signal at
// all, such as launching the application or saving the workbook.
type Spinner struct {
	Label   string
	Enabled bool

	mu      sync.Mutex
	done    chan struct{}
	stopped bool
}

// NewSpinner creates a spinner, gated the same way as New.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		Label:   label,
		Enabled: shouldEnable(),
		done:    make(chan struct{}),
	}
}

// Start begins animating on stderr.
func (s *Spinner) Start() {
	if !s.Enabled {
		return
	}

	s.mu.Lock()
	s.stopped = false
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		frames := `|/-\`
		i := 0
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				if !s.stopped {
					fmt.Fprintf(os.Stderr, "\r\033[K%c %s", frames[i%len(frames)], s.Label)
					i++
				}
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the spinner and prints the result line.
func (s *Spinner) Stop(result string) {
	s.halt()
	if s.Enabled {
		fmt.Fprintf(os.Stderr, "\r\033[K✓ %s\n", result)
	}
}

// Fail halts the spinner and prints a failure line.
func (s *Spinner) Fail(result string) {
	s.halt()
	if s.Enabled {
		fmt.Fprintf(os.Stderr, "\r\033[K✗ %s\n", result)
	}
}

func (s *Spinner) halt() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// Update swaps the label mid-flight, e.g. from "opening" to "saving".
func (s *Spinner) Update(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Label = label
}

func shouldEnable() bool {
	if os.Getenv("STAF_NO_PROGRESS") == "1" {
		return false
	}
	if os.Getenv("STAF_JSON") == "true" {
		return false
	}
	return isTTY()
}

func isTTY() bool {
	stat, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
