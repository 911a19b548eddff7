package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	w, err := New(Config{
		Directories: []string{t.TempDir()},
		Debounce:    100,
	})
	if err != nil {
		t.Fatal(err)
	}
	if w == nil {
		t.Fatal("expected non-nil watcher")
	}
	w.watcher.Close()
}

func TestDefaultDebounce(t *testing.T) {
	w, _ := New(Config{Debounce: 0})
	defer w.watcher.Close()

	if w.Config.Debounce != 500 {
		t.Errorf("expected default debounce 500, got %d", w.Config.Debounce)
	}
}

func TestShouldProcess(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/tmp/STAF.xlsm", true},
		{"/tmp/details.xlsx", true},
		{"/tmp/legacy.XLS", true},
		{"/tmp/readme.txt", false},
		{"/tmp/notes.docx", false},
		{"/tmp/~$STAF.xlsm", false}, // Office lock file
		{"/tmp/.hidden.xlsx", false},
	}
	for _, tt := range tests {
		if got := ShouldProcess(tt.path); got != tt.want {
			t.Errorf("ShouldProcess(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherTriggersHandler(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Config{
		Directories: []string{dir},
		Debounce:    50,
	})
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := make(chan string, 1)
	w.Handler = func(path string) error {
		handlerCalled <- path
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)

	// Give the watcher time to start
	time.Sleep(100 * time.Millisecond)

	testFile := filepath.Join(dir, "STAF.xlsm")
	os.WriteFile(testFile, []byte("test"), 0644)

	select {
	case path := <-handlerCalled:
		if path != testFile {
			t.Errorf("expected %q, got %q", testFile, path)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for handler call")
	}

	cancel()
}

func TestWatcherSkipsNonWorkbooks(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Config{
		Directories: []string{dir},
		Debounce:    50,
	})
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := false
	w.Handler = func(path string) error {
		handlerCalled = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("test"), 0644)
	time.Sleep(200 * time.Millisecond)

	if handlerCalled {
		t.Error("handler should not be called for .txt files")
	}

	cancel()
}

func TestEventLogRecordsErrors(t *testing.T) {
	w, _ := New(Config{Debounce: 10})
	defer w.watcher.Close()

	w.Handler = func(path string) error {
		return os.ErrNotExist
	}
	w.process("/tmp/STAF.xlsm", "modify")

	events := w.EventLog()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Status != "error" || events[0].Error == "" {
		t.Errorf("event = %+v", events[0])
	}
}
