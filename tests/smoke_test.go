// Package tests provides smoke tests that validate every staf command
// exists, runs, and exits cleanly without panicking.
// These tests compile and run the binary — they are integration tests.
// They do NOT require Excel: only the read-only surface is exercised.
package tests

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// stafBin returns the path to the compiled staf binary.
func stafBin(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(filename), "..")
	bin := filepath.Join(root, "bin", "staf")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	if _, err := os.Stat(bin); os.IsNotExist(err) {
		t.Skipf("staf binary not found at %s — run 'go build -o bin/staf .' first", bin)
	}
	return bin
}

// run executes staf with args and returns stdout, stderr, and exit code.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(stafBin(t), args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
	}
	return stdout.String(), stderr.String(), code
}

// writeFixtures builds a machine details and a STAF workbook for the
// read-only commands.
func writeFixtures(t *testing.T) (source, target string) {
	t.Helper()
	dir := t.TempDir()

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Machine Details")
	f.SetCellValue("Machine Details", "A1", "Position")
	f.SetCellValue("Machine Details", "B1", "Asset Number")
	f.SetCellValue("Machine Details", "A2", 1)
	f.SetCellValue("Machine Details", "B2", 61623168)
	source = filepath.Join(dir, "details.xlsx")
	if err := f.SaveAs(source); err != nil {
		t.Fatal(err)
	}
	f.Close()

	g := excelize.NewFile()
	g.SetSheetName("Sheet1", "FLOOR PLAN")
	g.NewSheet("TOTALS")
	g.SetCellValue("TOTALS", "B2", "DAILY COIN IN")
	g.SetCellValue("TOTALS", "C2", "DAILY NET WIN")
	g.SetCellValue("TOTALS", "B3", 120.5)
	g.SetCellValue("TOTALS", "C3", 10.5)
	g.SetCellValue("FLOOR PLAN", "B2", 1)
	g.SetCellValue("FLOOR PLAN", "B3", 120.5)
	target = filepath.Join(dir, "staf.xlsx")
	if err := g.SaveAs(target); err != nil {
		t.Fatal(err)
	}
	g.Close()

	return source, target
}

// TestAllCommandsExist validates that every command appears in --help.
func TestAllCommandsExist(t *testing.T) {
	commands := []string{
		"note", "analyze", "convert", "watch", "tui", "shell",
		"config", "doctor", "history", "completion", "version",
	}

	stdout, _, code := run(t, "--help")
	if code != 0 {
		t.Fatalf("staf --help exited with code %d", code)
	}
	for _, cmd := range commands {
		if !strings.Contains(stdout, cmd) {
			t.Errorf("command %q not found in staf --help output", cmd)
		}
	}
}

// TestAnalyzeReadOnly validates the full read-only pass end to end and
// that neither input file is modified.
func TestAnalyzeReadOnly(t *testing.T) {
	source, target := writeFixtures(t)
	beforeSource, _ := os.Stat(source)
	beforeTarget, _ := os.Stat(target)

	stdout, stderr, code := run(t, "analyze", source, target, "--ship", "GR")
	if code != 0 {
		t.Fatalf("staf analyze exited %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Daily Coin In") {
		t.Errorf("expected detected metric in output, got: %s", stdout)
	}

	afterSource, _ := os.Stat(source)
	afterTarget, _ := os.Stat(target)
	if !beforeSource.ModTime().Equal(afterSource.ModTime()) ||
		!beforeTarget.ModTime().Equal(afterTarget.ModTime()) {
		t.Error("analyze must not modify either workbook")
	}
}

// TestAnalyzeJSON validates JSON output structure.
func TestAnalyzeJSON(t *testing.T) {
	source, target := writeFixtures(t)

	stdout, _, code := run(t, "analyze", source, target, "--ship", "GR", "--json")
	if code != 0 {
		t.Fatal("staf analyze --json should exit 0")
	}
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("--json output is not valid JSON: %v\nOutput: %s", err, stdout)
	}
}

// TestAnalyzePlanExport validates the plan file round trip at the CLI level.
func TestAnalyzePlanExport(t *testing.T) {
	source, target := writeFixtures(t)
	plan := filepath.Join(t.TempDir(), "plan.yaml")

	_, stderr, code := run(t, "analyze", source, target, "--ship", "GR", "--plan", plan)
	if code != 0 {
		t.Fatalf("staf analyze --plan exited %d: %s", code, stderr)
	}
	data, err := os.ReadFile(plan)
	if err != nil {
		t.Fatal("plan file was not written")
	}
	if !strings.Contains(string(data), "GR001") {
		t.Errorf("plan should contain the placement key, got: %s", data)
	}
}

// TestAnalyzeBadShipCode validates ship code validation at the CLI level.
func TestAnalyzeBadShipCode(t *testing.T) {
	source, target := writeFixtures(t)
	_, stderr, code := run(t, "analyze", source, target, "--ship", "TOOLONG")
	if code == 0 {
		t.Fatal("invalid ship code should fail")
	}
	if !strings.Contains(stderr, "ship code") {
		t.Errorf("expected ship code error, got: %s", stderr)
	}
}

// TestVersionOutput validates version command format.
func TestVersionOutput(t *testing.T) {
	stdout, _, code := run(t, "version")
	if code != 0 {
		t.Fatal("staf version should exit 0")
	}
	if !strings.Contains(stdout, "staf") {
		t.Errorf("version output should contain 'staf', got: %s", stdout)
	}
}

// TestDoctorRuns validates doctor command runs without panic.
func TestDoctorRuns(t *testing.T) {
	_, _, code := run(t, "doctor")
	if code > 2 {
		t.Errorf("doctor should exit 0, 1, or 2, got: %d", code)
	}
}

// TestConfigShowRuns validates config show does not panic.
func TestConfigShowRuns(t *testing.T) {
	_, _, code := run(t, "config", "show")
	if code > 1 {
		t.Errorf("config show should exit 0 or 1, got %d", code)
	}
}

// TestAllCommandsHaveHelp validates every command accepts --help.
func TestAllCommandsHaveHelp(t *testing.T) {
	commandPaths := [][]string{
		{"note", "insert"}, {"note", "write"},
		{"analyze"}, {"convert"}, {"watch"}, {"tui"}, {"shell"},
		{"config", "init"}, {"config", "show"}, {"config", "validate"},
		{"history", "show"}, {"history", "clear"},
		{"completion", "bash"}, {"completion", "zsh"},
		{"doctor"}, {"version"},
	}

	for _, path := range commandPaths {
		args := append(path, "--help")
		t.Run(strings.Join(path, "_"), func(t *testing.T) {
			_, _, code := run(t, args...)
			if code != 0 {
				t.Errorf("staf %s --help should exit 0", strings.Join(path, " "))
			}
		})
	}
}
