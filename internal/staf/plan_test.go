package staf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlanRoundTrip(t *testing.T) {
	plan := &Plan{
		Target:   "STAF.xlsm",
		Sheet:    "FLOOR PLAN",
		ShipCode: "GR",
		Metric:   MetricCoinIn,
		Placements: []Placement{
			{Cell: "B3", Position: "GR001", Text: "Position: 1\nDenom: 1¢"},
			{Cell: "C3", Position: "GR002", Text: "Position: 2\nDenom: 5¢"},
		},
	}

	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := WritePlanFile(plan, path); err != nil {
		t.Fatalf("WritePlanFile failed: %v", err)
	}

	got, err := ReadPlanFile(path)
	if err != nil {
		t.Fatalf("ReadPlanFile failed: %v", err)
	}

	if got.ShipCode != "GR" || got.Metric != MetricCoinIn {
		t.Errorf("plan = %+v", got)
	}
	if len(got.Placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(got.Placements))
	}
	if got.Placements[0].Text != plan.Placements[0].Text {
		t.Errorf("multiline text did not survive: %q", got.Placements[0].Text)
	}
}

func TestReadPlanFileEmptyPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("target: STAF.xlsm\nplacements: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadPlanFile(path)
	if err == nil {
		t.Fatal("expected error for a plan with no placements")
	}
	if !strings.Contains(err.Error(), "no placements") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReadPlanFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadPlanFile(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestReadPlanFileMissing(t *testing.T) {
	if _, err := ReadPlanFile("/nonexistent/plan.yaml"); err == nil {
		t.Fatal("expected error for missing plan file")
	}
}
