package staf

import (
	"crypto/sha256"
	"os"
	"strings"
	"testing"
)

func TestAnalyze(t *testing.T) {
	source := writeSourceFixture(t)
	target := writeTargetFixture(t)

	report, err := Analyze(source, target, Options{
		ShipCode:    "gr",
		FloorSheet:  "FLOOR PLAN",
		TotalsSheet: "TOTALS",
		Tolerance:   0.2,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.ShipCode != "GR" {
		t.Errorf("ship code not normalized: %q", report.ShipCode)
	}
	if report.Entries != 3 {
		t.Errorf("entries = %d, want 3", report.Entries)
	}
	if report.ActiveMetric != MetricCoinIn {
		t.Errorf("active metric = %v, want coin_in", report.ActiveMetric)
	}
	if report.CoinHits <= report.NetHits {
		t.Errorf("coin hits (%d) should exceed net hits (%d)", report.CoinHits, report.NetHits)
	}

	if report.Plan == nil {
		t.Fatal("expected a plan")
	}
	if report.Plan.Sheet != "FLOOR PLAN" {
		t.Errorf("plan sheet = %q", report.Plan.Sheet)
	}
	if len(report.Plan.Placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(report.Plan.Placements))
	}
	for _, p := range report.Plan.Placements {
		if p.Text == "" {
			t.Errorf("placement %s has empty note text", p.Position)
		}
	}

	if len(report.Log) == 0 {
		t.Error("expected log lines in the report")
	}
}

func TestAnalyzeLeavesWorkbooksUnmodified(t *testing.T) {
	source := writeSourceFixture(t)
	target := writeTargetFixture(t)
	sourceBefore := fileDigest(t, source)
	targetBefore := fileDigest(t, target)

	_, err := Analyze(source, target, Options{
		ShipCode:    "GR",
		FloorSheet:  "FLOOR PLAN",
		TotalsSheet: "TOTALS",
		Tolerance:   0.2,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if fileDigest(t, source) != sourceBefore {
		t.Error("analysis modified the machine details workbook")
	}
	if fileDigest(t, target) != targetBefore {
		t.Error("analysis modified the target workbook")
	}
}

func fileDigest(t *testing.T, path string) [sha256.Size]byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return sha256.Sum256(data)
}

func TestAnalyzeBadShipCode(t *testing.T) {
	_, err := Analyze("a.xlsx", "b.xlsm", Options{ShipCode: "TOOLONG"})
	if err == nil {
		t.Fatal("expected error for invalid ship code")
	}
}

func TestAnalyzeMissingSource(t *testing.T) {
	target := writeTargetFixture(t)
	_, err := Analyze("/nonexistent/details.xlsx", target, Options{
		ShipCode:    "GR",
		FloorSheet:  "FLOOR PLAN",
		TotalsSheet: "TOTALS",
	})
	if err == nil {
		t.Fatal("expected error for missing source workbook")
	}
	if !strings.Contains(err.Error(), "source workbook") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAnalyzeMissingTotalsSheet(t *testing.T) {
	source := writeSourceFixture(t)
	target := writeTargetFixture(t)
	_, err := Analyze(source, target, Options{
		ShipCode:    "GR",
		FloorSheet:  "FLOOR PLAN",
		TotalsSheet: "NOT A SHEET",
	})
	if err == nil {
		t.Fatal("expected error for missing totals sheet")
	}
}
