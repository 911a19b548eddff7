package staf

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractDailyMetrics(t *testing.T) {
	totals := openSheet(t, writeTargetFixture(t), "TOTALS")

	coin, net, err := ExtractDailyMetrics(totals, "GR", 3)
	if err != nil {
		t.Fatalf("ExtractDailyMetrics failed: %v", err)
	}

	if coin["GR001"] != 120.5 {
		t.Errorf("coin[GR001] = %v, want 120.5", coin["GR001"])
	}
	if coin["GR003"] != 99.99 {
		t.Errorf("coin[GR003] = %v, want 99.99", coin["GR003"])
	}
	if net["GR002"] != 42.42 {
		t.Errorf("net[GR002] = %v, want 42.42", net["GR002"])
	}
}

func TestExtractDailyMetricsMissingRowsReadZero(t *testing.T) {
	totals := openSheet(t, writeTargetFixture(t), "TOTALS")

	// Ask for more machines than the sheet carries.
	coin, _, err := ExtractDailyMetrics(totals, "GR", 5)
	if err != nil {
		t.Fatal(err)
	}
	if coin["GR005"] != 0 {
		t.Errorf("coin[GR005] = %v, want 0", coin["GR005"])
	}
}

func TestExtractDailyMetricsMissingHeaders(t *testing.T) {
	// The floor plan has no metric headers at all.
	floor := openSheet(t, writeTargetFixture(t), "FLOOR PLAN")

	_, _, err := ExtractDailyMetrics(floor, "GR", 3)
	if err == nil {
		t.Fatal("expected error when headers are missing")
	}
	if !strings.Contains(err.Error(), "DAILY COIN IN") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExtractDailyMetricsMultilineHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "TOTALS")
	f.SetCellValue("TOTALS", "A1", "Daily\nCoin In")
	f.SetCellValue("TOTALS", "B1", "DAILY  NET   WIN")
	f.SetCellValue("TOTALS", "A2", 10.0)
	f.SetCellValue("TOTALS", "B2", 20.0)
	path := filepath.Join(t.TempDir(), "totals.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	totals := openSheet(t, path, "TOTALS")
	coin, net, err := ExtractDailyMetrics(totals, "GR", 1)
	if err != nil {
		t.Fatalf("headers with line breaks and extra spaces should match: %v", err)
	}
	if coin["GR001"] != 10 || net["GR001"] != 20 {
		t.Errorf("coin=%v net=%v", coin["GR001"], net["GR001"])
	}
}

func TestDetectActiveMetricCoinIn(t *testing.T) {
	floor := openSheet(t, writeTargetFixture(t), "FLOOR PLAN")

	coin := map[string]float64{"GR001": 120.5, "GR002": 300.25, "GR003": 99.99}
	net := map[string]float64{"GR001": 10.5, "GR002": 42.42, "GR003": 7.77}

	metric, coinHits, netHits, err := DetectActiveMetric(floor, coin, net)
	if err != nil {
		t.Fatalf("DetectActiveMetric failed: %v", err)
	}
	if metric != MetricCoinIn {
		t.Errorf("metric = %v, want coin_in", metric)
	}
	if coinHits != 3 || netHits != 0 {
		t.Errorf("hits = %d coin, %d net; want 3, 0", coinHits, netHits)
	}
}

func TestDetectActiveMetricTieIsError(t *testing.T) {
	floor := openSheet(t, writeTargetFixture(t), "FLOOR PLAN")

	// One floor value from each set: 120.5 matches coin, 300.25 matches net.
	coin := map[string]float64{"GR001": 120.5}
	net := map[string]float64{"GR001": 300.25}

	_, coinHits, netHits, err := DetectActiveMetric(floor, coin, net)
	if err == nil {
		t.Fatal("expected error on a tie")
	}
	if coinHits != netHits {
		t.Errorf("expected a tie, got %d vs %d", coinHits, netHits)
	}
}

func TestMetricLabel(t *testing.T) {
	if MetricCoinIn.Label() != "Daily Coin In" {
		t.Errorf("coin label = %q", MetricCoinIn.Label())
	}
	if MetricNetWin.Label() != "Daily Net Win" {
		t.Errorf("net label = %q", MetricNetWin.Label())
	}
}
