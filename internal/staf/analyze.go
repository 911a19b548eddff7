package staf

import (
	"fmt"

	"github.com/klytics/stafkit/internal/workbook"
)

// Options configures an analysis run. Sheet names and tolerance come from
// config; the ship code from the user.
type Options struct {
	ShipCode    string
	FloorSheet  string
	TotalsSheet string
	Tolerance   float64
}

// Report is the outcome of the read-only pass: what was found, what the
// floor plan displays, and where notes would go. The Log mirrors the steps
// for the GUI/CLI to show.
type Report struct {
	ShipCode     string   `json:"shipCode"`
	Entries      int      `json:"entries"`
	CoinHits     int      `json:"coinHits"`
	NetHits      int      `json:"netHits"`
	ActiveMetric Metric   `json:"activeMetric"`
	Plan         *Plan    `json:"plan"`
	Log          []string `json:"log,omitempty"`
}

func (r *Report) logf(format string, args ...interface{}) {
	r.Log = append(r.Log, fmt.Sprintf(format, args...))
}

// Analyze runs the full read-only pass: build the note dictionary from the
// source workbook, extract daily metrics from the target's totals sheet,
// detect the active floor-plan metric, and plan placements. Neither file is
// modified.
func Analyze(sourcePath, targetPath string, opts Options) (*Report, error) {
	shipCode, err := ValidateShipCode(opts.ShipCode)
	if err != nil {
		return nil, err
	}

	source, err := workbook.OpenReadOnly(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("source workbook: %w", err)
	}
	target, err := workbook.OpenReadOnly(targetPath)
	if err != nil {
		return nil, fmt.Errorf("target workbook: %w", err)
	}

	report := &Report{ShipCode: shipCode}
	report.logf("Loaded %s and %s (read-only).", sourcePath, targetPath)

	if len(source.Sheets) == 0 {
		return nil, fmt.Errorf("source workbook %s has no sheets", sourcePath)
	}
	dict, err := BuildCommentDict(&source.Sheets[0], shipCode)
	if err != nil {
		return nil, err
	}
	report.Entries = len(dict)
	report.logf("Built note dictionary: %d entries.", len(dict))

	totals, err := target.Sheet(opts.TotalsSheet)
	if err != nil {
		return nil, err
	}
	coin, netWin, err := ExtractDailyMetrics(totals, shipCode, len(dict))
	if err != nil {
		return nil, err
	}
	report.logf("Extracted daily coin-in and net-win for %d positions.", len(dict))

	floor, err := target.Sheet(opts.FloorSheet)
	if err != nil {
		return nil, err
	}
	metric, coinHits, netHits, err := DetectActiveMetric(floor, coin, netWin)
	if err != nil {
		return nil, err
	}
	report.CoinHits, report.NetHits = coinHits, netHits
	report.ActiveMetric = metric
	report.logf("Coin-in matches: %d, net-win matches: %d.", coinHits, netHits)
	report.logf("%s is displaying: %s.", floor.Name, metric.Label())

	selected := coin
	if metric == MetricNetWin {
		selected = netWin
	}
	placements := FindPlacements(floor, dict, selected, opts.Tolerance)
	report.Plan = &Plan{
		Target:     targetPath,
		Sheet:      floor.Name,
		ShipCode:   shipCode,
		Metric:     metric,
		Placements: placements,
	}
	report.logf("Planned placements: %d (unique positions).", len(placements))

	return report, nil
}
