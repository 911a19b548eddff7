package staf

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/klytics/stafkit/internal/workbook"
)

// Metric names which daily figure the floor plan is displaying.
type Metric string

const (
	MetricCoinIn Metric = "coin_in"
	MetricNetWin Metric = "net_win"
)

// Label returns the human name used on the totals sheet.
func (m Metric) Label() string {
	if m == MetricCoinIn {
		return "Daily Coin In"
	}
	return "Daily Net Win"
}

// headerSearchRows bounds the scan for metric headers on the totals sheet.
const headerSearchRows = 20

var spaceRun = regexp.MustCompile(`\s+`)

func normalizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ToUpper(spaceRun.ReplaceAllString(strings.TrimSpace(s), " "))
}

// ExtractDailyMetrics locates the "DAILY COIN IN" and "DAILY NET WIN" columns
// on the totals sheet and reads one value per machine position below the
// header row. Missing cells read as zero.
func ExtractDailyMetrics(totals *workbook.Sheet, shipCode string, machineCount int) (coin, netWin map[string]float64, err error) {
	coinCol, netCol, headerRow := 0, 0, 0

	for r := 1; r <= headerSearchRows && r <= totals.MaxRow(); r++ {
		for c := 1; c <= totals.MaxCol(); c++ {
			text := normalizeHeader(totals.At(r, c).String())
			if text == "" {
				continue
			}
			switch {
			case strings.Contains(text, "DAILY COIN IN"):
				coinCol, headerRow = c, r
			case strings.Contains(text, "DAILY NET WIN"):
				netCol, headerRow = c, r
			}
		}
		if coinCol != 0 && netCol != 0 {
			break
		}
	}

	if coinCol == 0 || netCol == 0 {
		return nil, nil, fmt.Errorf("could not find \"DAILY COIN IN\" and \"DAILY NET WIN\" headers on sheet %q", totals.Name)
	}

	coin = make(map[string]float64, machineCount)
	netWin = make(map[string]float64, machineCount)
	for i := 1; i <= machineCount; i++ {
		row := headerRow + i
		key := PositionKey(shipCode, i)
		coin[key] = numberOrZero(totals.At(row, coinCol))
		netWin[key] = numberOrZero(totals.At(row, netCol))
	}
	return coin, netWin, nil
}

func numberOrZero(v workbook.Value) float64 {
	n, ok := v.AsNumber()
	if !ok {
		return 0
	}
	return n
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// DetectActiveMetric decides whether the floor plan currently displays
// coin-in or net-win figures by tallying value matches against both metric
// sets. A tie means the display cannot be determined and is an error.
func DetectActiveMetric(floor *workbook.Sheet, coin, netWin map[string]float64) (Metric, int, int, error) {
	coinValues := make(map[float64]bool, len(coin))
	for _, v := range coin {
		coinValues[round2(v)] = true
	}
	netValues := make(map[float64]bool, len(netWin))
	for _, v := range netWin {
		netValues[round2(v)] = true
	}

	coinHits, netHits := 0, 0
	for r := 1; r <= floor.MaxRow(); r++ {
		for c := 1; c <= floor.MaxCol(); c++ {
			n, ok := floor.At(r, c).AsNumber()
			if !ok {
				continue
			}
			switch rounded := round2(n); {
			case coinValues[rounded]:
				coinHits++
			case netValues[rounded]:
				netHits++
			}
		}
	}

	switch {
	case coinHits > netHits:
		return MetricCoinIn, coinHits, netHits, nil
	case netHits > coinHits:
		return MetricNetWin, coinHits, netHits, nil
	default:
		return "", coinHits, netHits, fmt.Errorf("could not determine whether sheet %q shows coin-in or net-win (%d matches each)", floor.Name, coinHits)
	}
}
