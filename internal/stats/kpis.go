package stats

import (
	"math"
	"strings"

	"github.com/iliyamo/court-metrics/internal/model"
)

// KPIs summarizes a list of matches.  Pointer fields are nil when their
// denominator is zero, which means "not enough data" rather than 0%.
type KPIs struct {
	FirstServePct        float64  `json:"firstServePct"`
	FirstServePtsWonPct  float64  `json:"firstServePtsWonPct"`
	SecondServePtsWonPct float64  `json:"secondServePtsWonPct"`
	BPConversionPct      *float64 `json:"bpConversionPct"`
	ReturnPtsWonPct      *float64 `json:"returnPtsWonPct"`
	WUERatio             *float64 `json:"wueRatio"`
	WinRatePct           *float64 `json:"winRatePct"`
}

// roundPct turns a fraction into a percentage with one decimal.  Halves
// round away from zero.
func roundPct(fraction float64) float64 {
	return math.Round(fraction*1000) / 10
}

// roundRatio keeps two decimals.
func roundRatio(v float64) float64 {
	return math.Round(v*100) / 100
}

// pct is num/den as a percentage, or 0 for an empty denominator.
func pct(num, den float64) float64 {
	if den > 0 {
		return roundPct(num / den)
	}
	return 0
}

// optionalPct is num/den as a percentage, or nil for an empty denominator.
func optionalPct(num, den float64) *float64 {
	if den > 0 {
		v := roundPct(num / den)
		return &v
	}
	return nil
}

func sum(rows []model.Match, f func(model.Match) float64) float64 {
	var total float64
	for _, r := range rows {
		total += f(r)
	}
	return total
}

// IsWin reports whether the match outcome is a win, ignoring case.
func IsWin(m model.Match) bool {
	return strings.EqualFold(m.Outcome, "win")
}

// ComputeKPIs aggregates sanitized matches.  Each percentage is the ratio
// of summed numerators to summed denominators.  An empty input yields
// zeros for the serve KPIs and nil for the rest.
func ComputeKPIs(rows []model.Match) KPIs {
	k := KPIs{
		FirstServePct: pct(
			sum(rows, func(m model.Match) float64 { return m.FirstServesMade }),
			sum(rows, func(m model.Match) float64 { return m.FirstServesAttempted }),
		),
		FirstServePtsWonPct: pct(
			sum(rows, func(m model.Match) float64 { return m.FirstServePointsWon }),
			sum(rows, func(m model.Match) float64 { return m.FirstServePointsTotal }),
		),
		SecondServePtsWonPct: pct(
			sum(rows, func(m model.Match) float64 { return m.SecondServePointsWon }),
			sum(rows, func(m model.Match) float64 { return m.SecondServePointsTotal }),
		),
		BPConversionPct: optionalPct(
			sum(rows, func(m model.Match) float64 { return m.BreakPointsWon }),
			sum(rows, func(m model.Match) float64 { return m.BreakPointsTotal }),
		),
		ReturnPtsWonPct: optionalPct(
			sum(rows, func(m model.Match) float64 { return m.ReturnPointsWon }),
			sum(rows, func(m model.Match) float64 { return m.ReturnPointsTotal }),
		),
	}

	if len(rows) > 0 {
		wins := sum(rows, func(m model.Match) float64 {
			if IsWin(m) {
				return 1
			}
			return 0
		})
		k.WinRatePct = optionalPct(wins, float64(len(rows)))
	}

	if ues := sum(rows, func(m model.Match) float64 { return m.UnforcedErrors }); ues > 0 {
		ratio := roundRatio(sum(rows, func(m model.Match) float64 { return m.Winners }) / ues)
		k.WUERatio = &ratio
	}
	return k
}
