package stats

import "github.com/iliyamo/court-metrics/internal/model"

// The series below project one point per input row, in input order.
// Callers sort rows beforehand when they want a chronological chart.

// FirstServePoint is the first-serve percentage of one match.
type FirstServePoint struct {
	Date string  `json:"date"`
	Pct  float64 `json:"pct"`
}

// ServePointsPoint holds first and second serve points won percentages.
type ServePointsPoint struct {
	Date   string  `json:"date"`
	First  float64 `json:"first"`
	Second float64 `json:"second"`
}

// AcesDoubleFaultsPoint compares aces with double faults.
type AcesDoubleFaultsPoint struct {
	Date         string  `json:"date"`
	Aces         float64 `json:"aces"`
	DoubleFaults float64 `json:"doubleFaults"`
}

// WinnersErrorsPoint compares winners with unforced errors.
type WinnersErrorsPoint struct {
	Date    string  `json:"date"`
	Winners float64 `json:"winners"`
	UEs     float64 `json:"ues"`
}

// BreakPointPoint is the break point conversion of one match; BPPct is nil
// when the match had no break points.
type BreakPointPoint struct {
	Date  string   `json:"date"`
	BPPct *float64 `json:"bpPct"`
}

// ReturnPointsPoint is the return points won percentage of one match; Pct
// is nil when no return points were recorded.
type ReturnPointsPoint struct {
	Date string   `json:"date"`
	Pct  *float64 `json:"pct"`
}

// FirstServeSeries returns first serves made over attempted per match (0
// when nothing was attempted).
func FirstServeSeries(rows []model.Match) []FirstServePoint {
	out := make([]FirstServePoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, FirstServePoint{Date: r.Date, Pct: pct(r.FirstServesMade, r.FirstServesAttempted)})
	}
	return out
}

// ServePointsSeries returns first and second serve points won per match.
func ServePointsSeries(rows []model.Match) []ServePointsPoint {
	out := make([]ServePointsPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, ServePointsPoint{
			Date:   r.Date,
			First:  pct(r.FirstServePointsWon, r.FirstServePointsTotal),
			Second: pct(r.SecondServePointsWon, r.SecondServePointsTotal),
		})
	}
	return out
}

// AcesDoubleFaultsSeries returns raw ace and double fault counts.
func AcesDoubleFaultsSeries(rows []model.Match) []AcesDoubleFaultsPoint {
	out := make([]AcesDoubleFaultsPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, AcesDoubleFaultsPoint{Date: r.Date, Aces: r.Aces, DoubleFaults: r.DoubleFaults})
	}
	return out
}

// WinnersErrorsSeries returns raw winner and unforced error counts.
func WinnersErrorsSeries(rows []model.Match) []WinnersErrorsPoint {
	out := make([]WinnersErrorsPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, WinnersErrorsPoint{Date: r.Date, Winners: r.Winners, UEs: r.UnforcedErrors})
	}
	return out
}

// BreakPointSeries returns break point conversion per match.
func BreakPointSeries(rows []model.Match) []BreakPointPoint {
	out := make([]BreakPointPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, BreakPointPoint{Date: r.Date, BPPct: optionalPct(r.BreakPointsWon, r.BreakPointsTotal)})
	}
	return out
}

// ReturnPointsSeries returns return points won per match.
func ReturnPointsSeries(rows []model.Match) []ReturnPointsPoint {
	out := make([]ReturnPointsPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, ReturnPointsPoint{Date: r.Date, Pct: optionalPct(r.ReturnPointsWon, r.ReturnPointsTotal)})
	}
	return out
}
