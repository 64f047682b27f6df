package stats

import "github.com/iliyamo/court-metrics/internal/model"

// Series bundles the six chart series.
type Series struct {
	FirstServePct         []FirstServePoint       `json:"firstServePct"`
	ServePointsWon        []ServePointsPoint      `json:"servePointsWon"`
	AcesDoubleFaults      []AcesDoubleFaultsPoint `json:"acesDoubleFaults"`
	WinnersUnforcedErrors []WinnersErrorsPoint    `json:"winnersUnforcedErrors"`
	BreakPointConversion  []BreakPointPoint       `json:"breakPointConversion"`
	ReturnPointsWon       []ReturnPointsPoint     `json:"returnPointsWon"`
}

// Dashboard is everything the dashboard page draws for a set of matches.
type Dashboard struct {
	Matches int    `json:"matches"`
	KPIs    KPIs   `json:"kpis"`
	Series  Series `json:"series"`
}

// BuildDashboard derives the KPIs and all series from sanitized matches.
func BuildDashboard(rows []model.Match) Dashboard {
	return Dashboard{
		Matches: len(rows),
		KPIs:    ComputeKPIs(rows),
		Series: Series{
			FirstServePct:         FirstServeSeries(rows),
			ServePointsWon:        ServePointsSeries(rows),
			AcesDoubleFaults:      AcesDoubleFaultsSeries(rows),
			WinnersUnforcedErrors: WinnersErrorsSeries(rows),
			BreakPointConversion:  BreakPointSeries(rows),
			ReturnPointsWon:       ReturnPointsSeries(rows),
		},
	}
}
