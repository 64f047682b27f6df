package stats

import (
	"io"
	"math"
	"strings"
)

// ProRow is one line of the professional comparison table: a player's
// aggregated numbers on one surface.  Missing or non-numeric cells are nil.
type ProRow struct {
	Player                  string   `json:"player"`
	Surface                 string   `json:"surface"`
	Matches                 *float64 `json:"matches"`
	FirstServePct           *float64 `json:"first_serve_pct"`
	FirstServePointsWonPct  *float64 `json:"first_serve_points_won_pct"`
	SecondServePointsWonPct *float64 `json:"second_serve_points_won_pct"`
	AcesPerMatch            *float64 `json:"aces_per_match"`
	DoubleFaultsPerMatch    *float64 `json:"double_faults_per_match"`
	BreakPointsConvertedPct *float64 `json:"break_points_converted_pct"`
	ReturnPointsWonPct      *float64 `json:"return_points_won_pct"`
	WinnersPerMatch         *float64 `json:"winners_per_match"`
	UnforcedErrorsPerMatch  *float64 `json:"unforced_errors_per_match"`
	WinRatePct              *float64 `json:"win_rate_pct"`
}

// ProView is the dashboard for one professional player.  The series use
// the surface name where the personal dashboard uses the match date.
type ProView struct {
	Player   string `json:"player"`
	Surfaces int    `json:"surfaces"`
	KPIs     KPIs   `json:"kpis"`
	Series   Series `json:"series"`
}

// ParseProRows converts CSV records into pro rows.  Rows without a player
// name are dropped.
func ParseProRows(records []Record) []ProRow {
	out := make([]ProRow, 0, len(records))
	for _, r := range records {
		player := strings.TrimSpace(toText(r["player"]))
		if player == "" {
			continue
		}
		out = append(out, ProRow{
			Player:                  player,
			Surface:                 toText(r["surface"]),
			Matches:                 toOptionalNumber(r["matches"]),
			FirstServePct:           toOptionalNumber(r["first_serve_pct"]),
			FirstServePointsWonPct:  toOptionalNumber(r["first_serve_points_won_pct"]),
			SecondServePointsWonPct: toOptionalNumber(r["second_serve_points_won_pct"]),
			AcesPerMatch:            toOptionalNumber(r["aces_per_match"]),
			DoubleFaultsPerMatch:    toOptionalNumber(r["double_faults_per_match"]),
			BreakPointsConvertedPct: toOptionalNumber(r["break_points_converted_pct"]),
			ReturnPointsWonPct:      toOptionalNumber(r["return_points_won_pct"]),
			WinnersPerMatch:         toOptionalNumber(r["winners_per_match"]),
			UnforcedErrorsPerMatch:  toOptionalNumber(r["unforced_errors_per_match"]),
			WinRatePct:              toOptionalNumber(r["win_rate_pct"]),
		})
	}
	return out
}

// ProTable is a read-only, in-memory set of pro rows.  It is safe for
// concurrent use.
type ProTable struct {
	rows []ProRow
}

// NewProTable wraps rows.
func NewProTable(rows []ProRow) *ProTable {
	return &ProTable{rows: rows}
}

// LoadProTable parses a pro comparison CSV.
func LoadProTable(r io.Reader) (*ProTable, error) {
	records, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return NewProTable(ParseProRows(records)), nil
}

// Players lists distinct player names in first-seen order.
func (t *ProTable) Players() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range t.rows {
		if _, ok := seen[r.Player]; ok {
			continue
		}
		seen[r.Player] = struct{}{}
		out = append(out, r.Player)
	}
	return out
}

// Player builds the view for name.  The boolean is false when the table
// has no rows for that player.
func (t *ProTable) Player(name string) (ProView, bool) {
	var rows []ProRow
	for _, r := range t.rows {
		if r.Player == name {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return ProView{}, false
	}
	return ProView{
		Player:   name,
		Surfaces: len(rows),
		KPIs:     proKPIs(rows),
		Series:   proSeries(rows),
	}, true
}

// proKPIs averages each column across surfaces.  The winners/UE ratio is
// the ratio of the two averages.
func proKPIs(rows []ProRow) KPIs {
	k := KPIs{
		FirstServePct:        valueOr(avg(rows, func(r ProRow) *float64 { return r.FirstServePct }), 0),
		FirstServePtsWonPct:  valueOr(avg(rows, func(r ProRow) *float64 { return r.FirstServePointsWonPct }), 0),
		SecondServePtsWonPct: valueOr(avg(rows, func(r ProRow) *float64 { return r.SecondServePointsWonPct }), 0),
		BPConversionPct:      avg(rows, func(r ProRow) *float64 { return r.BreakPointsConvertedPct }),
		ReturnPtsWonPct:      avg(rows, func(r ProRow) *float64 { return r.ReturnPointsWonPct }),
		WinRatePct:           avg(rows, func(r ProRow) *float64 { return r.WinRatePct }),
	}
	winners := avgRaw(rows, func(r ProRow) *float64 { return r.WinnersPerMatch })
	ues := avgRaw(rows, func(r ProRow) *float64 { return r.UnforcedErrorsPerMatch })
	if winners != nil && ues != nil && *ues > 0 {
		ratio := roundRatio(*winners / *ues)
		k.WUERatio = &ratio
	}
	return k
}

func proSeries(rows []ProRow) Series {
	s := Series{
		FirstServePct:         make([]FirstServePoint, 0, len(rows)),
		ServePointsWon:        make([]ServePointsPoint, 0, len(rows)),
		AcesDoubleFaults:      make([]AcesDoubleFaultsPoint, 0, len(rows)),
		WinnersUnforcedErrors: make([]WinnersErrorsPoint, 0, len(rows)),
		BreakPointConversion:  make([]BreakPointPoint, 0, len(rows)),
		ReturnPointsWon:       make([]ReturnPointsPoint, 0, len(rows)),
	}
	for _, r := range rows {
		s.FirstServePct = append(s.FirstServePct, FirstServePoint{Date: r.Surface, Pct: valueOr(r.FirstServePct, 0)})
		s.ServePointsWon = append(s.ServePointsWon, ServePointsPoint{
			Date:   r.Surface,
			First:  valueOr(r.FirstServePointsWonPct, 0),
			Second: valueOr(r.SecondServePointsWonPct, 0),
		})
		s.AcesDoubleFaults = append(s.AcesDoubleFaults, AcesDoubleFaultsPoint{
			Date:         r.Surface,
			Aces:         valueOr(r.AcesPerMatch, 0),
			DoubleFaults: valueOr(r.DoubleFaultsPerMatch, 0),
		})
		s.WinnersUnforcedErrors = append(s.WinnersUnforcedErrors, WinnersErrorsPoint{
			Date:    r.Surface,
			Winners: valueOr(r.WinnersPerMatch, 0),
			UEs:     valueOr(r.UnforcedErrorsPerMatch, 0),
		})
		s.BreakPointConversion = append(s.BreakPointConversion, BreakPointPoint{Date: r.Surface, BPPct: r.BreakPointsConvertedPct})
		s.ReturnPointsWon = append(s.ReturnPointsWon, ReturnPointsPoint{Date: r.Surface, Pct: r.ReturnPointsWonPct})
	}
	return s
}

// avg is the mean of the non-nil values rounded to one decimal, or nil.
func avg(rows []ProRow, f func(ProRow) *float64) *float64 {
	v := avgRaw(rows, f)
	if v == nil {
		return nil
	}
	rounded := math.Round(*v*10) / 10
	return &rounded
}

func avgRaw(rows []ProRow, f func(ProRow) *float64) *float64 {
	var total float64
	var n int
	for _, r := range rows {
		if v := f(r); v != nil {
			total += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := total / float64(n)
	return &mean
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
