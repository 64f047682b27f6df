// Package stats turns raw match rows into sanitized matches and derives
// the KPI summaries and per-match series drawn by the dashboard charts.
//
// Every function in this package is pure: no I/O, no shared state.
package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is a raw match row as decoded from a JSON body or a CSV line.
// Values may be numbers, numeric strings, booleans, strings or nil.
type Record map[string]any

// Field names shared by JSON payloads and CSV headers.
const (
	FieldDate                   = "date"
	FieldOpponent               = "opponent"
	FieldLocation               = "location"
	FieldSurface                = "surface"
	FieldMatchFormat            = "match_format"
	FieldOutcome                = "outcome"
	FieldNotes                  = "notes"
	FieldSetsPlayed             = "sets_played"
	FieldSetsWon                = "sets_won"
	FieldGamesWon               = "games_won"
	FieldGamesLost              = "games_lost"
	FieldFirstServesMade        = "first_serves_made"
	FieldFirstServesAttempted   = "first_serves_attempted"
	FieldFirstServePointsWon    = "first_serve_points_won"
	FieldFirstServePointsTotal  = "first_serve_points_total"
	FieldSecondServePointsWon   = "second_serve_points_won"
	FieldSecondServePointsTotal = "second_serve_points_total"
	FieldAces                   = "aces"
	FieldDoubleFaults           = "double_faults"
	FieldBreakPointsWon         = "break_points_won"
	FieldBreakPointsTotal       = "break_points_total"
	FieldReturnPointsWon        = "return_points_won"
	FieldReturnPointsTotal      = "return_points_total"
	FieldWinners                = "winners"
	FieldUnforcedErrors         = "unforced_errors"
	FieldNetPointsWon           = "net_points_won"
	FieldNetPointsTotal         = "net_points_total"
	FieldAvgRallyLength         = "avg_rally_length"
)

// parseNumber converts v to a finite float64.  ok is false when v is nil,
// blank, non-numeric or not finite.
func parseNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toNumber coerces v to a number, falling back to 0.
func toNumber(v any) float64 {
	f, _ := parseNumber(v)
	return f
}

// toOptionalNumber coerces v to a number, or nil when it has none.
func toOptionalNumber(v any) *float64 {
	f, ok := parseNumber(v)
	if !ok {
		return nil
	}
	return &f
}

// toText renders descriptive values as strings.
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
