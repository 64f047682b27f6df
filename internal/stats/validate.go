package stats

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iliyamo/court-metrics/internal/model"
)

// FieldError describes one rejected field of a submitted match.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the list of problems found in a submitted match.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "invalid match: " + strings.Join(parts, "; ")
}

var textFields = []string{
	FieldOpponent, FieldLocation, FieldSurface, FieldMatchFormat, FieldOutcome, FieldNotes,
}

var numericFields = []string{
	FieldSetsPlayed, FieldSetsWon, FieldGamesWon, FieldGamesLost,
	FieldFirstServesMade, FieldFirstServesAttempted,
	FieldFirstServePointsWon, FieldFirstServePointsTotal,
	FieldSecondServePointsWon, FieldSecondServePointsTotal,
	FieldAces, FieldDoubleFaults,
	FieldBreakPointsWon, FieldBreakPointsTotal,
	FieldReturnPointsWon, FieldReturnPointsTotal,
	FieldWinners, FieldUnforcedErrors,
	FieldNetPointsWon, FieldNetPointsTotal, FieldAvgRallyLength,
}

// wonTotalPairs lists (part, whole) fields where part must not exceed whole.
var wonTotalPairs = [][2]string{
	{FieldFirstServesMade, FieldFirstServesAttempted},
	{FieldFirstServePointsWon, FieldFirstServePointsTotal},
	{FieldSecondServePointsWon, FieldSecondServePointsTotal},
	{FieldBreakPointsWon, FieldBreakPointsTotal},
	{FieldReturnPointsWon, FieldReturnPointsTotal},
	{FieldNetPointsWon, FieldNetPointsTotal},
	{FieldSetsWon, FieldSetsPlayed},
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// isScalar reports whether v can stand in for a text field.  CSV typing
// turns cells such as an all-digit opponent into numbers, and those are
// rendered back to text when the match is built.
func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, float64, float32, int, int64, json.Number:
		return true
	}
	return false
}

// ParseMatch validates a submitted match and returns its typed form.  A
// match needs a date and first_serves_attempted; every numeric field must
// be a non-negative number (numeric strings are accepted) and no "won"
// count may exceed its total.
func ParseMatch(r Record) (model.Match, ValidationErrors) {
	var errs ValidationErrors
	add := func(field, msg string) { errs = append(errs, FieldError{Field: field, Message: msg}) }

	switch d := r[FieldDate].(type) {
	case nil:
		add(FieldDate, "is required")
	case string:
		if strings.TrimSpace(d) == "" {
			add(FieldDate, "is required")
		}
	default:
		if !isScalar(d) {
			add(FieldDate, "must be a string")
		}
	}

	for _, f := range textFields {
		if v, ok := r[f]; ok && v != nil && !isScalar(v) {
			add(f, "must be a string")
		}
	}

	values := make(map[string]float64, len(numericFields))
	for _, f := range numericFields {
		v := r[f]
		if isBlank(v) {
			continue
		}
		n, ok := parseNumber(v)
		if _, isBool := v.(bool); !ok || isBool {
			add(f, "must be a number")
			continue
		}
		if n < 0 {
			add(f, "must not be negative")
			continue
		}
		values[f] = n
	}
	if isBlank(r[FieldFirstServesAttempted]) {
		add(FieldFirstServesAttempted, "is required")
	}

	for _, p := range wonTotalPairs {
		part, okPart := values[p[0]]
		whole, okWhole := values[p[1]]
		if okPart && okWhole && part > whole {
			add(p[0], fmt.Sprintf("cannot exceed %s", p[1]))
		}
	}

	if len(errs) > 0 {
		return model.Match{}, errs
	}
	m, _ := sanitizeOne(r)
	return m, nil
}
