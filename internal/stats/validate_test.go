package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(errs ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fe.Field)
	}
	return out
}

func TestParseMatch_Valid(t *testing.T) {
	m, errs := ParseMatch(Record{
		"date":                   "2024-05-01",
		"opponent":               "J. Doe",
		"outcome":                "Win",
		"first_serves_made":      "30",
		"first_serves_attempted": 50.0,
		"aces":                   4.0,
		"break_points_won":       2.0,
		"break_points_total":     5.0,
		"notes":                  "",
	})
	require.Empty(t, errs)
	assert.Equal(t, "2024-05-01", m.Date)
	assert.Equal(t, 30.0, m.FirstServesMade)
	assert.Equal(t, 50.0, m.FirstServesAttempted)
	assert.Equal(t, 4.0, m.Aces)
	assert.Equal(t, 0.0, m.Winners)
	assert.Nil(t, m.SetsPlayed)
}

func TestParseMatch_RequiresDateAndAttempts(t *testing.T) {
	_, errs := ParseMatch(Record{"date": "  "})
	assert.ElementsMatch(t, []string{"date", "first_serves_attempted"}, fieldsOf(errs))

	_, errs = ParseMatch(Record{"date": []any{"2024"}, "first_serves_attempted": 1.0})
	require.Len(t, errs, 1)
	assert.Equal(t, FieldError{Field: "date", Message: "must be a string"}, errs[0])
}

func TestParseMatch_AcceptsTypedTextCells(t *testing.T) {
	recs, err := ParseCSV(strings.NewReader(
		"date,opponent,notes,first_serves_attempted,first_serves_made\n20240101,1234,true,10,5\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	m, errs := ParseMatch(recs[0])

	require.Empty(t, errs)
	assert.Equal(t, "20240101", m.Date)
	assert.Equal(t, "1234", m.Opponent)
	assert.Equal(t, "true", m.Notes)
	assert.Equal(t, 5.0, m.FirstServesMade)

	_, errs = ParseMatch(Record{"date": "2024-01-01", "first_serves_attempted": 1.0, "opponent": map[string]any{"name": "x"}})
	assert.Equal(t, []string{"opponent"}, fieldsOf(errs))
}

func TestParseMatch_RejectsNonNumericAndNegative(t *testing.T) {
	_, errs := ParseMatch(Record{
		"date":                   "2024-05-01",
		"first_serves_attempted": 10.0,
		"aces":                   "many",
		"double_faults":          -1.0,
		"winners":                true,
		"opponent":               42.0,
	})
	assert.ElementsMatch(t, []string{"aces", "double_faults", "winners", "opponent"}, fieldsOf(errs))
}

func TestParseMatch_WonCannotExceedTotal(t *testing.T) {
	_, errs := ParseMatch(Record{
		"date":                      "2024-05-01",
		"first_serves_made":         11.0,
		"first_serves_attempted":    10.0,
		"return_points_won":         30.0,
		"return_points_total":       20.0,
		"break_points_won":          1.0,
		"sets_won":                  3.0,
		"sets_played":               2.0,
		"second_serve_points_won":   5.0,
		"second_serve_points_total": 5.0,
	})
	assert.ElementsMatch(t, []string{"first_serves_made", "return_points_won", "sets_won"}, fieldsOf(errs))
	assert.Contains(t, errs.Error(), "first_serves_made cannot exceed first_serves_attempted")
}
