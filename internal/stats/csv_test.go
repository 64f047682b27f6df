package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,opponent,surface,outcome,first_serves_made,first_serves_attempted,aces,notes
2024-01-01,Smith,Hard,Win,30,50,4,good day

2024-01-08,Jones,Clay,Loss,,45,x,
2024-01-15,Lee
`

func TestParseCSV_TypesCellsDynamically(t *testing.T) {
	recs, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "2024-01-01", recs[0]["date"])
	assert.Equal(t, 30.0, recs[0]["first_serves_made"])
	assert.Equal(t, 50.0, recs[0]["first_serves_attempted"])
	assert.Equal(t, "good day", recs[0]["notes"])

	assert.Nil(t, recs[1]["first_serves_made"])
	assert.Equal(t, "x", recs[1]["aces"])

	_, hasAttempts := recs[2]["first_serves_attempted"]
	assert.False(t, hasAttempts)
}

func TestParseCSV_FeedsSanitize(t *testing.T) {
	recs, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	rows := Sanitize(recs)
	require.Len(t, rows, 2)
	assert.Equal(t, 0.0, rows[1].FirstServesMade)
	assert.Equal(t, 0.0, rows[1].Aces)
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestParseCSV_BoolsAndBOM(t *testing.T) {
	recs, err := ParseCSV(strings.NewReader("\ufeffdate,flag,n\n2024-01-01,TRUE,-1.5e2\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, true, recs[0]["flag"])
	assert.Equal(t, -150.0, recs[0]["n"])
	assert.Equal(t, "2024-01-01", recs[0]["date"])
}
