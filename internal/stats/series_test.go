package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-metrics/internal/model"
)

func seriesRows() []model.Match {
	return []model.Match{
		{
			Date:            "2024-03-02",
			FirstServesMade: 6, FirstServesAttempted: 10,
			FirstServePointsWon: 5, FirstServePointsTotal: 8,
			SecondServePointsWon: 1, SecondServePointsTotal: 4,
			Aces: 3, DoubleFaults: 2,
			Winners: 14, UnforcedErrors: 9,
			BreakPointsWon: 1, BreakPointsTotal: 3,
			ReturnPointsWon: 0, ReturnPointsTotal: 0,
		},
		{
			Date: "2024-03-01",
		},
	}
}

func TestSeries_OnePointPerRowInInputOrder(t *testing.T) {
	rows := seriesRows()

	fs := FirstServeSeries(rows)
	require.Len(t, fs, 2)
	assert.Equal(t, FirstServePoint{Date: "2024-03-02", Pct: 60}, fs[0])
	assert.Equal(t, FirstServePoint{Date: "2024-03-01", Pct: 0}, fs[1])

	sp := ServePointsSeries(rows)
	assert.Equal(t, ServePointsPoint{Date: "2024-03-02", First: 62.5, Second: 25}, sp[0])

	ad := AcesDoubleFaultsSeries(rows)
	assert.Equal(t, AcesDoubleFaultsPoint{Date: "2024-03-02", Aces: 3, DoubleFaults: 2}, ad[0])
	assert.Equal(t, AcesDoubleFaultsPoint{Date: "2024-03-01"}, ad[1])

	we := WinnersErrorsSeries(rows)
	assert.Equal(t, WinnersErrorsPoint{Date: "2024-03-02", Winners: 14, UEs: 9}, we[0])
}

func TestBreakPointSeries_NullWithoutBreakPoints(t *testing.T) {
	bp := BreakPointSeries(seriesRows())
	require.Len(t, bp, 2)
	require.NotNil(t, bp[0].BPPct)
	assert.Equal(t, 33.3, *bp[0].BPPct)
	assert.Nil(t, bp[1].BPPct)
}

func TestReturnPointsSeries_NullWithoutReturnPoints(t *testing.T) {
	rp := ReturnPointsSeries(seriesRows())
	require.Len(t, rp, 2)
	assert.Nil(t, rp[0].Pct)
	assert.Nil(t, rp[1].Pct)
}

func TestBuildDashboard(t *testing.T) {
	d := BuildDashboard(seriesRows())
	assert.Equal(t, 2, d.Matches)
	assert.Equal(t, 60.0, d.KPIs.FirstServePct)
	assert.Len(t, d.Series.FirstServePct, 2)
	assert.Len(t, d.Series.ReturnPointsWon, 2)

	empty := BuildDashboard(nil)
	assert.Equal(t, 0, empty.Matches)
	assert.Empty(t, empty.Series.BreakPointConversion)
}
