package stats

import (
	"strings"

	"github.com/iliyamo/court-metrics/internal/model"
)

// Sanitize keeps the rows that have a non-blank date and a
// first_serves_attempted key, and coerces their counters to numbers.
// Missing or non-numeric counters become 0, optional numbers become nil
// and descriptive fields pass through.  Sanitize is idempotent.
func Sanitize(records []Record) []model.Match {
	out := make([]model.Match, 0, len(records))
	for _, r := range records {
		m, ok := sanitizeOne(r)
		if !ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

func sanitizeOne(r Record) (model.Match, bool) {
	date := strings.TrimSpace(toText(r[FieldDate]))
	if date == "" {
		return model.Match{}, false
	}
	// a null first_serves_attempted (an empty CSV cell) still counts as present
	if _, present := r[FieldFirstServesAttempted]; !present {
		return model.Match{}, false
	}
	return model.Match{
		Date:        toText(r[FieldDate]),
		Opponent:    toText(r[FieldOpponent]),
		Location:    toText(r[FieldLocation]),
		Surface:     toText(r[FieldSurface]),
		MatchFormat: toText(r[FieldMatchFormat]),
		Outcome:     toText(r[FieldOutcome]),
		Notes:       toText(r[FieldNotes]),

		SetsPlayed: toOptionalNumber(r[FieldSetsPlayed]),
		SetsWon:    toOptionalNumber(r[FieldSetsWon]),
		GamesWon:   toOptionalNumber(r[FieldGamesWon]),
		GamesLost:  toOptionalNumber(r[FieldGamesLost]),

		FirstServesMade:        toNumber(r[FieldFirstServesMade]),
		FirstServesAttempted:   toNumber(r[FieldFirstServesAttempted]),
		FirstServePointsWon:    toNumber(r[FieldFirstServePointsWon]),
		FirstServePointsTotal:  toNumber(r[FieldFirstServePointsTotal]),
		SecondServePointsWon:   toNumber(r[FieldSecondServePointsWon]),
		SecondServePointsTotal: toNumber(r[FieldSecondServePointsTotal]),
		Aces:                   toNumber(r[FieldAces]),
		DoubleFaults:           toNumber(r[FieldDoubleFaults]),
		BreakPointsWon:         toNumber(r[FieldBreakPointsWon]),
		BreakPointsTotal:       toNumber(r[FieldBreakPointsTotal]),
		ReturnPointsWon:        toNumber(r[FieldReturnPointsWon]),
		ReturnPointsTotal:      toNumber(r[FieldReturnPointsTotal]),
		Winners:                toNumber(r[FieldWinners]),
		UnforcedErrors:         toNumber(r[FieldUnforcedErrors]),

		NetPointsWon:   toOptionalNumber(r[FieldNetPointsWon]),
		NetPointsTotal: toOptionalNumber(r[FieldNetPointsTotal]),
		AvgRallyLength: toOptionalNumber(r[FieldAvgRallyLength]),
	}, true
}
