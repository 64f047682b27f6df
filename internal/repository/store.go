package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/court-metrics/internal/model"
	"github.com/iliyamo/court-metrics/internal/utils"
)

// UserStore persists accounts keyed by normalized email.
type UserStore interface {
	Create(ctx context.Context, email, hashedPassword string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// MatchStore persists matches owned by a single user.
type MatchStore interface {
	// ListForUser returns the user's matches ordered by creation time.
	ListForUser(ctx context.Context, email string) ([]model.MatchRecord, error)
	CreateForUser(ctx context.Context, email string, m model.Match) (model.MatchRecord, error)
}

// stamp returns the current UTC time at millisecond precision, which is
// what survives a round trip through TimeLayout.
func stamp(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return now().UTC().Truncate(time.Millisecond)
}

func newRecord(email string, m model.Match, at time.Time) model.MatchRecord {
	return model.MatchRecord{
		UserEmail: utils.NormalizeEmail(email),
		MatchID:   uuid.NewString(),
		Match:     m,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func sortByCreated(recs []model.MatchRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].MatchID < recs[j].MatchID
		}
		return recs[i].CreatedAt.Before(recs[j].CreatedAt)
	})
}
