package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-metrics/internal/database"
	"github.com/iliyamo/court-metrics/internal/model"
)

func newSQLite(t *testing.T) (*UserRepo, *MatchRepo) {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(ctx, db, database.DialectSQLite))
	return NewUserRepo(db), NewMatchRepo(db)
}

// tick returns a clock that advances one second per call.
func tick(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(time.Second)
		return t
	}
}

func ptr(v float64) *float64 { return &v }

func sampleMatch(date string) model.Match {
	return model.Match{
		Date:                 date,
		Opponent:             "Smith",
		Outcome:              "Win",
		SetsPlayed:           ptr(3),
		FirstServesMade:      6,
		FirstServesAttempted: 10,
		BreakPointsWon:       1,
		BreakPointsTotal:     4,
	}
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	users, _ := newSQLite(t)
	ctx := context.Background()

	u, err := users.Create(ctx, "  Alice@Example.COM ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	got, err := users.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "hash", got.HashedPassword)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	_, err = users.Create(ctx, "alice@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = users.GetByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMatchRepo_ListOrderedAndScoped(t *testing.T) {
	_, matches := newSQLite(t)
	matches.Now = tick(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := matches.CreateForUser(ctx, "a@example.com", sampleMatch("2024-04-01"))
	require.NoError(t, err)
	_, err = matches.CreateForUser(ctx, "b@example.com", sampleMatch("2024-04-02"))
	require.NoError(t, err)
	third, err := matches.CreateForUser(ctx, "A@example.com", sampleMatch("2024-03-01"))
	require.NoError(t, err)

	assert.NotEmpty(t, first.MatchID)
	assert.NotEqual(t, first.MatchID, third.MatchID)
	assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))

	list, err := matches.ListForUser(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.MatchID, list[0].MatchID)
	assert.Equal(t, third.MatchID, list[1].MatchID)
	assert.Equal(t, "2024-04-01", list[0].Match.Date)
	require.NotNil(t, list[0].Match.SetsPlayed)
	assert.Equal(t, 3.0, *list[0].Match.SetsPlayed)
	assert.Nil(t, list[0].Match.NetPointsWon)
	assert.Equal(t, 10.0, list[0].Match.FirstServesAttempted)

	empty, err := matches.ListForUser(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
