package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iliyamo/court-metrics/internal/model"
	"github.com/iliyamo/court-metrics/internal/utils"
)

// MatchRepo is the SQL MatchStore.  The match payload is stored as a JSON
// document so optional fields survive unchanged.
type MatchRepo struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{DB: db, Now: time.Now} }

func (r *MatchRepo) CreateForUser(ctx context.Context, email string, m model.Match) (model.MatchRecord, error) {
	rec := newRecord(email, m, stamp(r.Now))
	doc, err := json.Marshal(rec.Match)
	if err != nil {
		return model.MatchRecord{}, fmt.Errorf("encode match: %w", err)
	}
	ts := rec.CreatedAt.Format(model.TimeLayout)
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO matches (user_email, match_id, match_json, created_at, updated_at) VALUES (?,?,?,?,?)",
		rec.UserEmail, rec.MatchID, string(doc), ts, ts)
	if err != nil {
		return model.MatchRecord{}, err
	}
	return rec, nil
}

func (r *MatchRepo) ListForUser(ctx context.Context, email string) ([]model.MatchRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT user_email, match_id, match_json, created_at, updated_at
		   FROM matches
		  WHERE user_email=?
		  ORDER BY created_at, match_id`,
		utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MatchRecord{}
	for rows.Next() {
		var (
			rec              model.MatchRecord
			doc              string
			created, updated string
		)
		if err := rows.Scan(&rec.UserEmail, &rec.MatchID, &doc, &created, &updated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(doc), &rec.Match); err != nil {
			return nil, fmt.Errorf("decode match %s: %w", rec.MatchID, err)
		}
		if rec.CreatedAt, err = time.Parse(model.TimeLayout, created); err != nil {
			return nil, err
		}
		if rec.UpdatedAt, err = time.Parse(model.TimeLayout, updated); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
