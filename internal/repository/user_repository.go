package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/court-metrics/internal/database"
	"github.com/iliyamo/court-metrics/internal/model"
	"github.com/iliyamo/court-metrics/internal/utils"
)

// UserRepo is the SQL UserStore.  It works against MySQL and SQLite.
type UserRepo struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db, Now: time.Now} }

// Create inserts a user.  A duplicate primary key becomes ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, hashedPassword string) (model.User, error) {
	u := model.User{
		Email:          utils.NormalizeEmail(email),
		HashedPassword: hashedPassword,
		CreatedAt:      stamp(r.Now),
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, hashed_password, created_at) VALUES (?,?,?)",
		u.Email, u.HashedPassword, u.CreatedAt.Format(model.TimeLayout))
	if err != nil {
		if database.IsDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var (
		u       model.User
		created string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT email, hashed_password, created_at FROM users WHERE email=? LIMIT 1",
		utils.NormalizeEmail(email)).Scan(&u.Email, &u.HashedPassword, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if u.CreatedAt, err = time.Parse(model.TimeLayout, created); err != nil {
		return model.User{}, err
	}
	return u, nil
}
