package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// User is an account that owns company records.
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	IsActive       bool
}

// UserRepo persists user accounts.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a user repository.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. Returns ErrDuplicate when the username is taken.
func (r *UserRepo) Create(ctx context.Context, username, hashedPassword string) (*User, error) {
	const query = `
		INSERT INTO users (username, hashed_password, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING id, username, hashed_password, is_active
	`
	var u User
	err := r.db.pool.QueryRow(ctx, query, username, hashedPassword).
		Scan(&u.ID, &u.Username, &u.HashedPassword, &u.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &u, nil
}

// GetByUsername loads a user by its unique username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, hashed_password, is_active
		FROM users
		WHERE username = $1
	`
	var u User
	err := r.db.pool.QueryRow(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.HashedPassword, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}
