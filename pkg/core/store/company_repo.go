package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Company is a registered ticker belonging to one user.
type Company struct {
	ID      int64
	Name    string
	Ticker  string
	Segment string
	OwnerID int64
}

// CompanyRepo persists company records. Every query is scoped by owner so a
// user can never see or touch another user's rows.
type CompanyRepo struct {
	db *DB
}

// NewCompanyRepo creates a company repository.
func NewCompanyRepo(db *DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create inserts a company owned by ownerID.
func (r *CompanyRepo) Create(ctx context.Context, ownerID int64, name, ticker, segment string) (*Company, error) {
	const query = `
		INSERT INTO companies (name, ticker, segment, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, ticker, segment, owner_id
	`
	var c Company
	err := r.db.pool.QueryRow(ctx, query, name, ticker, segment, ownerID).
		Scan(&c.ID, &c.Name, &c.Ticker, &c.Segment, &c.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}
	return &c, nil
}

// ListByOwner returns all of a user's companies ordered by segment then name.
func (r *CompanyRepo) ListByOwner(ctx context.Context, ownerID int64) ([]Company, error) {
	const query = `
		SELECT id, name, ticker, segment, owner_id
		FROM companies
		WHERE owner_id = $1
		ORDER BY segment, name
	`
	rows, err := r.db.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Ticker, &c.Segment, &c.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return out, nil
}

// GetByID loads one company, only when it belongs to ownerID.
func (r *CompanyRepo) GetByID(ctx context.Context, ownerID, id int64) (*Company, error) {
	const query = `
		SELECT id, name, ticker, segment, owner_id
		FROM companies
		WHERE id = $1 AND owner_id = $2
	`
	var c Company
	err := r.db.pool.QueryRow(ctx, query, id, ownerID).
		Scan(&c.ID, &c.Name, &c.Ticker, &c.Segment, &c.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	return &c, nil
}

// Delete removes one company, only when it belongs to ownerID. Returns
// ErrNotFound when nothing was deleted.
func (r *CompanyRepo) Delete(ctx context.Context, ownerID, id int64) error {
	const query = `DELETE FROM companies WHERE id = $1 AND owner_id = $2`
	tag, err := r.db.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
