package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aljoud/shifts-backend/pkg/database"
	"github.com/aljoud/shifts-backend/pkg/errors"
)

// Branch represents a physical restaurant location
type Branch struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// BranchRepository handles branch persistence
type BranchRepository struct {
	db *database.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *database.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// Create inserts a branch. The name is trimmed before insert; a duplicate
// trimmed name is rejected by the unique constraint and reported as a conflict.
func (r *BranchRepository) Create(ctx context.Context, name string) (*Branch, error) {
	branch := &Branch{Name: strings.TrimSpace(name)}

	query := `
		INSERT INTO branches (name)
		VALUES ($1)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, branch.Name).
		Scan(&branch.ID, &branch.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return nil, appErr
		}
		return nil, err
	}

	return branch, nil
}

// GetByID gets a branch by ID
func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*Branch, error) {
	var branch Branch

	query := `SELECT id, name, created_at FROM branches WHERE id = $1`
	err := r.db.GetContext(ctx, &branch, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("branch")
	}
	if err != nil {
		return nil, err
	}

	return &branch, nil
}

// List lists all branches ordered by name
func (r *BranchRepository) List(ctx context.Context) ([]*Branch, error) {
	var branches []*Branch

	query := `SELECT id, name, created_at FROM branches ORDER BY name`
	if err := r.db.SelectContext(ctx, &branches, query); err != nil {
		return nil, err
	}

	return branches, nil
}

// Count returns the number of branches
func (r *BranchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM branches`); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a branch. Employees and shifts referencing it are removed by
// the cascading foreign keys.
func (r *BranchRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("branch")
	}

	return nil
}

// Clear deletes all branches
func (r *BranchRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM branches`)
	return err
}
