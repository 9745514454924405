package repository

import (
	"context"
	"strings"
	"time"

	"github.com/aljoud/shifts-backend/pkg/database"
	"github.com/aljoud/shifts-backend/pkg/errors"
)

// ShiftTemplate is a named, reusable (start, end) pair used to prefill shift
// creation forms. End may be numerically before start: overnight templates
// such as 23:00-07:00 are stored exactly as entered and carry no wraparound
// semantics anywhere else.
type ShiftTemplate struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartTime string    `db:"start_time" json:"start_time"` // TIME format HH:MM:SS
	EndTime   string    `db:"end_time" json:"end_time"`     // TIME format HH:MM:SS
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TemplateRepository handles shift template persistence
type TemplateRepository struct {
	db *database.DB
}

// NewTemplateRepository creates a new shift template repository
func NewTemplateRepository(db *database.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a shift template
func (r *TemplateRepository) Create(ctx context.Context, tmpl *ShiftTemplate) error {
	tmpl.Name = strings.TrimSpace(tmpl.Name)

	query := `
		INSERT INTO shift_templates (name, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, tmpl.Name, tmpl.StartTime, tmpl.EndTime).
		Scan(&tmpl.ID, &tmpl.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// List lists all templates ordered by name
func (r *TemplateRepository) List(ctx context.Context) ([]*ShiftTemplate, error) {
	var templates []*ShiftTemplate

	query := `
		SELECT id, name,
		       start_time::text AS start_time, end_time::text AS end_time,
		       created_at
		FROM shift_templates
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, err
	}

	return templates, nil
}

// Count returns the number of templates
func (r *TemplateRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM shift_templates`); err != nil {
		return 0, err
	}
	return count, nil
}

// Delete deletes a template
func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shift_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("shift_template")
	}

	return nil
}

// Clear deletes all templates
func (r *TemplateRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM shift_templates`)
	return err
}
