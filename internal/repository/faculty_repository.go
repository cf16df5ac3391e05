package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdesk/feedback-api/internal/models"
)

const facultyColumns = "id, name, employee_id, branch, teaching, created_at, updated_at"

// FacultyRepository handles persistence for the faculty catalog.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository creates a new repository instance.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns every faculty member, optionally restricted to a branch.
func (r *FacultyRepository) List(ctx context.Context, branch string) ([]models.FacultyMember, error) {
	var faculty []models.FacultyMember
	if branch != "" {
		query := fmt.Sprintf("SELECT %s FROM faculty WHERE branch = $1 ORDER BY name ASC", facultyColumns)
		if err := r.db.SelectContext(ctx, &faculty, query, branch); err != nil {
			return nil, fmt.Errorf("list faculty: %w", err)
		}
		return faculty, nil
	}
	query := fmt.Sprintf("SELECT %s FROM faculty ORDER BY name ASC", facultyColumns)
	if err := r.db.SelectContext(ctx, &faculty, query); err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return faculty, nil
}

// FindByID returns the faculty member with the given id.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.FacultyMember, error) {
	var member models.FacultyMember
	query := fmt.Sprintf("SELECT %s FROM faculty WHERE id = $1 LIMIT 1", facultyColumns)
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a new faculty member.
func (r *FacultyRepository) Create(ctx context.Context, member *models.FacultyMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	query := `INSERT INTO faculty (id, name, employee_id, branch, teaching, created_at, updated_at)
		VALUES (:id, :name, :employee_id, :branch, :teaching, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("insert faculty: %w", err)
	}
	return nil
}

// Update modifies an existing faculty member.
func (r *FacultyRepository) Update(ctx context.Context, member *models.FacultyMember) error {
	member.UpdatedAt = time.Now().UTC()
	query := `UPDATE faculty SET name = :name, employee_id = :employee_id, branch = :branch, teaching = :teaching, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("update faculty: %w", err)
	}
	return nil
}

// Delete removes a faculty member.
func (r *FacultyRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM faculty WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}
	return nil
}
