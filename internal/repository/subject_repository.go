package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdesk/feedback-api/internal/models"
)

const subjectColumns = "id, name, code, branch, department_id, year, created_at, updated_at"

// SubjectRepository handles persistence for the subject catalog.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns subjects matching the filter.
func (r *SubjectRepository) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	base := "FROM subjects WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Branch != "" {
		conditions = append(conditions, fmt.Sprintf("branch = $%d", len(args)+1))
		args = append(args, filter.Branch)
	}
	if filter.Year > 0 {
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(code) LIKE $%d OR LOWER(name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY code ASC", subjectColumns, base)
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns the subject with the given id.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	var subject models.Subject
	query := fmt.Sprintf("SELECT %s FROM subjects WHERE id = $1 LIMIT 1", subjectColumns)
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ExistsByCode checks code uniqueness, optionally excluding one subject.
func (r *SubjectRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM subjects WHERE code = $1 AND id <> $2", code, excludeID); err != nil {
		return false, fmt.Errorf("check subject code: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	query := `INSERT INTO subjects (id, name, code, branch, department_id, year, created_at, updated_at)
		VALUES (:id, :name, :code, :branch, :department_id, :year, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("insert subject: %w", err)
	}
	return nil
}

// Update modifies an existing subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	subject.UpdatedAt = time.Now().UTC()
	query := `UPDATE subjects SET name = :name, code = :code, branch = :branch, department_id = :department_id, year = :year, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete removes a subject.
func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM subjects WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}
