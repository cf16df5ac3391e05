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

const formColumns = "id, category, title, questions, created_by, scope_type, scope_ids, send_to_all, target_year, target_subject_id, target_subject_code, target_subject_name, target_department_ids, target_branch, created_at, updated_at"

// FormRepository handles persistence for feedback forms.
type FormRepository struct {
	db *sqlx.DB
}

// NewFormRepository creates a new repository instance.
func NewFormRepository(db *sqlx.DB) *FormRepository {
	return &FormRepository{db: db}
}

// Create inserts a new form.
func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now

	query := `INSERT INTO forms (id, category, title, questions, created_by, scope_type, scope_ids, send_to_all, target_year, target_subject_id, target_subject_code, target_subject_name, target_department_ids, target_branch, created_at, updated_at)
		VALUES (:id, :category, :title, :questions, :created_by, :scope_type, :scope_ids, :send_to_all, :target_year, :target_subject_id, :target_subject_code, :target_subject_name, :target_department_ids, :target_branch, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, form); err != nil {
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}

// FindByID returns the form with the given id.
func (r *FormRepository) FindByID(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	query := fmt.Sprintf("SELECT %s FROM forms WHERE id = $1 LIMIT 1", formColumns)
	if err := r.db.GetContext(ctx, &form, query, id); err != nil {
		return nil, err
	}
	return &form, nil
}

// List returns forms matching the filter, newest first.
func (r *FormRepository) List(ctx context.Context, filter models.FormFilter) ([]models.Form, error) {
	base := "FROM forms WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.CreatedBy != "" {
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", len(args)+1))
		args = append(args, filter.CreatedBy)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC", formColumns, base)
	var forms []models.Form
	if err := r.db.SelectContext(ctx, &forms, query, args...); err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	return forms, nil
}

// Delete removes a form.
func (r *FormRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM forms WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	return nil
}
