package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdesk/feedback-api/internal/models"
)

// FeedbackRepository handles persistence for form responses.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new repository instance.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// CreateResponse records a submitted response.
func (r *FeedbackRepository) CreateResponse(ctx context.Context, response *models.FeedbackResponse) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO feedback_responses (id, form_id, submitted_by, answers, year, subject_id, course_code, course, department_id, created_at)
		VALUES (:id, :form_id, :submitted_by, :answers, :year, :subject_id, :course_code, :course, :department_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, response); err != nil {
		return fmt.Errorf("insert feedback response: %w", err)
	}
	return nil
}

const responseRowSelect = `SELECT r.id, f.category, r.form_id, f.title AS form_title, f.questions, r.answers, r.submitted_by, r.department_id, r.subject_id, r.created_at
	FROM feedback_responses r
	JOIN forms f ON f.id = r.form_id`

// ListRows returns every response joined with its form metadata, newest
// first. Visibility filtering happens in the service layer.
func (r *FeedbackRepository) ListRows(ctx context.Context) ([]models.ResponseRow, error) {
	var rows []models.ResponseRow
	query := responseRowSelect + " ORDER BY r.created_at DESC"
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list response rows: %w", err)
	}
	return rows, nil
}

// ListRowsByCategory returns response rows for one category, newest first.
func (r *FeedbackRepository) ListRowsByCategory(ctx context.Context, category string) ([]models.ResponseRow, error) {
	var rows []models.ResponseRow
	query := responseRowSelect + " WHERE f.category = $1 ORDER BY r.created_at DESC"
	if err := r.db.SelectContext(ctx, &rows, query, category); err != nil {
		return nil, fmt.Errorf("list response rows by category: %w", err)
	}
	return rows, nil
}

// CountBySubmitter returns how many responses the user has submitted.
func (r *FeedbackRepository) CountBySubmitter(ctx context.Context, username string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM feedback_responses WHERE submitted_by = $1", username); err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return count, nil
}

// HasSubmitted reports whether the user already answered the form.
func (r *FeedbackRepository) HasSubmitted(ctx context.Context, formID, username string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM feedback_responses WHERE form_id = $1 AND submitted_by = $2", formID, username); err != nil {
		return false, fmt.Errorf("check submission: %w", err)
	}
	return count > 0, nil
}
