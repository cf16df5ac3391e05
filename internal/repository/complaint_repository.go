package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdesk/feedback-api/internal/models"
)

const complaintColumns = "id, category, submitted_by, student_id, department_id, subject_id, subject, description, status, created_at"

// ComplaintRepository handles persistence for complaints and the complaint
// block list.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository creates a new repository instance.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Create inserts a new complaint.
func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	if complaint.Status == "" {
		complaint.Status = models.ComplaintStatusOpen
	}
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO complaints (id, category, submitted_by, student_id, department_id, subject_id, subject, description, status, created_at)
		VALUES (:id, :category, :submitted_by, :student_id, :department_id, :subject_id, :subject, :description, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, complaint); err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}

// List returns complaints, optionally restricted to one category, newest first.
func (r *ComplaintRepository) List(ctx context.Context, category string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if category != "" {
		query := fmt.Sprintf("SELECT %s FROM complaints WHERE category = $1 ORDER BY created_at DESC", complaintColumns)
		if err := r.db.SelectContext(ctx, &complaints, query, category); err != nil {
			return nil, fmt.Errorf("list complaints: %w", err)
		}
		return complaints, nil
	}
	query := fmt.Sprintf("SELECT %s FROM complaints ORDER BY created_at DESC", complaintColumns)
	if err := r.db.SelectContext(ctx, &complaints, query); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return complaints, nil
}

// UpdateStatus transitions a complaint's status.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE complaints SET status = $1 WHERE id = $2", status, id); err != nil {
		return fmt.Errorf("update complaint status: %w", err)
	}
	return nil
}

// CountBySubmitter returns how many complaints the user has filed.
func (r *ComplaintRepository) CountBySubmitter(ctx context.Context, username string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM complaints WHERE submitted_by = $1", username); err != nil {
		return 0, fmt.Errorf("count complaints: %w", err)
	}
	return count, nil
}

// IsBlocked reports whether the user is blocked from filing in the category,
// either individually or through a whole-category block (empty username row).
func (r *ComplaintRepository) IsBlocked(ctx context.Context, category, username string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM complaint_blocks WHERE category = $1 AND (username = $2 OR username = '')"
	if err := r.db.GetContext(ctx, &count, query, category, username); err != nil {
		return false, fmt.Errorf("check complaint block: %w", err)
	}
	return count > 0, nil
}

// Block inserts a block list entry.
func (r *ComplaintRepository) Block(ctx context.Context, block *models.ComplaintBlock) error {
	if block.ID == "" {
		block.ID = uuid.NewString()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO complaint_blocks (id, category, username, blocked_by, created_at)
		VALUES (:id, :category, :username, :blocked_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, block); err != nil {
		return fmt.Errorf("insert complaint block: %w", err)
	}
	return nil
}

// Unblock removes a user's block entries for the category.
func (r *ComplaintRepository) Unblock(ctx context.Context, category, username string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM complaint_blocks WHERE category = $1 AND username = $2", category, username); err != nil {
		return fmt.Errorf("delete complaint block: %w", err)
	}
	return nil
}

// ListBlocks returns the full block list.
func (r *ComplaintRepository) ListBlocks(ctx context.Context) ([]models.ComplaintBlock, error) {
	var blocks []models.ComplaintBlock
	query := "SELECT id, category, username, blocked_by, created_at FROM complaint_blocks ORDER BY created_at DESC"
	if err := r.db.SelectContext(ctx, &blocks, query); err != nil {
		return nil, fmt.Errorf("list complaint blocks: %w", err)
	}
	return blocks, nil
}
