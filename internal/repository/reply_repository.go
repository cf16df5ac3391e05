package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdesk/feedback-api/internal/models"
)

// ReplyRepository handles persistence for staff replies to students.
type ReplyRepository struct {
	db *sqlx.DB
}

// NewReplyRepository creates a new repository instance.
func NewReplyRepository(db *sqlx.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

// Create inserts a new reply.
func (r *ReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO replies (id, target_user, kind, ref_key, message, created_by, created_at)
		VALUES (:id, :target_user, :kind, :ref_key, :message, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reply); err != nil {
		return fmt.Errorf("insert reply: %w", err)
	}
	return nil
}

// ListByTargetUser returns replies addressed to the user, newest first.
func (r *ReplyRepository) ListByTargetUser(ctx context.Context, username string) ([]models.Reply, error) {
	var replies []models.Reply
	query := "SELECT id, target_user, kind, ref_key, message, created_by, created_at FROM replies WHERE target_user = $1 ORDER BY created_at DESC"
	if err := r.db.SelectContext(ctx, &replies, query, username); err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return replies, nil
}
