package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
)

type replyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	ListByTargetUser(ctx context.Context, username string) ([]models.Reply, error)
}

// ReplyService lets staff answer a student's feedback response or
// complaint, and lets students read what was sent to them.
type ReplyService struct {
	repo      replyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReplyService constructs a ReplyService instance.
func NewReplyService(repo replyRepository, validate *validator.Validate, logger *zap.Logger) *ReplyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReplyService{repo: repo, validator: validate, logger: logger}
}

// Send records a staff reply addressed to a student.
func (s *ReplyService) Send(ctx context.Context, actor authz.RawUser, reply *models.Reply) (*models.Reply, error) {
	if reply.TargetUser == "" || reply.RefKey == "" || reply.Message == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "target user, ref key and message are required")
	}
	if reply.Kind != models.ReplyKindResponse && reply.Kind != models.ReplyKindComplaint {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown reply kind")
	}

	normalized := authz.NormalizeActor(actor)
	if !authz.IsRoleAtLeast(string(normalized.Role), string(authz.RoleFaculty)) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff may send replies")
	}

	reply.ID = uuid.NewString()
	reply.CreatedBy = normalized.ID
	if err := s.repo.Create(ctx, reply); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store reply")
	}

	s.logger.Info("reply sent",
		zap.String("target_user", reply.TargetUser),
		zap.String("kind", reply.Kind),
		zap.String("created_by", reply.CreatedBy))
	return reply, nil
}

// ListForStudent returns the replies addressed to the acting student.
func (s *ReplyService) ListForStudent(ctx context.Context, actor authz.RawUser) ([]models.Reply, error) {
	normalized := authz.NormalizeActor(actor)
	if normalized.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	replies, err := s.repo.ListByTargetUser(ctx, normalized.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list replies")
	}
	return replies, nil
}
