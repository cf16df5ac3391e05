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

type complaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	List(ctx context.Context, category string) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, id, status string) error
	CountBySubmitter(ctx context.Context, username string) (int, error)
	IsBlocked(ctx context.Context, category, username string) (bool, error)
	Block(ctx context.Context, block *models.ComplaintBlock) error
	Unblock(ctx context.Context, category, username string) error
	ListBlocks(ctx context.Context) ([]models.ComplaintBlock, error)
}

type complaintAuditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// ComplaintService handles complaint filing, scoped staff listings,
// resolution and the per-category block list.
type ComplaintService struct {
	repo      complaintRepository
	audit     complaintAuditLogger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewComplaintService constructs a ComplaintService instance.
func NewComplaintService(repo complaintRepository, audit complaintAuditLogger, validate *validator.Validate, logger *zap.Logger) *ComplaintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ComplaintService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Submit files a complaint. A student blocked in the category, or a
// category-wide block, rejects the submission before anything is stored.
func (s *ComplaintService) Submit(ctx context.Context, actor authz.RawUser, complaint *models.Complaint) (*models.Complaint, error) {
	if !models.IsValidCategory(complaint.Category) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category")
	}
	if complaint.Subject == "" || complaint.Description == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject and description are required")
	}

	normalized := authz.NormalizeActor(actor)
	if normalized.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}

	blocked, err := s.repo.IsBlocked(ctx, complaint.Category, normalized.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check block list")
	}
	if blocked {
		return nil, appErrors.Clone(appErrors.ErrBlocked, "")
	}

	complaint.ID = uuid.NewString()
	complaint.SubmittedBy = normalized.ID
	if complaint.DepartmentID != "" {
		complaint.DepartmentID = authz.InferDepartmentID(complaint.DepartmentID)
	}
	complaint.Status = models.ComplaintStatusOpen

	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store complaint")
	}

	s.logger.Info("complaint filed",
		zap.String("complaint_id", complaint.ID),
		zap.String("category", complaint.Category),
		zap.String("submitted_by", complaint.SubmittedBy))
	return complaint, nil
}

// ScopedRows returns the complaints in a category the actor may review.
func (s *ComplaintService) ScopedRows(ctx context.Context, actor authz.RawUser, category string) ([]models.Complaint, error) {
	if category != "" && !models.IsValidCategory(category) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category")
	}
	complaints, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list complaints")
	}
	visible := make([]models.Complaint, 0, len(complaints))
	for _, complaint := range complaints {
		if authz.CanViewComplaint(actor, complaint.Resource()) {
			visible = append(visible, complaint)
		}
	}
	return visible, nil
}

// ListMine returns the actor's own complaints across categories.
func (s *ComplaintService) ListMine(ctx context.Context, actor authz.RawUser) ([]models.Complaint, error) {
	normalized := authz.NormalizeActor(actor)
	if normalized.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	complaints, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list complaints")
	}
	mine := make([]models.Complaint, 0)
	for _, complaint := range complaints {
		if complaint.SubmittedBy == normalized.ID {
			mine = append(mine, complaint)
		}
	}
	return mine, nil
}

// Resolve marks a complaint resolved. The actor must be able to review the
// complaint in the first place.
func (s *ComplaintService) Resolve(ctx context.Context, actor authz.RawUser, category, id string) error {
	complaint, err := s.findVisible(ctx, actor, category, id)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, complaint.ID, models.ComplaintStatusResolved); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update complaint")
	}
	return nil
}

// CountForStudent returns how many complaints the student has filed.
func (s *ComplaintService) CountForStudent(ctx context.Context, actor authz.RawUser) (int, error) {
	normalized := authz.NormalizeActor(actor)
	if normalized.ID == "" {
		return 0, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	count, err := s.repo.CountBySubmitter(ctx, normalized.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count complaints")
	}
	return count, nil
}

// Block stops a student from filing complaints in a category. An empty
// username blocks the whole category.
func (s *ComplaintService) Block(ctx context.Context, actor authz.RawUser, category, username string) error {
	if !models.IsValidCategory(category) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown category")
	}
	normalized := authz.NormalizeActor(actor)

	block := &models.ComplaintBlock{
		ID:        uuid.NewString(),
		Category:  category,
		Username:  username,
		BlockedBy: normalized.ID,
	}
	if err := s.repo.Block(ctx, block); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create block")
	}

	if s.audit != nil {
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &block.BlockedBy,
			Action:     models.AuditActionComplaintBlock,
			Resource:   "complaint_block",
			ResourceID: &block.ID,
			NewValues:  mustJSON(map[string]string{"category": category, "username": username}),
		}); err != nil {
			s.logger.Warn("failed to record block audit log", zap.Error(err))
		}
	}
	return nil
}

// Unblock lifts a block in a category.
func (s *ComplaintService) Unblock(ctx context.Context, category, username string) error {
	if !models.IsValidCategory(category) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown category")
	}
	if err := s.repo.Unblock(ctx, category, username); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove block")
	}
	return nil
}

// ListBlocks returns every active block row.
func (s *ComplaintService) ListBlocks(ctx context.Context) ([]models.ComplaintBlock, error) {
	blocks, err := s.repo.ListBlocks(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list blocks")
	}
	return blocks, nil
}

func (s *ComplaintService) findVisible(ctx context.Context, actor authz.RawUser, category, id string) (*models.Complaint, error) {
	complaints, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list complaints")
	}
	for i := range complaints {
		if complaints[i].ID == id {
			if !authz.CanViewComplaint(actor, complaints[i].Resource()) {
				return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to manage this complaint")
			}
			return &complaints[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
}
