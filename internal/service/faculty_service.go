package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
)

type facultyRepository interface {
	List(ctx context.Context, branch string) ([]models.FacultyMember, error)
	FindByID(ctx context.Context, id string) (*models.FacultyMember, error)
	Create(ctx context.Context, member *models.FacultyMember) error
	Update(ctx context.Context, member *models.FacultyMember) error
	Delete(ctx context.Context, id string) error
}

// FacultyService manages the faculty directory and its teaching
// assignments.
type FacultyService struct {
	repo      facultyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService instance.
func NewFacultyService(repo facultyRepository, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FacultyService{repo: repo, validator: validate, logger: logger}
}

// List returns faculty members, optionally restricted to one branch. The
// branch label is resolved so aliases return the same directory slice.
func (s *FacultyService) List(ctx context.Context, branch string) ([]models.FacultyMember, error) {
	if branch != "" {
		branch = authz.InferDepartmentID(branch)
	}
	members, err := s.repo.List(ctx, branch)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty")
	}
	return members, nil
}

// Get returns a single faculty member.
func (s *FacultyService) Get(ctx context.Context, id string) (*models.FacultyMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch faculty member")
	}
	return member, nil
}

// Create adds a faculty member to the directory.
func (s *FacultyService) Create(ctx context.Context, member *models.FacultyMember) (*models.FacultyMember, error) {
	if err := s.validator.Struct(member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if id := authz.InferDepartmentID(member.Branch); id != "" {
		member.Branch = id
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty member")
	}
	return member, nil
}

// Update modifies a faculty member.
func (s *FacultyService) Update(ctx context.Context, member *models.FacultyMember) (*models.FacultyMember, error) {
	if err := s.validator.Struct(member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}
	if _, err := s.Get(ctx, member.ID); err != nil {
		return nil, err
	}
	if id := authz.InferDepartmentID(member.Branch); id != "" {
		member.Branch = id
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update faculty member")
	}
	return member, nil
}

// Delete removes a faculty member from the directory.
func (s *FacultyService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete faculty member")
	}
	return nil
}
