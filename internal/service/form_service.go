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

type formRepository interface {
	Create(ctx context.Context, form *models.Form) error
	FindByID(ctx context.Context, id string) (*models.Form, error)
	List(ctx context.Context, filter models.FormFilter) ([]models.Form, error)
	Delete(ctx context.Context, id string) error
}

type subjectDirectory interface {
	Directory(ctx context.Context) ([]authz.SubjectRef, error)
}

// FormService manages feedback forms and applies the visibility and
// creation policy around them.
type FormService struct {
	repo      formRepository
	directory subjectDirectory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFormService constructs a FormService instance.
func NewFormService(repo formRepository, directory subjectDirectory, validate *validator.Validate, logger *zap.Logger) *FormService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FormService{repo: repo, directory: directory, validator: validate, logger: logger}
}

// Create persists a form after checking the actor may create it. HOD and
// faculty targeting is verified against the subject directory snapshot.
func (s *FormService) Create(ctx context.Context, actor authz.RawUser, form *models.Form) (*models.Form, error) {
	if !models.IsValidCategory(form.Category) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category")
	}
	if form.Title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}

	subjects, err := s.directory.Directory(ctx)
	if err != nil {
		return nil, err
	}
	if !authz.CanCreateForm(actor, form.Resource(), subjects) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to create this form")
	}

	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	normalized := authz.NormalizeActor(actor)
	form.CreatedBy = normalized.ID

	if err := s.repo.Create(ctx, form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create form")
	}

	s.logger.Info("form created",
		zap.String("form_id", form.ID),
		zap.String("category", form.Category),
		zap.String("created_by", form.CreatedBy))
	return form, nil
}

// Get returns a form if the actor may view it.
func (s *FormService) Get(ctx context.Context, actor authz.RawUser, student authz.StudentContext, id string) (*models.Form, error) {
	form, err := s.findForm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewForm(actor, form.Resource(), student) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to view this form")
	}
	return form, nil
}

// ListForCategory returns the forms in a category the actor may view.
// Students get legacy academic eligibility applied through the same gate.
func (s *FormService) ListForCategory(ctx context.Context, actor authz.RawUser, student authz.StudentContext, category string) ([]models.Form, error) {
	if !models.IsValidCategory(category) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category")
	}
	forms, err := s.repo.List(ctx, models.FormFilter{Category: category})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list forms")
	}

	visible := make([]models.Form, 0, len(forms))
	for _, form := range forms {
		if authz.CanViewForm(actor, form.Resource(), student) {
			visible = append(visible, form)
		}
	}
	return visible, nil
}

// ListMine returns forms created by the actor.
func (s *FormService) ListMine(ctx context.Context, actor authz.RawUser) ([]models.Form, error) {
	normalized := authz.NormalizeActor(actor)
	if normalized.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	forms, err := s.repo.List(ctx, models.FormFilter{CreatedBy: normalized.ID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list forms")
	}
	return forms, nil
}

// Delete removes a form. Only the creator or an admin may delete.
func (s *FormService) Delete(ctx context.Context, actor authz.RawUser, id string) error {
	form, err := s.findForm(ctx, id)
	if err != nil {
		return err
	}
	normalized := authz.NormalizeActor(actor)
	if normalized.Role != authz.RoleAdmin && form.CreatedBy != normalized.ID {
		return appErrors.Clone(appErrors.ErrForbidden, "not allowed to delete this form")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete form")
	}
	s.logger.Info("form deleted", zap.String("form_id", id), zap.String("deleted_by", normalized.ID))
	return nil
}

func (s *FormService) findForm(ctx context.Context, id string) (*models.Form, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "form not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch form")
	}
	return form, nil
}
