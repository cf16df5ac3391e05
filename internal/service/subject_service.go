package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/internal/repository"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
)

const subjectDirectoryCacheKey = "directory:subjects"

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

// SubjectService manages the subject catalog and serves the directory
// snapshot that form creation checks ownership against.
type SubjectService struct {
	repo      subjectRepository
	cache     *repository.CacheRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewSubjectService constructs a SubjectService instance. cache and metrics
// may be nil.
func NewSubjectService(repo subjectRepository, cache *repository.CacheRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SubjectService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, cacheTTL: cacheTTL}
}

// List returns subjects matching the filter.
func (s *SubjectService) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Get returns a single subject by id.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch subject")
	}
	return subject, nil
}

// Create adds a subject to the catalog. Branch labels are resolved to the
// canonical department id so later ownership checks compare like with like.
func (s *SubjectService) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if err := s.validator.Struct(subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	if subject.Code != "" {
		exists, err := s.repo.ExistsByCode(ctx, subject.Code, subject.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject code")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "subject code already exists")
		}
	}

	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.DepartmentID == "" {
		subject.DepartmentID = authz.InferDepartmentID(subject.Branch)
	}

	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.invalidateDirectory(ctx)
	return subject, nil
}

// Update modifies an existing subject.
func (s *SubjectService) Update(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if err := s.validator.Struct(subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if _, err := s.Get(ctx, subject.ID); err != nil {
		return nil, err
	}
	if subject.DepartmentID == "" {
		subject.DepartmentID = authz.InferDepartmentID(subject.Branch)
	}
	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update subject")
	}
	s.invalidateDirectory(ctx)
	return subject, nil
}

// Delete removes a subject from the catalog.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	s.invalidateDirectory(ctx)
	return nil
}

// Directory returns the subject ownership snapshot used by form creation
// checks. The snapshot is cached since it changes far less often than forms
// are created.
func (s *SubjectService) Directory(ctx context.Context) ([]authz.SubjectRef, error) {
	var refs []authz.SubjectRef
	if s.cache != nil {
		if err := s.cache.Get(ctx, subjectDirectoryCacheKey, &refs); err == nil {
			s.metrics.RecordCacheOperation(true)
			return refs, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("subject directory cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false)
	}

	subjects, err := s.repo.List(ctx, models.SubjectFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject directory")
	}

	refs = make([]authz.SubjectRef, 0, len(subjects))
	for _, subject := range subjects {
		refs = append(refs, subject.Ref())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, subjectDirectoryCacheKey, refs, s.cacheTTL); err != nil {
			s.logger.Warn("subject directory cache write failed", zap.Error(err))
		}
	}
	return refs, nil
}

func (s *SubjectService) invalidateDirectory(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, subjectDirectoryCacheKey)
	}
}
