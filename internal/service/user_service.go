package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
)

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// CreateUserRequest is the staff account provisioning payload.
type CreateUserRequest struct {
	Username      string   `json:"username" validate:"required,min=3"`
	Password      string   `json:"password" validate:"required,min=6"`
	FullName      string   `json:"full_name" validate:"required"`
	Role          string   `json:"role" validate:"required"`
	DepartmentIDs []string `json:"department_ids"`
	DepartmentID  string   `json:"department_id"`
	SubjectIDs    []string `json:"subject_ids"`
	FacultyID     string   `json:"faculty_id"`
}

// UserService provisions and lists accounts. Who may create whom follows
// the delegation chain: admins appoint HODs, HODs appoint faculty in their
// own departments.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Create provisions a staff account on behalf of the acting user.
func (s *UserService) Create(ctx context.Context, actor authz.RawUser, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	target := authz.NewUserTarget{
		Role:          req.Role,
		DepartmentIDs: req.DepartmentIDs,
		DepartmentID:  req.DepartmentID,
	}
	if !authz.CanCreateUser(actor, target) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to create this user")
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already taken")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	departments := req.DepartmentIDs
	if len(departments) == 0 && req.DepartmentID != "" {
		departments = []string{req.DepartmentID}
	}

	user := &models.User{
		ID:            uuid.NewString(),
		Username:      req.Username,
		PasswordHash:  string(passwordHash),
		FullName:      req.FullName,
		Role:          string(authz.NormalizeRole(req.Role)),
		DepartmentIDs: authz.InferDepartmentIDs(departments),
		SubjectIDs:    req.SubjectIDs,
		Active:        true,
	}
	if req.FacultyID != "" {
		facultyID := req.FacultyID
		user.FacultyID = &facultyID
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	normalized := authz.NormalizeActor(actor)
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &normalized.ID,
		Action:     models.AuditActionUserCreate,
		Resource:   "user",
		ResourceID: &user.ID,
		NewValues:  mustJSON(map[string]string{"username": user.Username, "role": user.Role}),
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		s.logger.Warn("failed to record user creation audit log", zap.Error(err))
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
		zap.String("created_by", normalized.ID))
	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	return user, nil
}

// List returns users matching the filter, scoped to the actor: admins see
// everyone, HODs only see staff within their own departments.
func (s *UserService) List(ctx context.Context, actor authz.RawUser, filter models.UserFilter) ([]models.User, int, error) {
	normalized := authz.NormalizeActor(actor)
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	if normalized.Role == authz.RoleAdmin {
		return users, total, nil
	}
	if normalized.Role != authz.RoleHOD {
		return nil, 0, appErrors.Clone(appErrors.ErrForbidden, "")
	}

	scoped := make([]models.User, 0, len(users))
	for _, user := range users {
		if sharesAnyDepartment(normalized.DepartmentIDs, user.DepartmentIDs) {
			scoped = append(scoped, user)
		}
	}
	return scoped, len(scoped), nil
}

func sharesAnyDepartment(actorDepartments, userDepartments []string) bool {
	for _, dept := range userDepartments {
		resolved := authz.InferDepartmentID(dept)
		for _, mine := range actorDepartments {
			if resolved == mine {
				return true
			}
		}
	}
	return false
}
