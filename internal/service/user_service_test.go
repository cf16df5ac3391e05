package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
)

type mockUserRepo struct {
	users     map[string]*models.User
	auditLogs []*models.AuditLog
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	var out []models.User
	for _, user := range m.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		out = append(out, *user)
	}
	return out, len(out), nil
}

func (m *mockUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func newTestUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, validator.New(), zap.NewNop())
}

func TestUserServiceAdminCreatesHOD(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Create(context.Background(), authz.RawUser{ID: "root", Role: "admin"}, CreateUserRequest{
		Username:      "hod_cse",
		Password:      "secret1",
		FullName:      "CSE Head",
		Role:          "head_of_department",
		DepartmentIDs: []string{"Computer Science"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hod", user.Role)
	assert.Equal(t, []string{"cse"}, []string(user.DepartmentIDs))
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionUserCreate, repo.auditLogs[0].Action)
}

func TestUserServiceAdminCannotCreateFaculty(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	_, err := svc.Create(context.Background(), authz.RawUser{ID: "root", Role: "admin"}, CreateUserRequest{
		Username: "prof",
		Password: "secret1",
		FullName: "Professor",
		Role:     "faculty",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestUserServiceHODCreatesFacultyInOwnDepartment(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo)

	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	user, err := svc.Create(context.Background(), hod, CreateUserRequest{
		Username:     "prof",
		Password:     "secret1",
		FullName:     "Professor",
		Role:         "faculty",
		DepartmentID: "cse",
	})
	require.NoError(t, err)
	assert.Equal(t, "faculty", user.Role)
}

func TestUserServiceHODCannotCreateOutsideDepartments(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())

	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	_, err := svc.Create(context.Background(), hod, CreateUserRequest{
		Username:      "prof",
		Password:      "secret1",
		FullName:      "Professor",
		Role:          "faculty",
		DepartmentIDs: []string{"cse", "ece"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestUserServiceListScopedForHOD(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["u1"] = &models.User{ID: "u1", Username: "prof1", Role: "faculty", DepartmentIDs: []string{"cse"}}
	repo.users["u2"] = &models.User{ID: "u2", Username: "prof2", Role: "faculty", DepartmentIDs: []string{"ece"}}
	svc := newTestUserService(repo)

	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	users, total, err := svc.List(context.Background(), hod, models.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "prof1", users[0].Username)
}

func TestUserServiceListForbiddenForStudent(t *testing.T) {
	svc := newTestUserService(newMockUserRepo())
	_, _, err := svc.List(context.Background(), authz.RawUser{ID: "stu", Role: "student"}, models.UserFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
