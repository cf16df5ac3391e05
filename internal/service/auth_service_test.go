package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusdesk/feedback-api/internal/models"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
)

type mockAuthRepo struct {
	usersByName      map[string]*models.User
	usersByID        map[string]*models.User
	refreshTokens    map[string]*models.RefreshToken
	createdUsers     []*models.User
	auditLogs        []*models.AuditLog
	lastLoginUpdated bool
	revokedAll       bool
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{
		usersByName:   make(map[string]*models.User),
		usersByID:     make(map[string]*models.User),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

func (m *mockAuthRepo) addUser(user *models.User) {
	m.usersByName[user.Username] = user
	m.usersByID[user.ID] = user
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := m.usersByName[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	m.createdUsers = append(m.createdUsers, user)
	m.addUser(user)
	return nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := m.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return stored, nil
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for _, token := range m.refreshTokens {
		if token.ID == id {
			token.Revoked = true
			token.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (m *mockAuthRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	m.revokedAll = true
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func newTestAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "campus-feedback-api",
	})
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := newMockAuthRepo()
	repo.addUser(&models.User{
		ID:            "u1",
		Username:      "hod_cse",
		PasswordHash:  string(password),
		Role:          "hod",
		DepartmentIDs: []string{"cse"},
		Active:        true,
	})
	svc := newTestAuthService(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "hod_cse", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.True(t, repo.lastLoginUpdated)
	assert.Equal(t, []string{"cse"}, res.User.DepartmentIDs)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := newMockAuthRepo()
	repo.addUser(&models.User{ID: "u1", Username: "stu1", PasswordHash: string(password), Active: true})
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "stu1", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactive(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := newMockAuthRepo()
	repo.addUser(&models.User{ID: "u1", Username: "stu1", PasswordHash: string(password), Active: false})
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "stu1", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceTokenCarriesScopes(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuthService(repo)
	user := &models.User{
		ID:            "u2",
		Username:      "prof",
		Role:          "faculty",
		DepartmentIDs: []string{"ece"},
		SubjectIDs:    []string{"sub-1", "sub-2"},
	}

	token, err := svc.generateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.UserID)
	assert.Equal(t, "faculty", claims.Role)
	assert.Equal(t, []string{"ece"}, []string(claims.DepartmentIDs))
	assert.Equal(t, []string{"sub-1", "sub-2"}, []string(claims.SubjectIDs))
}

func TestAuthServiceRefreshRotates(t *testing.T) {
	repo := newMockAuthRepo()
	repo.addUser(&models.User{ID: "u1", Username: "stu1", Active: true, Role: "student"})
	repo.refreshTokens["old-token"] = &models.RefreshToken{
		ID:        "rt1",
		UserID:    "u1",
		Token:     "old-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	svc := newTestAuthService(repo)

	res, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: "old-token"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEqual(t, "old-token", res.RefreshToken)
	assert.True(t, repo.refreshTokens["old-token"].Revoked)
}

func TestAuthServiceRefreshExpired(t *testing.T) {
	repo := newMockAuthRepo()
	repo.addUser(&models.User{ID: "u1", Username: "stu1", Active: true})
	repo.refreshTokens["stale"] = &models.RefreshToken{
		ID:        "rt1",
		UserID:    "u1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := newTestAuthService(repo)

	_, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: "stale"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterResolvesDepartment(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Username:   "newstudent",
		Password:   "secret1",
		FullName:   "New Student",
		Department: "Computer Science",
		Year:       2,
	})
	require.NoError(t, err)
	assert.Equal(t, "student", user.Role)
	assert.Equal(t, []string{"cse"}, []string(user.DepartmentIDs))
	assert.True(t, user.Active)
}

func TestAuthServiceRegisterDuplicateUsername(t *testing.T) {
	repo := newMockAuthRepo()
	repo.addUser(&models.User{ID: "u1", Username: "taken"})
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "taken",
		Password: "secret1",
		FullName: "Someone",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogout(t *testing.T) {
	repo := newMockAuthRepo()
	svc := newTestAuthService(repo)

	require.NoError(t, svc.Logout(context.Background(), "u1"))
	assert.True(t, repo.revokedAll)
}
