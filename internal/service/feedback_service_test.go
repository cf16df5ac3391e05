package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
)

type mockFeedbackRepo struct {
	responses []*models.FeedbackResponse
	rows      []models.ResponseRow
	submitted map[string]bool
}

func newMockFeedbackRepo() *mockFeedbackRepo {
	return &mockFeedbackRepo{submitted: make(map[string]bool)}
}

func (m *mockFeedbackRepo) CreateResponse(ctx context.Context, response *models.FeedbackResponse) error {
	m.responses = append(m.responses, response)
	m.submitted[response.FormID+"/"+response.SubmittedBy] = true
	return nil
}

func (m *mockFeedbackRepo) ListRows(ctx context.Context) ([]models.ResponseRow, error) {
	return m.rows, nil
}

func (m *mockFeedbackRepo) ListRowsByCategory(ctx context.Context, category string) ([]models.ResponseRow, error) {
	var out []models.ResponseRow
	for _, row := range m.rows {
		if row.Category == category {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockFeedbackRepo) CountBySubmitter(ctx context.Context, username string) (int, error) {
	count := 0
	for _, response := range m.responses {
		if response.SubmittedBy == username {
			count++
		}
	}
	return count, nil
}

func (m *mockFeedbackRepo) HasSubmitted(ctx context.Context, formID, username string) (bool, error) {
	return m.submitted[formID+"/"+username], nil
}

type mockFormReader struct {
	forms map[string]*models.Form
}

func (m *mockFormReader) FindByID(ctx context.Context, id string) (*models.Form, error) {
	form, ok := m.forms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return form, nil
}

func newTestFeedbackService(repo *mockFeedbackRepo, forms map[string]*models.Form) *FeedbackService {
	return NewFeedbackService(repo, &mockFormReader{forms: forms}, validator.New(), zap.NewNop())
}

func TestFeedbackServiceSubmitCapturesContext(t *testing.T) {
	open := true
	repo := newMockFeedbackRepo()
	svc := newTestFeedbackService(repo, map[string]*models.Form{
		"f1": {ID: "f1", Category: models.CategoryAcademics, CreatedBy: "hod1", SendToAll: &open},
	})

	student := authz.RawUser{ID: "stu1", Role: "student"}
	ctx := authz.StudentContext{Year: 3, SubjectID: "sub-1", CourseCode: "CS301", Dept: "Computer Science"}
	response, err := svc.Submit(context.Background(), student, ctx, &models.FeedbackResponse{
		FormID:  "f1",
		Answers: json.RawMessage(`{"q1":"good"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "stu1", response.SubmittedBy)
	assert.Equal(t, 3, response.Year)
	assert.Equal(t, "cse", response.DepartmentID)
	require.Len(t, repo.responses, 1)
}

func TestFeedbackServiceSubmitRechecksEligibility(t *testing.T) {
	closed := false
	repo := newMockFeedbackRepo()
	svc := newTestFeedbackService(repo, map[string]*models.Form{
		"f1": {ID: "f1", Category: models.CategoryAcademics, CreatedBy: "hod1", SendToAll: &closed, TargetYear: 4},
	})

	student := authz.RawUser{ID: "stu1", Role: "student"}
	_, err := svc.Submit(context.Background(), student, authz.StudentContext{Year: 2}, &models.FeedbackResponse{
		FormID:  "f1",
		Answers: json.RawMessage(`{"q1":"x"}`),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.responses)
}

func TestFeedbackServiceSubmitDuplicate(t *testing.T) {
	open := true
	repo := newMockFeedbackRepo()
	repo.submitted["f1/stu1"] = true
	svc := newTestFeedbackService(repo, map[string]*models.Form{
		"f1": {ID: "f1", Category: models.CategoryHostel, CreatedBy: "admin", SendToAll: &open},
	})

	_, err := svc.Submit(context.Background(), authz.RawUser{ID: "stu1", Role: "student"}, authz.StudentContext{}, &models.FeedbackResponse{
		FormID:  "f1",
		Answers: json.RawMessage(`{"q1":"x"}`),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadySubmitted.Code, appErrors.FromError(err).Code)
}

func TestFeedbackServiceScopedRows(t *testing.T) {
	repo := newMockFeedbackRepo()
	repo.rows = []models.ResponseRow{
		{ID: "r1", Category: models.CategoryAcademics, FormID: "f1", SubmittedBy: "stu1", DepartmentID: "cse"},
		{ID: "r2", Category: models.CategoryAcademics, FormID: "f2", SubmittedBy: "stu2", DepartmentID: "ece"},
	}
	svc := newTestFeedbackService(repo, nil)

	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	rows, err := svc.ScopedRows(context.Background(), hod, models.CategoryAcademics)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "r1", rows[0].ID)
	assert.Equal(t, "f1-stu1", rows[0].ReplyKey)

	admin := authz.RawUser{ID: "root", Role: "admin"}
	rows, err = svc.ScopedRows(context.Background(), admin, models.CategoryAcademics)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFeedbackServiceExportCSV(t *testing.T) {
	repo := newMockFeedbackRepo()
	repo.rows = []models.ResponseRow{
		{ID: "r1", Category: models.CategoryHostel, FormID: "f1", FormTitle: "Mess", SubmittedBy: "stu1", Answers: json.RawMessage(`{"q1":"ok"}`)},
	}
	svc := newTestFeedbackService(repo, nil)

	payload, err := svc.ExportCSV(context.Background(), authz.RawUser{ID: "root", Role: "admin"}, models.CategoryHostel)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "Mess")
	assert.Contains(t, string(payload), "stu1")
}

func TestFeedbackServiceCountForStudent(t *testing.T) {
	repo := newMockFeedbackRepo()
	repo.responses = []*models.FeedbackResponse{
		{FormID: "f1", SubmittedBy: "stu1"},
		{FormID: "f2", SubmittedBy: "stu1"},
		{FormID: "f1", SubmittedBy: "stu2"},
	}
	svc := newTestFeedbackService(repo, nil)

	count, err := svc.CountForStudent(context.Background(), authz.RawUser{ID: "stu1", Role: "student"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
