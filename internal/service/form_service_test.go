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

type mockFormRepo struct {
	forms   map[string]*models.Form
	deleted []string
}

func newMockFormRepo() *mockFormRepo {
	return &mockFormRepo{forms: make(map[string]*models.Form)}
}

func (m *mockFormRepo) Create(ctx context.Context, form *models.Form) error {
	m.forms[form.ID] = form
	return nil
}

func (m *mockFormRepo) FindByID(ctx context.Context, id string) (*models.Form, error) {
	form, ok := m.forms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return form, nil
}

func (m *mockFormRepo) List(ctx context.Context, filter models.FormFilter) ([]models.Form, error) {
	var out []models.Form
	for _, form := range m.forms {
		if filter.Category != "" && form.Category != filter.Category {
			continue
		}
		if filter.CreatedBy != "" && form.CreatedBy != filter.CreatedBy {
			continue
		}
		out = append(out, *form)
	}
	return out, nil
}

func (m *mockFormRepo) Delete(ctx context.Context, id string) error {
	delete(m.forms, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type staticDirectory struct {
	refs []authz.SubjectRef
}

func (d staticDirectory) Directory(ctx context.Context) ([]authz.SubjectRef, error) {
	return d.refs, nil
}

func newTestFormService(repo *mockFormRepo, refs []authz.SubjectRef) *FormService {
	return NewFormService(repo, staticDirectory{refs: refs}, validator.New(), zap.NewNop())
}

func TestFormServiceCreateAdmin(t *testing.T) {
	repo := newMockFormRepo()
	svc := newTestFormService(repo, nil)

	form, err := svc.Create(context.Background(), authz.RawUser{ID: "root", Role: "admin"}, &models.Form{
		Category: models.CategoryHostel,
		Title:    "Mess quality",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, form.ID)
	assert.Equal(t, "root", form.CreatedBy)
	assert.Len(t, repo.forms, 1)
}

func TestFormServiceCreateHODThroughDirectory(t *testing.T) {
	repo := newMockFormRepo()
	directory := []authz.SubjectRef{{ID: "sub-1", DepartmentID: "cse"}}
	svc := newTestFormService(repo, directory)

	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	form, err := svc.Create(context.Background(), hod, &models.Form{
		Category:  models.CategoryAcademics,
		Title:     "Course feedback",
		ScopeType: "subject",
		ScopeIDs:  []string{"sub-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hod1", form.CreatedBy)
}

func TestFormServiceCreateHODRequiresDeclaredScope(t *testing.T) {
	repo := newMockFormRepo()
	directory := []authz.SubjectRef{{ID: "sub-1", DepartmentID: "cse"}}
	svc := newTestFormService(repo, directory)

	// Legacy-style targeting without a scopeType is not a creation path;
	// only admins may mint unscoped forms.
	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	_, err := svc.Create(context.Background(), hod, &models.Form{
		Category:        models.CategoryAcademics,
		Title:           "Course feedback",
		TargetSubjectID: "sub-1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.forms)
}

func TestFormServiceCreateFacultyOutsideSubjects(t *testing.T) {
	repo := newMockFormRepo()
	directory := []authz.SubjectRef{{ID: "sub-9", DepartmentID: "ece"}}
	svc := newTestFormService(repo, directory)

	faculty := authz.RawUser{ID: "prof", Role: "faculty", SubjectIDs: []string{"sub-1"}}
	_, err := svc.Create(context.Background(), faculty, &models.Form{
		Category:        models.CategoryAcademics,
		Title:           "Not mine",
		TargetSubjectID: "sub-9",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.forms)
}

func TestFormServiceCreateUnknownCategory(t *testing.T) {
	svc := newTestFormService(newMockFormRepo(), nil)
	_, err := svc.Create(context.Background(), authz.RawUser{ID: "root", Role: "admin"}, &models.Form{
		Category: "canteen",
		Title:    "x",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFormServiceListForCategoryFiltersByViewer(t *testing.T) {
	repo := newMockFormRepo()
	repo.forms["f1"] = &models.Form{
		ID:        "f1",
		Category:  models.CategoryAcademics,
		Title:     "Mine",
		CreatedBy: "hod1",
		ScopeType: authz.ScopeDepartment,
		ScopeIDs:  []string{"cse"},
	}
	repo.forms["f2"] = &models.Form{
		ID:        "f2",
		Category:  models.CategoryAcademics,
		Title:     "Other dept",
		CreatedBy: "hod2",
		ScopeType: authz.ScopeDepartment,
		ScopeIDs:  []string{"ece"},
	}
	svc := newTestFormService(repo, nil)

	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	visible, err := svc.ListForCategory(context.Background(), hod, authz.StudentContext{}, models.CategoryAcademics)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "f1", visible[0].ID)
}

func TestFormServiceListForCategoryLegacyStudent(t *testing.T) {
	repo := newMockFormRepo()
	open := true
	closed := false
	repo.forms["all"] = &models.Form{
		ID:        "all",
		Category:  models.CategoryAcademics,
		CreatedBy: "hod1",
		SendToAll: &open,
	}
	repo.forms["year3"] = &models.Form{
		ID:         "year3",
		Category:   models.CategoryAcademics,
		CreatedBy:  "hod1",
		SendToAll:  &closed,
		TargetYear: 3,
	}
	svc := newTestFormService(repo, nil)

	student := authz.RawUser{ID: "stu", Role: "student"}
	visible, err := svc.ListForCategory(context.Background(), student, authz.StudentContext{Year: 2}, models.CategoryAcademics)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "all", visible[0].ID)
}

func TestFormServiceGetForbidden(t *testing.T) {
	repo := newMockFormRepo()
	repo.forms["f1"] = &models.Form{
		ID:        "f1",
		Category:  models.CategorySports,
		CreatedBy: "hod2",
		ScopeType: authz.ScopeDepartment,
		ScopeIDs:  []string{"ece"},
	}
	svc := newTestFormService(repo, nil)

	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	_, err := svc.Get(context.Background(), hod, authz.StudentContext{}, "f1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestFormServiceDeleteOwnerOnly(t *testing.T) {
	repo := newMockFormRepo()
	repo.forms["f1"] = &models.Form{ID: "f1", Category: models.CategoryHostel, CreatedBy: "hod1"}
	svc := newTestFormService(repo, nil)

	err := svc.Delete(context.Background(), authz.RawUser{ID: "hod2", Role: "hod"}, "f1")
	require.Error(t, err)

	require.NoError(t, svc.Delete(context.Background(), authz.RawUser{ID: "hod1", Role: "hod"}, "f1"))
	assert.Equal(t, []string{"f1"}, repo.deleted)
}
