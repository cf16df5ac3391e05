package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
)

type mockComplaintRepo struct {
	complaints []*models.Complaint
	blocks     []*models.ComplaintBlock
	statuses   map[string]string
}

func newMockComplaintRepo() *mockComplaintRepo {
	return &mockComplaintRepo{statuses: make(map[string]string)}
}

func (m *mockComplaintRepo) Create(ctx context.Context, complaint *models.Complaint) error {
	m.complaints = append(m.complaints, complaint)
	return nil
}

func (m *mockComplaintRepo) List(ctx context.Context, category string) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, complaint := range m.complaints {
		if category == "" || complaint.Category == category {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

func (m *mockComplaintRepo) UpdateStatus(ctx context.Context, id, status string) error {
	m.statuses[id] = status
	return nil
}

func (m *mockComplaintRepo) CountBySubmitter(ctx context.Context, username string) (int, error) {
	count := 0
	for _, complaint := range m.complaints {
		if complaint.SubmittedBy == username {
			count++
		}
	}
	return count, nil
}

func (m *mockComplaintRepo) IsBlocked(ctx context.Context, category, username string) (bool, error) {
	for _, block := range m.blocks {
		if block.Category == category && (block.Username == username || block.Username == "") {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockComplaintRepo) Block(ctx context.Context, block *models.ComplaintBlock) error {
	m.blocks = append(m.blocks, block)
	return nil
}

func (m *mockComplaintRepo) Unblock(ctx context.Context, category, username string) error {
	kept := m.blocks[:0]
	for _, block := range m.blocks {
		if block.Category != category || block.Username != username {
			kept = append(kept, block)
		}
	}
	m.blocks = kept
	return nil
}

func (m *mockComplaintRepo) ListBlocks(ctx context.Context) ([]models.ComplaintBlock, error) {
	out := make([]models.ComplaintBlock, 0, len(m.blocks))
	for _, block := range m.blocks {
		out = append(out, *block)
	}
	return out, nil
}

type mockAuditSink struct {
	logs []*models.AuditLog
}

func (m *mockAuditSink) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func newTestComplaintService(repo *mockComplaintRepo) (*ComplaintService, *mockAuditSink) {
	audit := &mockAuditSink{}
	return NewComplaintService(repo, audit, validator.New(), zap.NewNop()), audit
}

func TestComplaintServiceSubmit(t *testing.T) {
	repo := newMockComplaintRepo()
	svc, _ := newTestComplaintService(repo)

	complaint, err := svc.Submit(context.Background(), authz.RawUser{ID: "stu1", Role: "student"}, &models.Complaint{
		Category:     models.CategoryAcademics,
		Subject:      "Lab equipment",
		Description:  "Half the machines are down",
		DepartmentID: "Computer Science",
	})
	require.NoError(t, err)
	assert.Equal(t, "stu1", complaint.SubmittedBy)
	assert.Equal(t, "cse", complaint.DepartmentID)
	assert.Equal(t, models.ComplaintStatusOpen, complaint.Status)
}

func TestComplaintServiceSubmitBlockedUser(t *testing.T) {
	repo := newMockComplaintRepo()
	repo.blocks = append(repo.blocks, &models.ComplaintBlock{Category: models.CategoryHostel, Username: "stu1"})
	svc, _ := newTestComplaintService(repo)

	_, err := svc.Submit(context.Background(), authz.RawUser{ID: "stu1", Role: "student"}, &models.Complaint{
		Category:    models.CategoryHostel,
		Subject:     "Water",
		Description: "No hot water",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBlocked.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.complaints)
}

func TestComplaintServiceSubmitCategoryWideBlock(t *testing.T) {
	repo := newMockComplaintRepo()
	repo.blocks = append(repo.blocks, &models.ComplaintBlock{Category: models.CategorySports})
	svc, _ := newTestComplaintService(repo)

	_, err := svc.Submit(context.Background(), authz.RawUser{ID: "anyone", Role: "student"}, &models.Complaint{
		Category:    models.CategorySports,
		Subject:     "Ground",
		Description: "Flooded",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBlocked.Code, appErrors.FromError(err).Code)
}

func TestComplaintServiceScopedRows(t *testing.T) {
	repo := newMockComplaintRepo()
	repo.complaints = []*models.Complaint{
		{ID: "c1", Category: models.CategoryAcademics, SubmittedBy: "stu1", DepartmentID: "cse"},
		{ID: "c2", Category: models.CategoryAcademics, SubmittedBy: "stu2", DepartmentID: "ece"},
	}
	svc, _ := newTestComplaintService(repo)

	hod := authz.RawUser{ID: "hod1", Role: "hod", DepartmentIDs: []string{"cse"}}
	visible, err := svc.ScopedRows(context.Background(), hod, models.CategoryAcademics)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "c1", visible[0].ID)
}

func TestComplaintServiceResolve(t *testing.T) {
	repo := newMockComplaintRepo()
	repo.complaints = []*models.Complaint{
		{ID: "c1", Category: models.CategoryHostel, SubmittedBy: "stu1"},
	}
	svc, _ := newTestComplaintService(repo)

	err := svc.Resolve(context.Background(), authz.RawUser{ID: "root", Role: "admin"}, models.CategoryHostel, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, repo.statuses["c1"])
}

func TestComplaintServiceBlockAndUnblock(t *testing.T) {
	repo := newMockComplaintRepo()
	svc, audit := newTestComplaintService(repo)
	admin := authz.RawUser{ID: "root", Role: "admin"}

	require.NoError(t, svc.Block(context.Background(), admin, models.CategoryHostel, "stu1"))
	require.Len(t, repo.blocks, 1)
	assert.Equal(t, "root", repo.blocks[0].BlockedBy)
	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionComplaintBlock, audit.logs[0].Action)

	require.NoError(t, svc.Unblock(context.Background(), models.CategoryHostel, "stu1"))
	assert.Empty(t, repo.blocks)
}

func TestComplaintServiceListMine(t *testing.T) {
	repo := newMockComplaintRepo()
	repo.complaints = []*models.Complaint{
		{ID: "c1", Category: models.CategoryHostel, SubmittedBy: "stu1"},
		{ID: "c2", Category: models.CategorySports, SubmittedBy: "stu2"},
	}
	svc, _ := newTestComplaintService(repo)

	mine, err := svc.ListMine(context.Background(), authz.RawUser{ID: "stu1", Role: "student"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "c1", mine[0].ID)
}
