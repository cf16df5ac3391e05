package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/feedback-api/internal/models"
)

func TestFeedbackRepositoryCreateResponse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO feedback_responses")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	response := &models.FeedbackResponse{
		FormID:       "f1",
		SubmittedBy:  "stu1",
		Answers:      json.RawMessage(`{"q1":"good"}`),
		Year:         3,
		SubjectID:    "sub-1",
		DepartmentID: "cse",
	}
	require.NoError(t, repo.CreateResponse(context.Background(), response))
	require.NotEmpty(t, response.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepositoryListRowsByCategory(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	rows := sqlmock.NewRows([]string{
		"id", "category", "form_id", "form_title", "questions", "answers",
		"submitted_by", "department_id", "subject_id", "created_at",
	}).AddRow(
		"r1", "academics", "f1", "Course feedback", []byte(`[]`), []byte(`{"q1":"ok"}`),
		"stu1", "cse", "sub-1", time.Now(),
	)
	mock.ExpectQuery(regexp.QuoteMeta("JOIN forms f ON f.id = r.form_id")).
		WithArgs("academics").
		WillReturnRows(rows)

	result, err := repo.ListRowsByCategory(context.Background(), "academics")
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "Course feedback", result[0].FormTitle)
	require.Equal(t, "cse", result[0].DepartmentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepositoryHasSubmitted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM feedback_responses WHERE form_id")).
		WithArgs("f1", "stu1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	submitted, err := repo.HasSubmitted(context.Background(), "f1", "stu1")
	require.NoError(t, err)
	require.True(t, submitted)
	require.NoError(t, mock.ExpectationsWereMet())
}
