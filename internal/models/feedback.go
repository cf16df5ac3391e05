package models

import (
	"encoding/json"
	"time"

	"github.com/campusdesk/feedback-api/internal/authz"
)

// FeedbackResponse is a student's submission against a form, together with
// the academic context captured at submit time.
type FeedbackResponse struct {
	ID          string          `db:"id" json:"id"`
	FormID      string          `db:"form_id" json:"form_id"`
	SubmittedBy string          `db:"submitted_by" json:"submittedBy"`
	Answers     json.RawMessage `db:"answers" json:"answers"`

	Year         int    `db:"year" json:"year,omitempty"`
	SubjectID    string `db:"subject_id" json:"subjectId,omitempty"`
	CourseCode   string `db:"course_code" json:"courseCode,omitempty"`
	Course       string `db:"course" json:"course,omitempty"`
	DepartmentID string `db:"department_id" json:"departmentId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// ResponseRow is the projection visibility checks and listings operate on:
// one response joined with its parent form's metadata.
type ResponseRow struct {
	ID           string          `db:"id" json:"id"`
	Category     string          `db:"category" json:"category"`
	FormID       string          `db:"form_id" json:"formId"`
	FormTitle    string          `db:"form_title" json:"formTitle"`
	Questions    json.RawMessage `db:"questions" json:"questions"`
	Answers      json.RawMessage `db:"answers" json:"answers"`
	SubmittedBy  string          `db:"submitted_by" json:"submittedBy"`
	DepartmentID string          `db:"department_id" json:"departmentId"`
	SubjectID    string          `db:"subject_id" json:"subjectId"`
	Timestamp    time.Time       `db:"created_at" json:"timestamp"`
	ReplyKey     string          `db:"-" json:"replyKey"`
}

// Resource flattens the row for policy checks. The raw department label is
// carried as-is; the accessor resolves it, so rows predating canonical ids
// still scope correctly.
func (r ResponseRow) Resource() authz.Resource {
	return authz.Resource{
		Category:     r.Category,
		DepartmentID: r.DepartmentID,
		SubjectID:    r.SubjectID,
		SubmittedBy:  r.SubmittedBy,
	}
}
