package models

import (
	"time"

	"github.com/campusdesk/feedback-api/internal/authz"
)

// Complaint statuses.
const (
	ComplaintStatusOpen     = "OPEN"
	ComplaintStatusResolved = "RESOLVED"
)

// Complaint is a student grievance filed under a category. Unlike forms, a
// complaint targets at most a single department and subject.
type Complaint struct {
	ID           string    `db:"id" json:"complaintId"`
	Category     string    `db:"category" json:"category"`
	SubmittedBy  string    `db:"submitted_by" json:"submittedBy"`
	StudentID    string    `db:"student_id" json:"studentId,omitempty"`
	DepartmentID string    `db:"department_id" json:"departmentId,omitempty"`
	SubjectID    string    `db:"subject_id" json:"subjectId,omitempty"`
	Subject      string    `db:"subject" json:"subject"`
	Description  string    `db:"description" json:"description"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"date"`
}

// Resource flattens the complaint for policy checks.
func (c Complaint) Resource() authz.Resource {
	return authz.Resource{
		Category:     c.Category,
		DepartmentID: c.DepartmentID,
		SubjectID:    c.SubjectID,
		SubmittedBy:  c.SubmittedBy,
	}
}

// ReplyKey is the stable key replies to this complaint are filed under.
func (c Complaint) ReplyKey() string {
	return "complaint-" + c.Category + "-" + c.ID
}

// ComplaintBlock marks a student as blocked from filing complaints. A row
// with an empty username blocks the whole category.
type ComplaintBlock struct {
	ID        string    `db:"id" json:"id"`
	Category  string    `db:"category" json:"category"`
	Username  string    `db:"username" json:"username,omitempty"`
	BlockedBy string    `db:"blocked_by" json:"blockedBy"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
