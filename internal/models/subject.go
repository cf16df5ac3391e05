package models

import (
	"time"

	"github.com/campusdesk/feedback-api/internal/authz"
)

// Subject represents a catalog subject. Branch holds the historical
// free-form label, DepartmentID the canonical id; older rows may only have
// the branch.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Code         string    `db:"code" json:"code"`
	Branch       string    `db:"branch" json:"branch"`
	DepartmentID string    `db:"department_id" json:"departmentId"`
	Year         int       `db:"year" json:"year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Ref projects the subject into the directory slice the policy layer uses.
func (s Subject) Ref() authz.SubjectRef {
	return authz.SubjectRef{ID: s.ID, DepartmentID: s.DepartmentID, Branch: s.Branch}
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	Branch string
	Year   int
	Search string
}
