package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/campusdesk/feedback-api/internal/authz"
)

// User represents an application user stored in the users table. Role and
// department labels are stored as entered; the authz layer normalizes them
// at decision time.
type User struct {
	ID            string         `db:"id" json:"id"`
	Username      string         `db:"username" json:"username"`
	PasswordHash  string         `db:"password_hash" json:"-"`
	FullName      string         `db:"full_name" json:"full_name"`
	Role          string         `db:"role" json:"role"`
	DepartmentIDs pq.StringArray `db:"department_ids" json:"department_ids"`
	SubjectIDs    pq.StringArray `db:"subject_ids" json:"subject_ids"`
	Year          int            `db:"year" json:"year,omitempty"`
	StudentID     *string        `db:"student_id" json:"student_id,omitempty"`
	FacultyID     *string        `db:"faculty_id" json:"faculty_id,omitempty"`
	Active        bool           `db:"active" json:"active"`
	LastLogin     *time.Time     `db:"last_login" json:"last_login,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// RawActor exposes the user in the shape the policy layer normalizes from.
func (u User) RawActor() authz.RawUser {
	return authz.RawUser{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		DepartmentIDs: u.DepartmentIDs,
		SubjectIDs:    u.SubjectIDs,
	}
}

// StudentContext derives the academic context used by student-facing
// visibility checks from the user's own profile.
func (u User) StudentContext() authz.StudentContext {
	ctx := authz.StudentContext{Year: u.Year}
	if len(u.DepartmentIDs) > 0 {
		ctx.DepartmentID = u.DepartmentIDs[0]
	}
	if len(u.SubjectIDs) > 0 {
		ctx.SubjectID = u.SubjectIDs[0]
	}
	return ctx
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role      string
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
