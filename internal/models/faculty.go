package models

import (
	"encoding/json"
	"time"
)

// TeachingAssignment links a faculty member to a subject section.
type TeachingAssignment struct {
	SubjectID string `json:"subjectId"`
	Year      int    `json:"year"`
	Section   int    `json:"section"`
}

// FacultyMember is a catalog entry for an instructor. Teaching assignments
// are stored as a JSON document alongside the row.
type FacultyMember struct {
	ID         string          `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	EmployeeID string          `db:"employee_id" json:"employeeId"`
	Branch     string          `db:"branch" json:"branch"`
	Teaching   json.RawMessage `db:"teaching" json:"teaching"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// Assignments decodes the teaching document; a broken document reads as no
// assignments rather than an error.
func (f FacultyMember) Assignments() []TeachingAssignment {
	if len(f.Teaching) == 0 {
		return nil
	}
	var assignments []TeachingAssignment
	if err := json.Unmarshal(f.Teaching, &assignments); err != nil {
		return nil
	}
	return assignments
}

// SubjectIDs lists the subject ids the faculty member teaches.
func (f FacultyMember) SubjectIDs() []string {
	var ids []string
	for _, assignment := range f.Assignments() {
		if assignment.SubjectID != "" {
			ids = append(ids, assignment.SubjectID)
		}
	}
	return ids
}
