package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/campusdesk/feedback-api/internal/authz"
)

// Feedback categories. Forms and complaints are always filed under one.
const (
	CategoryAcademics = "academics"
	CategorySports    = "sports"
	CategoryHostel    = "hostel"
)

// Categories lists every valid feedback category.
var Categories = []string{CategoryAcademics, CategorySports, CategoryHostel}

// IsValidCategory reports whether the given category is known.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Form represents a feedback form. Newer forms declare a visibility scope;
// academic forms created before the scope model carry the legacy targeting
// columns (send_to_all, target_year, target_subject_*) instead.
type Form struct {
	ID        string          `db:"id" json:"id"`
	Category  string          `db:"category" json:"category"`
	Title     string          `db:"title" json:"title"`
	Questions json.RawMessage `db:"questions" json:"questions"`
	CreatedBy string          `db:"created_by" json:"createdBy"`

	ScopeType string         `db:"scope_type" json:"scopeType,omitempty"`
	ScopeIDs  pq.StringArray `db:"scope_ids" json:"scopeIds,omitempty"`

	SendToAll           *bool          `db:"send_to_all" json:"sendToAll,omitempty"`
	TargetYear          int            `db:"target_year" json:"targetYear,omitempty"`
	TargetSubjectID     string         `db:"target_subject_id" json:"targetSubjectId,omitempty"`
	TargetSubjectCode   string         `db:"target_subject_code" json:"targetSubjectCode,omitempty"`
	TargetSubjectName   string         `db:"target_subject_name" json:"targetSubjectName,omitempty"`
	TargetDepartmentIDs pq.StringArray `db:"target_department_ids" json:"targetDepartmentIds,omitempty"`
	TargetBranch        string         `db:"target_branch" json:"targetBranch,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Resource flattens the form into the record shape policy checks run on.
func (f Form) Resource() authz.Resource {
	return authz.Resource{
		Category:            f.Category,
		ScopeType:           f.ScopeType,
		ScopeIDs:            f.ScopeIDs,
		CreatedBy:           f.CreatedBy,
		TargetDepartmentIDs: f.TargetDepartmentIDs,
		TargetBranch:        f.TargetBranch,
		TargetSubjectID:     f.TargetSubjectID,
		SendToAll:           f.SendToAll,
		TargetYear:          f.TargetYear,
		TargetSubjectCode:   f.TargetSubjectCode,
		TargetSubjectName:   f.TargetSubjectName,
	}
}

// FormCreateRequest is the form creation payload. List-valued fields accept
// either a single string or an array; older clients send scalars.
type FormCreateRequest struct {
	Category  string          `json:"category" validate:"required"`
	Title     string          `json:"title" validate:"required"`
	Questions json.RawMessage `json:"questions"`

	ScopeType string      `json:"scopeType"`
	ScopeIDs  FlexStrings `json:"scopeIds"`

	SendToAll           *bool       `json:"sendToAll"`
	TargetYear          int         `json:"targetYear"`
	TargetSubjectID     string      `json:"targetSubjectId"`
	TargetSubjectCode   string      `json:"targetSubjectCode"`
	TargetSubjectName   string      `json:"targetSubjectName"`
	TargetDepartmentIDs FlexStrings `json:"targetDepartmentIds"`
	TargetBranch        string      `json:"targetBranch"`
}

// Form materializes the request into a storable form.
func (r FormCreateRequest) Form() *Form {
	return &Form{
		Category:            r.Category,
		Title:               r.Title,
		Questions:           r.Questions,
		ScopeType:           r.ScopeType,
		ScopeIDs:            pq.StringArray(r.ScopeIDs),
		SendToAll:           r.SendToAll,
		TargetYear:          r.TargetYear,
		TargetSubjectID:     r.TargetSubjectID,
		TargetSubjectCode:   r.TargetSubjectCode,
		TargetSubjectName:   r.TargetSubjectName,
		TargetDepartmentIDs: pq.StringArray(r.TargetDepartmentIDs),
		TargetBranch:        r.TargetBranch,
	}
}

// FormFilter captures filters for listing forms.
type FormFilter struct {
	Category  string
	CreatedBy string
}
