package authz

import "strings"

// Resource is the flattened record shape shared by forms, feedback responses
// and complaints. The duplicated target/department/subject fields reflect the
// aliases records accumulated across schema revisions; accessor functions
// below pick the first populated alias so policy code never touches them
// directly.
type Resource struct {
	Category string

	ScopeType          string
	ScopeIDs           []string
	VisibilityScope    string
	VisibilityScopeIDs []string

	CreatedBy       string
	CreatedByUserID string

	DepartmentIDs       []string
	DepartmentID        string
	TargetDepartmentIDs []string
	TargetDepartmentID  string
	TargetBranch        string
	Dept                string

	SubjectIDs       []string
	SubjectID        string
	TargetSubjectIDs []string
	TargetSubjectID  string

	// Legacy academic targeting, only meaningful when no scope is declared.
	SendToAll         *bool
	TargetYear        int
	TargetSubjectCode string
	TargetSubjectName string

	SubmittedBy       string
	SubmittedByUserID string
}

// Scope returns the resource's declared visibility scope, preferring the
// current scopeType field over the older visibilityScopeType alias.
func (r Resource) Scope() Scope {
	scopeType := r.ScopeType
	if scopeType == "" {
		scopeType = r.VisibilityScope
	}
	ids := r.ScopeIDs
	if len(ids) == 0 {
		ids = r.VisibilityScopeIDs
	}
	return Scope{Type: strings.ToLower(strings.TrimSpace(scopeType)), IDs: compactStrings(ids)}
}

// HasDeclaredScope reports whether either scope alias is populated; resources
// without one fall back to the legacy targeting model.
func (r Resource) HasDeclaredScope() bool {
	return r.ScopeType != "" || r.VisibilityScope != ""
}

// OwnedBy reports whether either creator alias matches the given user id.
// Both createdBy and createdByUserId are checked: older records may carry a
// display identifier in one field and the account id in the other.
func (r Resource) OwnedBy(userID string) bool {
	if userID == "" {
		return false
	}
	return r.CreatedBy == userID || r.CreatedByUserID == userID
}

// Submitter returns the submitting user identifier, preferring the newer
// submittedByUserId field.
func (r Resource) Submitter() string {
	if r.SubmittedByUserID != "" {
		return r.SubmittedByUserID
	}
	return r.SubmittedBy
}

// ResourceDepartments extracts the resource's department ids. The alias
// fields are tried in a fixed order (departmentIds, departmentId,
// targetDepartmentIds, targetDepartmentId, targetBranch, dept); the first
// populated one wins, and every value is resolved and deduplicated.
func ResourceDepartments(r Resource) []string {
	raw := firstPopulated(
		r.DepartmentIDs,
		asList(r.DepartmentID),
		r.TargetDepartmentIDs,
		asList(r.TargetDepartmentID),
		asList(r.TargetBranch),
		asList(r.Dept),
	)
	return InferDepartmentIDs(raw)
}

// ResourceSubjects extracts the resource's subject ids. Alias order is
// subjectIds, subjectId, targetSubjectIds, targetSubjectId; subject ids are
// opaque and returned unresolved.
func ResourceSubjects(r Resource) []string {
	return firstPopulated(
		r.SubjectIDs,
		asList(r.SubjectID),
		r.TargetSubjectIDs,
		asList(r.TargetSubjectID),
	)
}

func firstPopulated(candidates ...[]string) []string {
	for _, candidate := range candidates {
		if values := compactStrings(candidate); len(values) > 0 {
			return values
		}
	}
	return nil
}

func asList(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}

func compactStrings(values []string) []string {
	var out []string
	for _, value := range values {
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
