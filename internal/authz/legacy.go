package authz

import "strings"

// StudentContext carries the academic situation a student decision is made
// in: current year, enrolled subject, and the course labels the pre-scope
// form model targeted by.
type StudentContext struct {
	Year         int
	SubjectID    string
	CourseCode   string
	Course       string
	DepartmentID string
	Dept         string
}

// ResolvedDepartmentID returns the context's department resolved to its
// canonical id, accepting either field alias.
func (c StudentContext) ResolvedDepartmentID() string {
	if id := InferDepartmentID(c.DepartmentID); id != "" {
		return id
	}
	return InferDepartmentID(c.Dept)
}

// MatchesLegacyAcademicEligibility applies the pre-scope targeting rules for
// academic forms. The same function backs both the listing filter and the
// submit-time recheck; the two must never diverge, or a student could open a
// form they cannot submit.
//
// Rules: non-academic forms are always eligible here; sendToAll defaults
// open; a positive target year must equal the student's year; otherwise at
// least one subject target must match by id, by code (case-insensitive), or
// by name (trimmed, case-insensitive). A closed form with no subject target
// is malformed and denies everyone.
func MatchesLegacyAcademicEligibility(form Resource, ctx StudentContext) bool {
	if form.Category != "academics" {
		return true
	}

	if form.SendToAll == nil || *form.SendToAll {
		return true
	}

	if form.TargetYear > 0 && form.TargetYear != ctx.Year {
		return false
	}

	if form.TargetSubjectID == "" && form.TargetSubjectCode == "" && form.TargetSubjectName == "" {
		return false
	}

	byID := form.TargetSubjectID != "" && ctx.SubjectID == form.TargetSubjectID
	byCode := form.TargetSubjectCode != "" && ctx.CourseCode != "" &&
		strings.EqualFold(ctx.CourseCode, form.TargetSubjectCode)
	byName := form.TargetSubjectName != "" && ctx.Course != "" &&
		strings.EqualFold(strings.TrimSpace(ctx.Course), strings.TrimSpace(form.TargetSubjectName))

	return byID || byCode || byName
}
