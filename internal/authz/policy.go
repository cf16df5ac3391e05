// Package authz is the authorization and visibility core: pure decision
// functions over plain actor and resource records. Denial is always a false
// return, never an error, and malformed input degrades to deny.
package authz

import "strings"

// SubjectRef is the slice of the subject directory the policy layer needs to
// resolve subject-scoped targets back to departments.
type SubjectRef struct {
	ID           string
	DepartmentID string
	Branch       string
}

// NewUserTarget describes a user-creation request being authorized.
type NewUserTarget struct {
	Role          string
	DepartmentIDs []string
	DepartmentID  string
}

// CanAccessRoute decides route access: an empty allow list means the route
// is public, otherwise the actor's normalized role must be a member.
func CanAccessRoute(raw RawUser, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	return HasAnyRole(string(NormalizeActor(raw).Role), allowed)
}

// CanCreateForm decides whether the actor may create a form with the given
// target scope. The subject directory snapshot is only consulted on the
// hod/subject branch, to resolve targeted subjects back to departments.
//
// hod targeting subjects is authorized through three fallback tiers: the
// departments the targeted subjects resolve to, then the target's own
// declared departments, then direct ownership of the subject ids.
func CanCreateForm(raw RawUser, target Resource, subjects []SubjectRef) bool {
	actor := NormalizeActor(raw)
	scopeType := strings.ToLower(strings.TrimSpace(target.ScopeType))
	scopeIDs := compactStrings(target.ScopeIDs)

	switch actor.Role {
	case RoleAdmin:
		return true

	case RoleHOD:
		if scopeType != ScopeDepartment && scopeType != ScopeSubject {
			return false
		}
		if len(scopeIDs) == 0 {
			return false
		}
		if scopeType == ScopeDepartment {
			return everyDepartmentInScope(actor, scopeIDs)
		}
		if subjectDepartments := departmentsOfSubjects(subjects, scopeIDs); len(subjectDepartments) > 0 {
			return everyDepartmentInScope(actor, subjectDepartments)
		}
		if targetDepartments := ResourceDepartments(target); len(targetDepartments) > 0 {
			return everyDepartmentInScope(actor, targetDepartments)
		}
		return everySubjectInScope(actor, scopeIDs)

	case RoleFaculty:
		if scopeType != ScopeSubject || len(scopeIDs) == 0 {
			return false
		}
		return everySubjectInScope(actor, scopeIDs)

	default:
		return false
	}
}

// CanViewForm decides form visibility. Checks short-circuit in order: admin,
// ownership, declared scope, then role-specific fallbacks, including the
// legacy academic branch for students on forms that predate the scope model.
func CanViewForm(raw RawUser, form Resource, ctx StudentContext) bool {
	actor := NormalizeActor(raw)
	if actor.Role == RoleAdmin {
		return true
	}

	if form.OwnedBy(actor.ID) {
		return true
	}

	if EvaluateScope(actor, form.Scope()) {
		return true
	}

	formDepartments := ResourceDepartments(form)
	formSubjects := ResourceSubjects(form)

	switch actor.Role {
	case RoleHOD:
		return anyDepartmentInScope(actor, formDepartments) || anySubjectInScope(actor, formSubjects)

	case RoleFaculty:
		return anySubjectInScope(actor, formSubjects)

	case RoleStudent:
		if !form.HasDeclaredScope() {
			return MatchesLegacyAcademicEligibility(form, ctx)
		}
		if len(formSubjects) > 0 && ctx.SubjectID != "" {
			return containsString(formSubjects, ctx.SubjectID)
		}
		if len(formDepartments) > 0 && ctx.DepartmentID != "" {
			return containsString(formDepartments, InferDepartmentID(ctx.DepartmentID))
		}
		return EvaluateScope(actor, form.Scope())

	default:
		return false
	}
}

// CanViewResponse decides feedback response visibility: students only see
// their own submissions, hod and faculty see responses whose derived
// department/subject overlaps their scope.
func CanViewResponse(raw RawUser, response Resource) bool {
	actor := NormalizeActor(raw)
	if actor.Role == RoleAdmin {
		return true
	}

	if actor.Role == RoleStudent {
		submitter := response.Submitter()
		return submitter != "" && (submitter == actor.ID || submitter == actor.Username)
	}

	switch actor.Role {
	case RoleHOD:
		return anyDepartmentInScope(actor, ResourceDepartments(response)) ||
			anySubjectInScope(actor, ResourceSubjects(response))
	case RoleFaculty:
		return anySubjectInScope(actor, ResourceSubjects(response))
	default:
		return false
	}
}

// CanViewComplaint mirrors CanViewResponse for complaints, which carry a
// single department/subject rather than sets.
func CanViewComplaint(raw RawUser, complaint Resource) bool {
	actor := NormalizeActor(raw)
	if actor.Role == RoleAdmin {
		return true
	}

	if actor.Role == RoleStudent {
		submitter := complaint.Submitter()
		return submitter != "" && (submitter == actor.ID || submitter == actor.Username)
	}

	departmentID := complaint.DepartmentID
	if departmentID == "" {
		departmentID = complaint.Dept
	}

	switch actor.Role {
	case RoleHOD:
		return HasDepartmentScope(actor, departmentID) || HasSubjectScope(actor, complaint.SubjectID)
	case RoleFaculty:
		return HasSubjectScope(actor, complaint.SubjectID)
	default:
		return false
	}
}

// CanCreateUser decides user-creation eligibility: admin provisions hod
// accounts for any department, hod provisions faculty accounts strictly
// within its own departments, everyone else is denied.
func CanCreateUser(raw RawUser, target NewUserTarget) bool {
	actor := NormalizeActor(raw)
	targetRole := NormalizeRole(target.Role)
	targetDepartments := InferDepartmentIDs(coalesceList(target.DepartmentIDs, target.DepartmentID))

	switch actor.Role {
	case RoleAdmin:
		return targetRole == RoleHOD

	case RoleHOD:
		if targetRole != RoleFaculty {
			return false
		}
		if len(targetDepartments) == 0 {
			return false
		}
		return everyDepartmentInScope(actor, targetDepartments)

	default:
		return false
	}
}

func departmentsOfSubjects(subjects []SubjectRef, subjectIDs []string) []string {
	var departments []string
	for _, subject := range subjects {
		if !containsString(subjectIDs, subject.ID) {
			continue
		}
		label := subject.DepartmentID
		if label == "" {
			label = subject.Branch
		}
		if id := InferDepartmentID(label); id != "" {
			departments = append(departments, id)
		}
	}
	return dedupeStrings(departments)
}

func everyDepartmentInScope(actor Actor, departmentIDs []string) bool {
	for _, id := range departmentIDs {
		if !HasDepartmentScope(actor, id) {
			return false
		}
	}
	return true
}

func anyDepartmentInScope(actor Actor, departmentIDs []string) bool {
	for _, id := range departmentIDs {
		if HasDepartmentScope(actor, id) {
			return true
		}
	}
	return false
}

func everySubjectInScope(actor Actor, subjectIDs []string) bool {
	for _, id := range subjectIDs {
		if !HasSubjectScope(actor, id) {
			return false
		}
	}
	return true
}

func anySubjectInScope(actor Actor, subjectIDs []string) bool {
	for _, id := range subjectIDs {
		if HasSubjectScope(actor, id) {
			return true
		}
	}
	return false
}
