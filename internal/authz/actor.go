package authz

// RawUser is the actor record as supplied by the session provider or the
// users store. Older records carry singular departmentId/subjectId fields,
// newer ones carry the plural sets; both shapes are accepted.
type RawUser struct {
	ID            string
	UserID        string
	Username      string
	Role          string
	DepartmentIDs []string
	DepartmentID  string
	SubjectIDs    []string
	SubjectID     string
}

// Actor is the canonical shape every policy decision operates on. It is
// built on demand from a RawUser and never persisted.
type Actor struct {
	ID            string
	Username      string
	Role          Role
	DepartmentIDs []string
	SubjectIDs    []string
}

// NormalizeActor converts a raw actor record into its canonical form:
// role via the alias table, department ids coalesced from plural-or-singular
// fields and resolved through the department index, subject ids coalesced
// the same way but kept opaque. The input is never mutated.
func NormalizeActor(raw RawUser) Actor {
	id := raw.ID
	if id == "" {
		id = raw.UserID
	}
	if id == "" {
		id = raw.Username
	}
	return Actor{
		ID:            id,
		Username:      raw.Username,
		Role:          NormalizeRole(raw.Role),
		DepartmentIDs: InferDepartmentIDs(coalesceList(raw.DepartmentIDs, raw.DepartmentID)),
		SubjectIDs:    dedupeStrings(coalesceList(raw.SubjectIDs, raw.SubjectID)),
	}
}

// coalesceList materializes the plural-or-singular field pair into one
// collection, dropping empty entries.
func coalesceList(plural []string, singular string) []string {
	if len(plural) > 0 {
		out := make([]string, 0, len(plural))
		for _, value := range plural {
			if value != "" {
				out = append(out, value)
			}
		}
		return out
	}
	if singular == "" {
		return nil
	}
	return []string{singular}
}

func dedupeStrings(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
