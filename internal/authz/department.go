package authz

import "strings"

// Department describes a canonical department and the labels that resolve to it.
type Department struct {
	ID      string
	Name    string
	Aliases []string
}

// Departments is the fixed institutional catalog. Alias resolution is built
// from the id, the display name, and every alias, all lower-cased.
var Departments = []Department{
	{ID: "cse", Name: "CSE", Aliases: []string{"cse", "computer science"}},
	{ID: "ece", Name: "ECE", Aliases: []string{"ece", "electronics and communication"}},
	{ID: "eee", Name: "EEE", Aliases: []string{"eee", "electrical and electronics"}},
	{ID: "mech", Name: "MECHANICAL", Aliases: []string{"mechanical", "mech"}},
	{ID: "civil", Name: "CIVIL", Aliases: []string{"civil"}},
}

var departmentAliasIndex = buildDepartmentAliasIndex()

func buildDepartmentAliasIndex() map[string]string {
	index := make(map[string]string)
	for _, department := range Departments {
		index[department.ID] = department.ID
		index[strings.ToLower(department.Name)] = department.ID
		for _, alias := range department.Aliases {
			index[strings.ToLower(strings.TrimSpace(alias))] = department.ID
		}
	}
	return index
}

// InferDepartmentID resolves a free-form department label to its canonical id.
// Unknown input resolves to the empty string. Resolving an already-canonical
// id returns it unchanged.
func InferDepartmentID(value string) string {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return ""
	}
	return departmentAliasIndex[key]
}

// InferDepartmentIDs resolves every value, dropping unresolved entries and
// deduplicating while preserving first-seen order.
func InferDepartmentIDs(values []string) []string {
	var resolved []string
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		id := InferDepartmentID(value)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}
	return resolved
}

// DepartmentNameByID returns the display name for a department label,
// resolving aliases first, or fallback when nothing matches.
func DepartmentNameByID(value, fallback string) string {
	id := InferDepartmentID(value)
	for _, department := range Departments {
		if department.ID == id {
			return department.Name
		}
	}
	return fallback
}
