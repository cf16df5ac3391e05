package authz

import "strings"

// Role identifies one of the fixed application roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleHOD     Role = "hod"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
	RoleGuest   Role = "guest"
)

// roleAliases maps accepted synonyms onto canonical roles.
var roleAliases = map[string]Role{
	"admin":              RoleAdmin,
	"administrator":      RoleAdmin,
	"hod":                RoleHOD,
	"head_of_department": RoleHOD,
	"faculty":            RoleFaculty,
	"teacher":            RoleFaculty,
	"staff":              RoleFaculty,
	"student":            RoleStudent,
	"guest":              RoleGuest,
}

// rolePriority is the total authority order used for "at least" checks.
var rolePriority = map[Role]int{
	RoleGuest:   0,
	RoleStudent: 1,
	RoleFaculty: 2,
	RoleHOD:     3,
	RoleAdmin:   4,
}

// NormalizeRole resolves a free-form role value to a canonical Role.
// Unknown or empty input resolves to guest; it never fails.
func NormalizeRole(value string) Role {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return RoleGuest
	}
	if role, ok := roleAliases[trimmed]; ok {
		return role
	}
	return RoleGuest
}

// IsRoleAtLeast reports whether role has at least the authority of minimum.
func IsRoleAtLeast(role, minimum string) bool {
	return rolePriority[NormalizeRole(role)] >= rolePriority[NormalizeRole(minimum)]
}

// HasAnyRole reports whether role is a member of allowed, normalizing both sides.
func HasAnyRole(role string, allowed []string) bool {
	normalized := NormalizeRole(role)
	for _, candidate := range allowed {
		if NormalizeRole(candidate) == normalized {
			return true
		}
	}
	return false
}
