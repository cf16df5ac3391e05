package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]Role{
		"admin":              RoleAdmin,
		"Administrator":      RoleAdmin,
		"HOD":                RoleHOD,
		"head_of_department": RoleHOD,
		"teacher":            RoleFaculty,
		"staff":              RoleFaculty,
		"  Student  ":        RoleStudent,
		"guest":              RoleGuest,
		"":                   RoleGuest,
		"principal":          RoleGuest,
	}
	for input, expected := range cases {
		assert.Equal(t, expected, NormalizeRole(input), "input %q", input)
	}
}

func TestNormalizeRoleIdempotent(t *testing.T) {
	for _, input := range []string{"admin", "Teacher", "head_of_department", "nonsense", ""} {
		once := NormalizeRole(input)
		assert.Equal(t, once, NormalizeRole(string(once)))
	}
}

func TestIsRoleAtLeast(t *testing.T) {
	assert.True(t, IsRoleAtLeast("admin", "hod"))
	assert.True(t, IsRoleAtLeast("hod", "hod"))
	assert.True(t, IsRoleAtLeast("teacher", "student"))
	assert.False(t, IsRoleAtLeast("student", "faculty"))
	assert.False(t, IsRoleAtLeast("", "student"))
	assert.True(t, IsRoleAtLeast("unknown", "guest"))
}

func TestHasAnyRole(t *testing.T) {
	assert.True(t, HasAnyRole("Teacher", []string{"faculty", "hod"}))
	assert.True(t, HasAnyRole("administrator", []string{"admin"}))
	assert.False(t, HasAnyRole("student", []string{"faculty", "hod"}))
	assert.False(t, HasAnyRole("student", nil))
}

func TestInferDepartmentID(t *testing.T) {
	assert.Equal(t, "cse", InferDepartmentID("CSE"))
	assert.Equal(t, "cse", InferDepartmentID("computer science"))
	assert.Equal(t, "mech", InferDepartmentID(" Mechanical "))
	assert.Equal(t, "ece", InferDepartmentID("Electronics and Communication"))
	assert.Equal(t, "", InferDepartmentID("aerospace"))
	assert.Equal(t, "", InferDepartmentID(""))
}

func TestInferDepartmentIDIdempotent(t *testing.T) {
	for _, label := range []string{"CSE", "mech", "civil", "EEE"} {
		resolved := InferDepartmentID(label)
		assert.Equal(t, resolved, InferDepartmentID(resolved))
	}
}

func TestInferDepartmentIDs(t *testing.T) {
	ids := InferDepartmentIDs([]string{"CSE", "computer science", "unknown", "ECE", "cse"})
	assert.Equal(t, []string{"cse", "ece"}, ids)
}

func TestDepartmentNameByID(t *testing.T) {
	assert.Equal(t, "MECHANICAL", DepartmentNameByID("mechanical", ""))
	assert.Equal(t, "CSE", DepartmentNameByID("cse", ""))
	assert.Equal(t, "N/A", DepartmentNameByID("aerospace", "N/A"))
}
