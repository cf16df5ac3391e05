package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeActorPluralFields(t *testing.T) {
	actor := NormalizeActor(RawUser{
		ID:            "u1",
		Username:      "priya",
		Role:          "Teacher",
		DepartmentIDs: []string{"CSE", "computer science", "ECE", ""},
		SubjectIDs:    []string{"sub-3", "sub-3", "sub-4"},
	})

	assert.Equal(t, "u1", actor.ID)
	assert.Equal(t, RoleFaculty, actor.Role)
	assert.Equal(t, []string{"cse", "ece"}, actor.DepartmentIDs)
	assert.Equal(t, []string{"sub-3", "sub-4"}, actor.SubjectIDs)
}

func TestNormalizeActorSingularFallback(t *testing.T) {
	actor := NormalizeActor(RawUser{
		Username:     "arun",
		Role:         "hod",
		DepartmentID: "Mechanical",
		SubjectID:    "sub-9",
	})

	assert.Equal(t, "arun", actor.ID, "id falls back to username")
	assert.Equal(t, []string{"mech"}, actor.DepartmentIDs)
	assert.Equal(t, []string{"sub-9"}, actor.SubjectIDs)
}

func TestNormalizeActorEmptyRecord(t *testing.T) {
	actor := NormalizeActor(RawUser{})
	assert.Equal(t, RoleGuest, actor.Role)
	assert.Empty(t, actor.DepartmentIDs)
	assert.Empty(t, actor.SubjectIDs)
}

func TestNormalizeActorDoesNotMutateInput(t *testing.T) {
	raw := RawUser{Role: "student", DepartmentIDs: []string{"CSE"}}
	_ = NormalizeActor(raw)
	assert.Equal(t, []string{"CSE"}, raw.DepartmentIDs)
	assert.Equal(t, "student", raw.Role)
}

func TestNormalizeActorUserIDPrecedence(t *testing.T) {
	actor := NormalizeActor(RawUser{UserID: "u42", Username: "kavitha"})
	assert.Equal(t, "u42", actor.ID)
}
