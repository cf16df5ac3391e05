package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func TestLegacyEligibilityDefaultOpen(t *testing.T) {
	assert.True(t, MatchesLegacyAcademicEligibility(Resource{Category: "academics"}, StudentContext{}))
	assert.True(t, MatchesLegacyAcademicEligibility(
		Resource{Category: "academics", SendToAll: boolPtr(true)}, StudentContext{}))
}

func TestLegacyEligibilityNonAcademic(t *testing.T) {
	form := Resource{Category: "sports", SendToAll: boolPtr(false)}
	assert.True(t, MatchesLegacyAcademicEligibility(form, StudentContext{}))
}

func TestLegacyEligibilityYearGate(t *testing.T) {
	form := Resource{Category: "academics", SendToAll: boolPtr(false), TargetYear: 3}
	assert.False(t, MatchesLegacyAcademicEligibility(form, StudentContext{Year: 2}),
		"year mismatch denies regardless of subject fields")

	matched := Resource{
		Category:          "academics",
		SendToAll:         boolPtr(false),
		TargetYear:        2,
		TargetSubjectName: "Data Structures",
	}
	assert.True(t, MatchesLegacyAcademicEligibility(matched, StudentContext{Year: 2, Course: "data structures"}))
}

func TestLegacyEligibilitySubjectMatches(t *testing.T) {
	byID := Resource{Category: "academics", SendToAll: boolPtr(false), TargetSubjectID: "sub-3"}
	assert.True(t, MatchesLegacyAcademicEligibility(byID, StudentContext{SubjectID: "sub-3"}))
	assert.False(t, MatchesLegacyAcademicEligibility(byID, StudentContext{SubjectID: "sub-4"}))

	byCode := Resource{Category: "academics", SendToAll: boolPtr(false), TargetSubjectCode: "cs201"}
	assert.True(t, MatchesLegacyAcademicEligibility(byCode, StudentContext{CourseCode: "CS201"}))

	byName := Resource{Category: "academics", SendToAll: boolPtr(false), TargetSubjectName: " Data Structures "}
	assert.True(t, MatchesLegacyAcademicEligibility(byName, StudentContext{Course: "data structures"}))
}

func TestLegacyEligibilityMalformedDeniesAll(t *testing.T) {
	form := Resource{Category: "academics", SendToAll: boolPtr(false)}
	assert.False(t, MatchesLegacyAcademicEligibility(form, StudentContext{Year: 2, SubjectID: "sub-1"}),
		"closed form with no subject target denies everyone")
}
