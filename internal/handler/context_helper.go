package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/middleware"
	"github.com/campusdesk/feedback-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// studentContextFromQuery overlays the browsing context a student supplies
// via query parameters onto their profile context. A student browsing the
// forms for one course sends that course's identifiers along.
func studentContextFromQuery(c *gin.Context, base authz.StudentContext) authz.StudentContext {
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			base.Year = year
		}
	}
	if v := c.Query("subjectId"); v != "" {
		base.SubjectID = v
	}
	if v := c.Query("courseCode"); v != "" {
		base.CourseCode = v
	}
	if v := c.Query("course"); v != "" {
		base.Course = v
	}
	if v := c.Query("branch"); v != "" {
		base.Dept = v
	}
	return base
}
