package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/internal/service"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
	"github.com/campusdesk/feedback-api/pkg/response"
)

// RBAC enforces route-level access. The allow list names canonical roles;
// role aliases in the token are normalized before matching. An empty list
// admits any authenticated user. metrics may be nil.
func RBAC(metrics *service.MetricsService, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		granted := authz.CanAccessRoute(claims.RawActor(), allowed)
		metrics.RecordPolicyDecision("route", granted)
		if !granted {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles is a helper that accepts typed roles.
func RequireRoles(metrics *service.MetricsService, roles ...authz.Role) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(metrics, allowed...)
}
