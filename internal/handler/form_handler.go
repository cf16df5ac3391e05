package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/internal/service"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
	"github.com/campusdesk/feedback-api/pkg/response"
)

// FormHandler wires HTTP endpoints to the form service.
type FormHandler struct {
	service *service.FormService
	users   *service.UserService
}

// NewFormHandler creates a new handler.
func NewFormHandler(svc *service.FormService, users *service.UserService) *FormHandler {
	return &FormHandler{service: svc, users: users}
}

// studentContext loads the acting student's profile context and overlays
// any browsing context from the query string. Non-students get a zero
// context since policy never consults it for them.
func (h *FormHandler) studentContext(c *gin.Context, claims *models.JWTClaims) authz.StudentContext {
	base := authz.StudentContext{}
	if authz.NormalizeRole(claims.Role) == authz.RoleStudent {
		if user, err := h.users.Get(c.Request.Context(), claims.UserID); err == nil {
			base = user.StudentContext()
		}
	}
	return studentContextFromQuery(c, base)
}

// Create godoc
// @Summary Create a feedback form
// @Description Create a form targeted by scope or legacy academic fields
// @Tags Forms
// @Accept json
// @Produce json
// @Param payload body models.FormCreateRequest true "Form payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /forms [post]
func (h *FormHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.FormCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid form payload"))
		return
	}

	form, err := h.service.Create(c.Request.Context(), claims.RawActor(), req.Form())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, form)
}

// ListByCategory godoc
// @Summary List forms in a category
// @Description List the forms in a category visible to the current actor
// @Tags Forms
// @Produce json
// @Param category path string true "Category"
// @Param year query int false "Student year override"
// @Param subjectId query string false "Subject context"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /forms/category/{category} [get]
func (h *FormHandler) ListByCategory(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	forms, err := h.service.ListForCategory(c.Request.Context(), claims.RawActor(), h.studentContext(c, claims), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, forms, nil)
}

// ListMine godoc
// @Summary List forms created by the current actor
// @Tags Forms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /forms/mine [get]
func (h *FormHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	forms, err := h.service.ListMine(c.Request.Context(), claims.RawActor())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, forms, nil)
}

// Get godoc
// @Summary Fetch a form
// @Tags Forms
// @Produce json
// @Param id path string true "Form id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forms/{id} [get]
func (h *FormHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	form, err := h.service.Get(c.Request.Context(), claims.RawActor(), h.studentContext(c, claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, form, nil)
}

// Delete godoc
// @Summary Delete a form
// @Tags Forms
// @Produce json
// @Param id path string true "Form id"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /forms/{id} [delete]
func (h *FormHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims.RawActor(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
