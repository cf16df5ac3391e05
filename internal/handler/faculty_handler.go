package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/internal/service"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
	"github.com/campusdesk/feedback-api/pkg/response"
)

// FacultyHandler wires HTTP endpoints to the faculty service.
type FacultyHandler struct {
	service *service.FacultyService
}

// NewFacultyHandler creates a new handler.
func NewFacultyHandler(svc *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{service: svc}
}

// List godoc
// @Summary List faculty members
// @Tags Faculty
// @Produce json
// @Param branch query string false "Filter by branch"
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *FacultyHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), c.Query("branch"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, nil)
}

// Get godoc
// @Summary Fetch a faculty member
// @Tags Faculty
// @Produce json
// @Param id path string true "Faculty id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculty/{id} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	member, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Create godoc
// @Summary Add a faculty member
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body models.FacultyMember true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /faculty [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req models.FacultyMember
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}

	member, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update a faculty member
// @Tags Faculty
// @Accept json
// @Produce json
// @Param id path string true "Faculty id"
// @Param payload body models.FacultyMember true "Faculty payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculty/{id} [put]
func (h *FacultyHandler) Update(c *gin.Context) {
	var req models.FacultyMember
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}
	req.ID = c.Param("id")

	member, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Delete godoc
// @Summary Remove a faculty member
// @Tags Faculty
// @Produce json
// @Param id path string true "Faculty id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculty/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
