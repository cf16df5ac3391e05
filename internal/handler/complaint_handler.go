package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/internal/service"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
	"github.com/campusdesk/feedback-api/pkg/response"
)

// ComplaintHandler wires HTTP endpoints to the complaint service.
type ComplaintHandler struct {
	service *service.ComplaintService
}

// NewComplaintHandler creates a new handler.
func NewComplaintHandler(svc *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: svc}
}

// Submit godoc
// @Summary File a complaint
// @Description File a complaint in a category unless blocked
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body models.Complaint true "Complaint payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /complaints [post]
func (h *ComplaintHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.Complaint
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid complaint payload"))
		return
	}

	complaint, err := h.service.Submit(c.Request.Context(), claims.RawActor(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, complaint)
}

// ListByCategory godoc
// @Summary List complaints in a category
// @Description List the complaints the current actor may review
// @Tags Complaints
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} response.Envelope
// @Router /complaints/category/{category} [get]
func (h *ComplaintHandler) ListByCategory(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	complaints, err := h.service.ScopedRows(c.Request.Context(), claims.RawActor(), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, complaints, nil)
}

// ListMine godoc
// @Summary List the current student's complaints
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /complaints/mine [get]
func (h *ComplaintHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	complaints, err := h.service.ListMine(c.Request.Context(), claims.RawActor())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, complaints, nil)
}

// MyCount godoc
// @Summary Count of the current student's complaints
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /complaints/mine/count [get]
func (h *ComplaintHandler) MyCount(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	count, err := h.service.CountForStudent(c.Request.Context(), claims.RawActor())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"count": count}, nil)
}

// Resolve godoc
// @Summary Resolve a complaint
// @Tags Complaints
// @Produce json
// @Param category path string true "Category"
// @Param id path string true "Complaint id"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /complaints/category/{category}/{id}/resolve [post]
func (h *ComplaintHandler) Resolve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Resolve(c.Request.Context(), claims.RawActor(), c.Param("category"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Block godoc
// @Summary Block a student from filing complaints
// @Description Block one student in a category, or the whole category when no username is given
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body models.ComplaintBlock true "Block payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /complaints/blocks [post]
func (h *ComplaintHandler) Block(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.ComplaintBlock
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid block payload"))
		return
	}

	if err := h.service.Block(c.Request.Context(), claims.RawActor(), req.Category, req.Username); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Unblock godoc
// @Summary Lift a complaint block
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body models.ComplaintBlock true "Block payload"
// @Success 204 {object} response.Envelope
// @Router /complaints/blocks/remove [post]
func (h *ComplaintHandler) Unblock(c *gin.Context) {
	var req models.ComplaintBlock
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid block payload"))
		return
	}

	if err := h.service.Unblock(c.Request.Context(), req.Category, req.Username); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListBlocks godoc
// @Summary List complaint blocks
// @Tags Complaints
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /complaints/blocks [get]
func (h *ComplaintHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.service.ListBlocks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, nil)
}
