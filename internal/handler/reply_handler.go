package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/internal/service"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
	"github.com/campusdesk/feedback-api/pkg/response"
)

// ReplyHandler wires HTTP endpoints to the reply service.
type ReplyHandler struct {
	service *service.ReplyService
}

// NewReplyHandler creates a new handler.
func NewReplyHandler(svc *service.ReplyService) *ReplyHandler {
	return &ReplyHandler{service: svc}
}

// Send godoc
// @Summary Reply to a student
// @Description Staff reply referencing a feedback response or complaint
// @Tags Replies
// @Accept json
// @Produce json
// @Param payload body models.Reply true "Reply payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /replies [post]
func (h *ReplyHandler) Send(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.Reply
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reply payload"))
		return
	}

	reply, err := h.service.Send(c.Request.Context(), claims.RawActor(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, reply)
}

// ListMine godoc
// @Summary List replies addressed to the current student
// @Tags Replies
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /replies/mine [get]
func (h *ReplyHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	replies, err := h.service.ListForStudent(c.Request.Context(), claims.RawActor())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, replies, nil)
}
