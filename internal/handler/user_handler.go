package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/internal/service"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
	"github.com/campusdesk/feedback-api/pkg/response"
)

// UserHandler wires HTTP endpoints to the user service.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// Create godoc
// @Summary Create a staff account
// @Description Admins appoint HODs, HODs appoint faculty in their departments
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid user payload"))
		return
	}

	user, err := h.service.Create(c.Request.Context(), claims.RawActor(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// List godoc
// @Summary List users
// @Description List accounts visible to the current actor
// @Tags Users
// @Produce json
// @Param role query string false "Filter by role"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filter.Page = page
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			filter.PageSize = size
		}
	}

	users, total, err := h.service.List(c.Request.Context(), claims.RawActor(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, Total: total}
	response.JSON(c, http.StatusOK, users, pagination)
}

// Get godoc
// @Summary Fetch a user
// @Tags Users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}
