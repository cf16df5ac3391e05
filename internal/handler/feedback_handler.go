package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	"github.com/campusdesk/feedback-api/internal/service"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
	"github.com/campusdesk/feedback-api/pkg/response"
)

// FeedbackHandler wires HTTP endpoints to the feedback service.
type FeedbackHandler struct {
	service *service.FeedbackService
	users   *service.UserService
}

// NewFeedbackHandler creates a new handler.
func NewFeedbackHandler(svc *service.FeedbackService, users *service.UserService) *FeedbackHandler {
	return &FeedbackHandler{service: svc, users: users}
}

func (h *FeedbackHandler) studentContext(c *gin.Context, claims *models.JWTClaims) authz.StudentContext {
	base := authz.StudentContext{}
	if authz.NormalizeRole(claims.Role) == authz.RoleStudent {
		if user, err := h.users.Get(c.Request.Context(), claims.UserID); err == nil {
			base = user.StudentContext()
		}
	}
	return studentContextFromQuery(c, base)
}

// Submit godoc
// @Summary Submit a form response
// @Description Submit answers against a form the student is eligible for
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body models.FeedbackResponse true "Response payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.FeedbackResponse
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid response payload"))
		return
	}

	student := studentContextFromSubmission(h.studentContext(c, claims), req)
	res, err := h.service.Submit(c.Request.Context(), claims.RawActor(), student, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// ListByCategory godoc
// @Summary List responses in a category
// @Description List the responses the current actor may review
// @Tags Feedback
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /feedback/category/{category} [get]
func (h *FeedbackHandler) ListByCategory(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	rows, err := h.service.ScopedRows(c.Request.Context(), claims.RawActor(), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, rows, nil)
}

// MyCount godoc
// @Summary Count of the current student's submissions
// @Tags Feedback
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /feedback/mine/count [get]
func (h *FeedbackHandler) MyCount(c *gin.Context) {
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

// Export godoc
// @Summary Export responses in a category
// @Description Export the actor's visible responses as CSV or PDF
// @Tags Feedback
// @Produce octet-stream
// @Param category path string true "Category"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Failure 400 {object} response.Envelope
// @Router /feedback/category/{category}/export [get]
func (h *FeedbackHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	category := c.Param("category")
	format := c.DefaultQuery("format", "csv")

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		payload, err = h.service.ExportCSV(c.Request.Context(), claims.RawActor(), category)
		contentType = "text/csv"
	case "pdf":
		payload, err = h.service.ExportPDF(c.Request.Context(), claims.RawActor(), category)
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("responses-%s.%s", category, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

// studentContextFromSubmission folds the submission payload's own academic
// fields into the context so the eligibility recheck sees what is stored.
func studentContextFromSubmission(base authz.StudentContext, req models.FeedbackResponse) authz.StudentContext {
	if req.Year != 0 {
		base.Year = req.Year
	}
	if req.SubjectID != "" {
		base.SubjectID = req.SubjectID
	}
	if req.CourseCode != "" {
		base.CourseCode = req.CourseCode
	}
	if req.Course != "" {
		base.Course = req.Course
	}
	if req.DepartmentID != "" {
		base.DepartmentID = req.DepartmentID
	}
	return base
}
