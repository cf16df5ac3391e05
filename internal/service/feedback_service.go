package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusdesk/feedback-api/internal/authz"
	"github.com/campusdesk/feedback-api/internal/models"
	appErrors "github.com/campusdesk/feedback-api/pkg/errors"
	"github.com/campusdesk/feedback-api/pkg/export"
)

type feedbackRepository interface {
	CreateResponse(ctx context.Context, response *models.FeedbackResponse) error
	ListRows(ctx context.Context) ([]models.ResponseRow, error)
	ListRowsByCategory(ctx context.Context, category string) ([]models.ResponseRow, error)
	CountBySubmitter(ctx context.Context, username string) (int, error)
	HasSubmitted(ctx context.Context, formID, username string) (bool, error)
}

type feedbackFormReader interface {
	FindByID(ctx context.Context, id string) (*models.Form, error)
}

// FeedbackService manages form responses: submission, scoped listings and
// exports for staff review.
type FeedbackService struct {
	repo      feedbackRepository
	forms     feedbackFormReader
	validator *validator.Validate
	logger    *zap.Logger
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(repo feedbackRepository, forms feedbackFormReader, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{
		repo:      repo,
		forms:     forms,
		validator: validate,
		logger:    logger,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// Submit records a response after rechecking the actor can see the parent
// form. Eligibility is evaluated again here rather than trusted from the
// listing, and duplicate submissions are rejected.
func (s *FeedbackService) Submit(ctx context.Context, actor authz.RawUser, student authz.StudentContext, response *models.FeedbackResponse) (*models.FeedbackResponse, error) {
	if response.FormID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "form id is required")
	}
	if len(response.Answers) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "answers are required")
	}

	form, err := s.forms.FindByID(ctx, response.FormID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "form not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch form")
	}

	if !authz.CanViewForm(actor, form.Resource(), student) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not eligible for this form")
	}

	normalized := authz.NormalizeActor(actor)
	submitted, err := s.repo.HasSubmitted(ctx, form.ID, normalized.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check prior submission")
	}
	if submitted {
		return nil, appErrors.Clone(appErrors.ErrAlreadySubmitted, "")
	}

	response.ID = uuid.NewString()
	response.SubmittedBy = normalized.ID
	response.Year = student.Year
	response.SubjectID = student.SubjectID
	response.CourseCode = student.CourseCode
	response.Course = student.Course
	response.DepartmentID = student.ResolvedDepartmentID()

	if err := s.repo.CreateResponse(ctx, response); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store response")
	}

	s.logger.Info("response submitted",
		zap.String("form_id", form.ID),
		zap.String("category", form.Category),
		zap.String("submitted_by", response.SubmittedBy))
	return response, nil
}

// ScopedRows returns the responses in a category the actor may review,
// with reply keys filled in for the client thread lookup.
func (s *FeedbackService) ScopedRows(ctx context.Context, actor authz.RawUser, category string) ([]models.ResponseRow, error) {
	rows, err := s.listRows(ctx, category)
	if err != nil {
		return nil, err
	}
	visible := make([]models.ResponseRow, 0, len(rows))
	for _, row := range rows {
		if authz.CanViewResponse(actor, row.Resource()) {
			row.ReplyKey = fmt.Sprintf("%s-%s", row.FormID, row.SubmittedBy)
			visible = append(visible, row)
		}
	}
	return visible, nil
}

// CountForStudent returns how many responses the student has submitted.
func (s *FeedbackService) CountForStudent(ctx context.Context, actor authz.RawUser) (int, error) {
	normalized := authz.NormalizeActor(actor)
	if normalized.ID == "" {
		return 0, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	count, err := s.repo.CountBySubmitter(ctx, normalized.ID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count responses")
	}
	return count, nil
}

// ExportCSV renders the actor's visible responses in a category as CSV.
func (s *FeedbackService) ExportCSV(ctx context.Context, actor authz.RawUser, category string) ([]byte, error) {
	rows, err := s.ScopedRows(ctx, actor, category)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(responseDataset(rows))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, nil
}

// ExportPDF renders the actor's visible responses in a category as PDF.
func (s *FeedbackService) ExportPDF(ctx context.Context, actor authz.RawUser, category string) ([]byte, error) {
	rows, err := s.ScopedRows(ctx, actor, category)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Feedback responses: %s", category)
	payload, err := s.pdf.Render(responseDataset(rows), title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, nil
}

func (s *FeedbackService) listRows(ctx context.Context, category string) ([]models.ResponseRow, error) {
	var (
		rows []models.ResponseRow
		err  error
	)
	if category == "" {
		rows, err = s.repo.ListRows(ctx)
	} else {
		if !models.IsValidCategory(category) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category")
		}
		rows, err = s.repo.ListRowsByCategory(ctx, category)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list responses")
	}
	return rows, nil
}

func responseDataset(rows []models.ResponseRow) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Form", "Category", "Submitted By", "Department", "Subject", "Answers", "Submitted At"},
	}
	for _, row := range rows {
		answers := string(row.Answers)
		if compact, err := compactJSON(row.Answers); err == nil {
			answers = compact
		}
		data.Append(map[string]string{
			"Form":         row.FormTitle,
			"Category":     row.Category,
			"Submitted By": row.SubmittedBy,
			"Department":   authz.DepartmentNameByID(row.DepartmentID, row.DepartmentID),
			"Subject":      row.SubjectID,
			"Answers":      answers,
			"Submitted At": row.Timestamp.Format("2006-01-02 15:04"),
		})
	}
	return data
}

func compactJSON(raw json.RawMessage) (string, error) {
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}
	out, err := json.Marshal(decoded)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
