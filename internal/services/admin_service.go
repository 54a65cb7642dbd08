package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/events"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/validator"
)

const pendingQuestionsLimit = 50

type adminService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewAdminService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, logger *slog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *adminService) GetContent(ctx context.Context) (*AdminContentResponse, error) {
	counts, err := s.repo.Admin().ContentCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load content counts: %w", err)
	}

	pending, err := s.repo.Admin().PendingQuestions(ctx, pendingQuestionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending questions: %w", err)
	}

	return &AdminContentResponse{
		Counts:           counts,
		PendingQuestions: pending,
	}, nil
}

func (s *adminService) GetAnalytics(ctx context.Context) (*repositories.PlatformAnalytics, error) {
	analytics, err := s.repo.Admin().Analytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}
	return analytics, nil
}

func (s *adminService) ApproveQuestion(ctx context.Context, id uint) (*models.Question, error) {
	if err := s.repo.Question().SetApproved(ctx, id, true); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to approve question %d: %w", id, err)
	}

	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload question %d: %w", id, err)
	}

	s.publishEvent(ctx, events.EventQuestionApproved, map[string]any{
		"question_id": question.ID,
		"title":       question.Title,
		"type":        question.Type,
		"difficulty":  question.Difficulty,
	})

	s.logger.Info("question approved", "question_id", id)
	return question, nil
}

func (s *adminService) UpdateQuestion(ctx context.Context, id uint, req *QuestionUpdateRequest) (*models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}

	applyQuestionUpdate(question, req)

	if err := s.repo.Question().Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}

	s.logger.Info("question updated", "question_id", id)
	return question, nil
}

// applyQuestionUpdate copies the non-nil request fields onto the model.
func applyQuestionUpdate(question *models.Question, req *QuestionUpdateRequest) {
	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.Type != nil {
		question.Type = models.QuestionType(*req.Type)
	}
	if req.Difficulty != nil {
		question.Difficulty = models.DifficultyLevel(*req.Difficulty)
	}
	if req.Technologies != nil {
		question.Technologies = models.JSONList(req.Technologies)
	}
	if req.Roles != nil {
		question.Roles = models.JSONList(req.Roles)
	}
	if req.Companies != nil {
		question.Companies = models.JSONList(req.Companies)
	}
	if req.Tags != nil {
		question.Tags = models.JSONList(req.Tags)
	}
	if req.IsApproved != nil {
		question.IsApproved = *req.IsApproved
	}
}

func (s *adminService) DeleteContent(ctx context.Context, contentType string, id uint) error {
	var err error
	switch contentType {
	case "question":
		err = s.repo.Question().Delete(ctx, id)
	case "roadmap":
		err = s.repo.Roadmap().Delete(ctx, id)
	case "role":
		err = s.repo.Role().Delete(ctx, id)
	default:
		return ErrInvalidContentType
	}

	if err != nil {
		if repositories.IsNotFoundError(err) {
			return notFoundFor(contentType)
		}
		return fmt.Errorf("failed to delete %s %d: %w", contentType, id, err)
	}

	s.logger.Info("content deleted", "content_type", contentType, "id", id)
	return nil
}

func notFoundFor(contentType string) error {
	switch contentType {
	case "roadmap":
		return ErrRoadmapNotFound
	case "role":
		return ErrRoleNotFound
	default:
		return ErrQuestionNotFound
	}
}

// ExportContent renders the full question bank and role catalog as an
// XLSX workbook with one sheet per entity.
func (s *adminService) ExportContent(ctx context.Context) ([]byte, error) {
	questions, err := s.repo.Admin().AllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for export: %w", err)
	}
	roles, err := s.repo.Admin().AllRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeQuestionSheet(f, questions); err != nil {
		return nil, err
	}
	if err := writeRoleSheet(f, roles); err != nil {
		return nil, err
	}

	// excelize creates "Sheet1" by default; drop it after our sheets exist.
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render export workbook: %w", err)
	}

	s.logger.Info("content exported", "questions", len(questions), "roles", len(roles))
	return buf.Bytes(), nil
}

func writeQuestionSheet(f *excelize.File, questions []*models.Question) error {
	const sheet = "Questions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"ID", "Title", "Type", "Difficulty", "Technologies", "Roles", "Companies", "Tags", "Rating", "Approved", "Created At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, q := range questions {
		row := []any{
			q.ID,
			q.Title,
			string(q.Type),
			string(q.Difficulty),
			strings.Join(models.StringList(q.Technologies), ", "),
			strings.Join(models.StringList(q.Roles), ", "),
			strings.Join(models.StringList(q.Companies), ", "),
			strings.Join(models.StringList(q.Tags), ", "),
			q.Rating,
			q.IsApproved,
			q.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write question row %d: %w", i+2, err)
		}
	}

	return nil
}

func writeRoleSheet(f *excelize.File, roles []*models.Role) error {
	const sheet = "Roles"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	headers := []string{"ID", "Name", "Description", "Technologies", "Created At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, role := range roles {
		description := ""
		if role.Description != nil {
			description = *role.Description
		}
		row := []any{
			role.ID,
			role.Name,
			description,
			strings.Join(models.StringList(role.Technologies), ", "),
			role.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write role row %d: %w", i+2, err)
		}
	}

	return nil
}

func (s *adminService) publishEvent(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}
