package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type questionService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

func NewQuestionService(repo repositories.Repository, cm *cache.CacheManager, logger *slog.Logger) QuestionService {
	return &questionService{
		repo:   repo,
		cache:  cm,
		logger: logger,
	}
}

// List returns approved questions matching the filters. The approval
// gate is forced here; callers cannot opt out of it.
func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) (*QuestionListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = defaultPageLimit
	}
	if filters.Limit > maxPageLimit {
		filters.Limit = maxPageLimit
	}
	filters.ApprovedOnly = true

	questions, total, err := s.repo.Question().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return &QuestionListResponse{
		Questions:  questions,
		Pagination: models.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

// GetByID returns a single approved question. Unapproved questions are
// indistinguishable from missing ones outside the admin surface.
func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}

	if !question.IsApproved {
		return nil, ErrQuestionNotFound
	}

	return question, nil
}

func (s *questionService) ClearCache(ctx context.Context) error {
	if err := s.cache.Question.InvalidatePattern(ctx, "*"); err != nil {
		return fmt.Errorf("failed to clear question cache: %w", err)
	}
	s.logger.Info("question cache cleared")
	return nil
}
