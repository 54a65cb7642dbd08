package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

// capturingQuestionRepo records the filters the service passes down.
type capturingQuestionRepo struct {
	mockQuestionRepo
	lastFilters repositories.QuestionFilters
	questions   []*models.Question
	byID        map[uint]*models.Question
}

func (m *capturingQuestionRepo) List(ctx context.Context, f repositories.QuestionFilters) ([]*models.Question, int64, error) {
	m.lastFilters = f
	return m.questions, int64(len(m.questions)), nil
}

func (m *capturingQuestionRepo) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	if q, ok := m.byID[id]; ok {
		return q, nil
	}
	return nil, repositories.ErrNotFound
}

func newTestQuestionService(repo *capturingQuestionRepo) QuestionService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewQuestionService(&mockRepository{questionOverride: repo}, cache.NewCacheManager(nil), logger)
}

func TestQuestionService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("approval gate is always forced", func(t *testing.T) {
		repo := &capturingQuestionRepo{}
		svc := newTestQuestionService(repo)

		if _, err := svc.List(ctx, repositories.QuestionFilters{ApprovedOnly: false}); err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if !repo.lastFilters.ApprovedOnly {
			t.Error("ApprovedOnly was not forced to true")
		}
	})

	t.Run("pagination defaults and clamps", func(t *testing.T) {
		repo := &capturingQuestionRepo{}
		svc := newTestQuestionService(repo)

		if _, err := svc.List(ctx, repositories.QuestionFilters{Page: 0, Limit: 0}); err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if repo.lastFilters.Page != 1 || repo.lastFilters.Limit != defaultPageLimit {
			t.Errorf("defaults not applied: page=%d limit=%d", repo.lastFilters.Page, repo.lastFilters.Limit)
		}

		if _, err := svc.List(ctx, repositories.QuestionFilters{Page: 2, Limit: 5000}); err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if repo.lastFilters.Limit != maxPageLimit {
			t.Errorf("limit not clamped: %d", repo.lastFilters.Limit)
		}
	})

	t.Run("response carries pagination metadata", func(t *testing.T) {
		repo := &capturingQuestionRepo{questions: []*models.Question{{ID: 1}, {ID: 2}}}
		svc := newTestQuestionService(repo)

		resp, err := svc.List(ctx, repositories.QuestionFilters{Page: 1, Limit: 2})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if resp.Pagination.Total != 2 || resp.Pagination.Page != 1 {
			t.Errorf("pagination = %+v", resp.Pagination)
		}
	})
}

func TestQuestionService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := &capturingQuestionRepo{byID: map[uint]*models.Question{
		1: {ID: 1, Title: "approved", IsApproved: true},
		2: {ID: 2, Title: "pending", IsApproved: false},
	}}
	svc := newTestQuestionService(repo)

	t.Run("approved question is returned", func(t *testing.T) {
		q, err := svc.GetByID(ctx, 1)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if q.ID != 1 {
			t.Errorf("got question %d", q.ID)
		}
	})

	t.Run("unapproved question looks missing", func(t *testing.T) {
		if _, err := svc.GetByID(ctx, 2); !errors.Is(err, ErrQuestionNotFound) {
			t.Errorf("got %v, want ErrQuestionNotFound", err)
		}
	})

	t.Run("missing question", func(t *testing.T) {
		if _, err := svc.GetByID(ctx, 99); !errors.Is(err, ErrQuestionNotFound) {
			t.Errorf("got %v, want ErrQuestionNotFound", err)
		}
	})
}
