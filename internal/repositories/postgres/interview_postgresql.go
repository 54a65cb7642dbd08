package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

type InterviewPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewInterviewPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.InterviewRepository {
	return &InterviewPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// Create persists the interview together with its join rows so a
// half-created session can never be observed.
func (r *InterviewPostgreSQL) Create(ctx context.Context, interview *models.MockInterview, questions []*models.InterviewQuestion) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(interview).Error; err != nil {
			return fmt.Errorf("failed to create interview: %w", err)
		}
		for _, q := range questions {
			q.MockInterviewID = interview.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return fmt.Errorf("failed to create interview questions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *InterviewPostgreSQL) GetByID(ctx context.Context, id string) (*models.MockInterview, error) {
	var interview models.MockInterview

	err := r.cacheManager.Interview.CacheOrExecute(ctx, "id:"+id, &interview, cache.InterviewCacheConfig.TTL, func() (any, error) {
		var dbInterview models.MockInterview
		err := r.db.WithContext(ctx).
			Preload("Role").
			Preload("Questions", func(db *gorm.DB) *gorm.DB {
				return db.Order("sort_order ASC")
			}).
			Preload("Questions.Question").
			Where("id = ?", id).
			First(&dbInterview).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get interview: %w", err)
		}
		return &dbInterview, nil
	})
	if err != nil {
		return nil, err
	}

	return &interview, nil
}

func (r *InterviewPostgreSQL) Update(ctx context.Context, interview *models.MockInterview) error {
	if err := r.db.WithContext(ctx).Save(interview).Error; err != nil {
		return fmt.Errorf("failed to update interview: %w", err)
	}

	cache.InvalidateInterviewCaches(ctx, r.cacheManager, interview.ID)
	return nil
}

func (r *InterviewPostgreSQL) GetQuestion(ctx context.Context, interviewID string, questionID uint) (*models.InterviewQuestion, error) {
	var question models.InterviewQuestion
	err := r.db.WithContext(ctx).
		Where("mock_interview_id = ? AND question_id = ?", interviewID, questionID).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interview question: %w", err)
	}
	return &question, nil
}

func (r *InterviewPostgreSQL) UpdateQuestion(ctx context.Context, question *models.InterviewQuestion) error {
	if err := r.db.WithContext(ctx).Save(question).Error; err != nil {
		return fmt.Errorf("failed to update interview question: %w", err)
	}

	cache.InvalidateInterviewCaches(ctx, r.cacheManager, question.MockInterviewID)
	return nil
}

// Scores returns the per-question scores recorded so far.
func (r *InterviewPostgreSQL) Scores(ctx context.Context, interviewID string) ([]float64, error) {
	var scores []float64
	err := r.db.WithContext(ctx).
		Model(&models.InterviewQuestion{}).
		Where("mock_interview_id = ? AND score IS NOT NULL", interviewID).
		Pluck("score", &scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get interview scores: %w", err)
	}
	return scores, nil
}

// MarkAbandoned bulk-flips stale active sessions. Terminal rows are
// untouched by the status guard in the WHERE clause.
func (r *InterviewPostgreSQL) MarkAbandoned(ctx context.Context, cutoff time.Time) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.MockInterview{}).
		Where("status = ? AND start_time < ?", models.InterviewActive, cutoff).
		Updates(map[string]any{
			"status":   models.InterviewAbandoned,
			"end_time": now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark interviews abandoned: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		cache.SafeInvalidatePattern(ctx, r.cacheManager.Interview, "id:*")
	}

	return result.RowsAffected, nil
}
