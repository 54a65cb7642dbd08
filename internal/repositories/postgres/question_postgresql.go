package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

type QuestionPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cacheManager,
	}
}

// questionPage is the cached shape for a filtered list query.
type questionPage struct {
	Questions []*models.Question `json:"questions"`
	Total     int64              `json:"total"`
}

// List returns a filtered, sorted, paginated page of questions plus the
// total match count. Pages are cached under a key derived from the
// filter values.
func (q *QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	var page questionPage

	cacheKey := "list:" + filters.CacheKey()
	err := q.cacheManager.Question.CacheOrExecute(ctx, cacheKey, &page, cache.QuestionCacheConfig.TTL, func() (any, error) {
		base := q.helpers.ApplyQuestionFilters(q.db.WithContext(ctx).Model(&models.Question{}), filters)

		var total int64
		if err := base.Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count questions: %w", err)
		}

		var questions []*models.Question
		query := q.helpers.ApplyQuestionFilters(q.db.WithContext(ctx).Model(&models.Question{}), filters)
		query = q.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Page, filters.Limit)
		if err := query.Find(&questions).Error; err != nil {
			return nil, fmt.Errorf("failed to list questions: %w", err)
		}

		return questionPage{Questions: questions, Total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return page.Questions, page.Total, nil
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question

	cacheKey := fmt.Sprintf("id:%d", id)
	err := q.cacheManager.Question.CacheOrExecute(ctx, cacheKey, &question, cache.QuestionCacheConfig.TTL, func() (any, error) {
		var dbQuestion models.Question
		if err := q.db.WithContext(ctx).First(&dbQuestion, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get question: %w", err)
		}
		return &dbQuestion, nil
	})
	if err != nil {
		return nil, err
	}

	return &question, nil
}

// GetForInterview returns a pool of approved questions for the given
// role and difficulty allowlist. Callers shuffle and slice the pool;
// the pool cap just bounds the query.
func (q *QuestionPostgreSQL) GetForInterview(ctx context.Context, roleName string, difficulties []models.DifficultyLevel, limit int) ([]*models.Question, error) {
	if limit <= 0 {
		limit = 100
	}

	var questions []*models.Question
	err := q.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Where("roles @> ?", jsonContains(roleName)).
		Where("difficulty IN ?", difficulties).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get interview questions: %w", err)
	}

	return questions, nil
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	if err := q.db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	cache.InvalidateQuestionCaches(ctx, q.cacheManager, question.ID)
	return nil
}

func (q *QuestionPostgreSQL) Update(ctx context.Context, question *models.Question) error {
	if err := q.db.WithContext(ctx).Save(question).Error; err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	cache.InvalidateQuestionCaches(ctx, q.cacheManager, question.ID)
	return nil
}

func (q *QuestionPostgreSQL) SetApproved(ctx context.Context, id uint, approved bool) error {
	result := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if result.Error != nil {
		return fmt.Errorf("failed to set question approval: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.InvalidateQuestionCaches(ctx, q.cacheManager, id)
	return nil
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, id uint) error {
	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Join rows first due to FK constraints
		if err := tx.Where("question_id = ?", id).Delete(&models.TopicQuestion{}).Error; err != nil {
			return fmt.Errorf("failed to delete topic links: %w", err)
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.InterviewQuestion{}).Error; err != nil {
			return fmt.Errorf("failed to delete interview links: %w", err)
		}

		result := tx.Delete(&models.Question{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete question: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateQuestionCaches(ctx, q.cacheManager, id)
	return nil
}
