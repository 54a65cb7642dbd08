package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

type AdminPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAdminPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.AdminRepository {
	return &AdminPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (r *AdminPostgreSQL) ContentCounts(ctx context.Context) (*repositories.ContentCounts, error) {
	var counts repositories.ContentCounts

	err := r.cacheManager.Stats.CacheOrExecute(ctx, "content-counts", &counts, cache.StatsCacheConfig.TTL, func() (any, error) {
		db := r.db.WithContext(ctx)
		var result repositories.ContentCounts

		type countQuery struct {
			dest  *int64
			model any
			where []any
		}
		queries := []countQuery{
			{&result.Roles, &models.Role{}, nil},
			{&result.Roadmaps, &models.Roadmap{}, nil},
			{&result.Topics, &models.Topic{}, nil},
			{&result.Questions, &models.Question{}, nil},
			{&result.PendingQuestions, &models.Question{}, []any{"is_approved = ?", false}},
			{&result.ApprovedQuestions, &models.Question{}, []any{"is_approved = ?", true}},
			{&result.Interviews, &models.MockInterview{}, nil},
		}
		for _, q := range queries {
			query := db.Model(q.model)
			if q.where != nil {
				query = query.Where(q.where[0], q.where[1:]...)
			}
			if err := query.Count(q.dest).Error; err != nil {
				return nil, fmt.Errorf("failed to count content: %w", err)
			}
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return &counts, nil
}

func (r *AdminPostgreSQL) PendingQuestions(ctx context.Context, limit int) ([]*models.Question, error) {
	if limit <= 0 {
		limit = 20
	}

	var questions []*models.Question
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending questions: %w", err)
	}
	return questions, nil
}

func (r *AdminPostgreSQL) Analytics(ctx context.Context) (*repositories.PlatformAnalytics, error) {
	var analytics repositories.PlatformAnalytics

	err := r.cacheManager.Stats.CacheOrExecute(ctx, "analytics", &analytics, cache.StatsCacheConfig.TTL, func() (any, error) {
		db := r.db.WithContext(ctx)
		result := repositories.PlatformAnalytics{
			QuestionsByType:       make(map[models.QuestionType]int64),
			QuestionsByDifficulty: make(map[models.DifficultyLevel]int64),
			InterviewsByLevel:     make(map[models.ExperienceLevel]int64),
		}

		if err := db.Model(&models.MockInterview{}).Count(&result.TotalInterviews).Error; err != nil {
			return nil, fmt.Errorf("failed to count interviews: %w", err)
		}

		statusCounts := []struct {
			Status models.InterviewStatus
			Count  int64
		}{}
		if err := db.Model(&models.MockInterview{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&statusCounts).Error; err != nil {
			return nil, fmt.Errorf("failed to group interviews by status: %w", err)
		}
		for _, sc := range statusCounts {
			switch sc.Status {
			case models.InterviewActive:
				result.ActiveInterviews = sc.Count
			case models.InterviewCompleted:
				result.CompletedInterviews = sc.Count
			case models.InterviewAbandoned:
				result.AbandonedInterviews = sc.Count
			}
		}

		var avgScore *float64
		if err := db.Model(&models.MockInterview{}).
			Where("status = ? AND overall_score IS NOT NULL", models.InterviewCompleted).
			Select("AVG(overall_score::numeric)").
			Scan(&avgScore).Error; err != nil {
			return nil, fmt.Errorf("failed to average overall scores: %w", err)
		}
		if avgScore != nil {
			result.AverageOverallScore = *avgScore
		}

		typeCounts := []struct {
			Type  models.QuestionType
			Count int64
		}{}
		if err := db.Model(&models.Question{}).
			Select("type, COUNT(*) as count").
			Group("type").
			Scan(&typeCounts).Error; err != nil {
			return nil, fmt.Errorf("failed to group questions by type: %w", err)
		}
		for _, tc := range typeCounts {
			result.QuestionsByType[tc.Type] = tc.Count
		}

		difficultyCounts := []struct {
			Difficulty models.DifficultyLevel
			Count      int64
		}{}
		if err := db.Model(&models.Question{}).
			Select("difficulty, COUNT(*) as count").
			Group("difficulty").
			Scan(&difficultyCounts).Error; err != nil {
			return nil, fmt.Errorf("failed to group questions by difficulty: %w", err)
		}
		for _, dc := range difficultyCounts {
			result.QuestionsByDifficulty[dc.Difficulty] = dc.Count
		}

		levelCounts := []struct {
			Level models.ExperienceLevel
			Count int64
		}{}
		if err := db.Model(&models.MockInterview{}).
			Select("level, COUNT(*) as count").
			Group("level").
			Scan(&levelCounts).Error; err != nil {
			return nil, fmt.Errorf("failed to group interviews by level: %w", err)
		}
		for _, lc := range levelCounts {
			result.InterviewsByLevel[lc.Level] = lc.Count
		}

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return &analytics, nil
}

func (r *AdminPostgreSQL) AllQuestions(ctx context.Context) ([]*models.Question, error) {
	var questions []*models.Question
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to load questions for export: %w", err)
	}
	return questions, nil
}

func (r *AdminPostgreSQL) AllRoles(ctx context.Context) ([]*models.Role, error) {
	var roles []*models.Role
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to load roles for export: %w", err)
	}
	return roles, nil
}
