package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

type RoadmapPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewRoadmapPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.RoadmapRepository {
	return &RoadmapPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// preloadTopics loads topics in display order along with their linked
// practice questions.
func preloadTopics(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Topics.Questions", "is_approved = ?", true).
		Preload("Role")
}

func (r *RoadmapPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Roadmap, error) {
	var roadmap models.Roadmap

	cacheKey := fmt.Sprintf("id:%d", id)
	err := r.cacheManager.Roadmap.CacheOrExecute(ctx, cacheKey, &roadmap, cache.RoadmapCacheConfig.TTL, func() (any, error) {
		var dbRoadmap models.Roadmap
		if err := preloadTopics(r.db.WithContext(ctx)).First(&dbRoadmap, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get roadmap: %w", err)
		}
		return &dbRoadmap, nil
	})
	if err != nil {
		return nil, err
	}

	return &roadmap, nil
}

// GetByRoleAndLevel resolves a roadmap by role name (case-insensitive)
// and experience level. Lookups assume at most one roadmap per
// (role, level) pair; with duplicates the most recent wins.
func (r *RoadmapPostgreSQL) GetByRoleAndLevel(ctx context.Context, roleName string, level models.ExperienceLevel) (*models.Roadmap, error) {
	var roadmap models.Roadmap

	cacheKey := fmt.Sprintf("role:%s:%s", strings.ToLower(roleName), level)
	err := r.cacheManager.Roadmap.CacheOrExecute(ctx, cacheKey, &roadmap, cache.RoadmapCacheConfig.TTL, func() (any, error) {
		var dbRoadmap models.Roadmap
		err := preloadTopics(r.db.WithContext(ctx)).
			Joins("JOIN roles ON roles.id = roadmaps.role_id").
			Where("LOWER(roles.name) = ? AND roadmaps.level = ?", strings.ToLower(roleName), level).
			Order("roadmaps.created_at DESC").
			First(&dbRoadmap).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get roadmap by role and level: %w", err)
		}
		return &dbRoadmap, nil
	})
	if err != nil {
		return nil, err
	}

	return &roadmap, nil
}

func (r *RoadmapPostgreSQL) Create(ctx context.Context, roadmap *models.Roadmap) error {
	if err := r.db.WithContext(ctx).Create(roadmap).Error; err != nil {
		return fmt.Errorf("failed to create roadmap: %w", err)
	}

	cache.InvalidateRoadmapCaches(ctx, r.cacheManager, roadmap.ID)
	return nil
}

// Delete removes a roadmap with its topics. Topic question links go
// first so the join table FK holds.
func (r *RoadmapPostgreSQL) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var topicIDs []uint
		if err := tx.Model(&models.Topic{}).Where("roadmap_id = ?", id).Pluck("id", &topicIDs).Error; err != nil {
			return fmt.Errorf("failed to collect topics: %w", err)
		}
		if len(topicIDs) > 0 {
			if err := tx.Where("topic_id IN ?", topicIDs).Delete(&models.TopicQuestion{}).Error; err != nil {
				return fmt.Errorf("failed to delete topic links: %w", err)
			}
			if err := tx.Where("id IN ?", topicIDs).Delete(&models.Topic{}).Error; err != nil {
				return fmt.Errorf("failed to delete topics: %w", err)
			}
		}

		result := tx.Delete(&models.Roadmap{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete roadmap: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateRoadmapCaches(ctx, r.cacheManager, id)
	return nil
}
