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

type RolePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewRolePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.RoleRepository {
	return &RolePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// List returns all roles with their roadmaps, cached.
func (r *RolePostgreSQL) List(ctx context.Context) ([]*models.Role, error) {
	var roles []*models.Role

	err := r.cacheManager.Roadmap.CacheOrExecute(ctx, "roles", &roles, cache.RoadmapCacheConfig.TTL, func() (any, error) {
		var dbRoles []*models.Role
		if err := r.db.WithContext(ctx).
			Preload("Roadmaps").
			Order("name ASC").
			Find(&dbRoles).Error; err != nil {
			return nil, fmt.Errorf("failed to list roles: %w", err)
		}
		return dbRoles, nil
	})
	if err != nil {
		return nil, err
	}

	return roles, nil
}

func (r *RolePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

func (r *RolePostgreSQL) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}
	return &role, nil
}

func (r *RolePostgreSQL) Create(ctx context.Context, role *models.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	cache.SafeDelete(ctx, r.cacheManager.Roadmap, "roles")
	return nil
}

// Delete removes a role and all rows that reference it: roadmaps with
// their topics and topic links, and mock interviews with their
// question rows. Children go first so the FK constraints hold at every
// step of the transaction.
func (r *RolePostgreSQL) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roadmapIDs []uint
		if err := tx.Model(&models.Roadmap{}).Where("role_id = ?", id).Pluck("id", &roadmapIDs).Error; err != nil {
			return fmt.Errorf("failed to collect roadmaps for role: %w", err)
		}

		if len(roadmapIDs) > 0 {
			var topicIDs []uint
			if err := tx.Model(&models.Topic{}).Where("roadmap_id IN ?", roadmapIDs).Pluck("id", &topicIDs).Error; err != nil {
				return fmt.Errorf("failed to collect topics for role: %w", err)
			}
			if len(topicIDs) > 0 {
				if err := tx.Where("topic_id IN ?", topicIDs).Delete(&models.TopicQuestion{}).Error; err != nil {
					return fmt.Errorf("failed to delete topic links for role: %w", err)
				}
				if err := tx.Where("id IN ?", topicIDs).Delete(&models.Topic{}).Error; err != nil {
					return fmt.Errorf("failed to delete topics for role: %w", err)
				}
			}
			if err := tx.Where("role_id = ?", id).Delete(&models.Roadmap{}).Error; err != nil {
				return fmt.Errorf("failed to delete roadmaps for role: %w", err)
			}
		}

		var interviewIDs []string
		if err := tx.Model(&models.MockInterview{}).Where("role_id = ?", id).Pluck("id", &interviewIDs).Error; err != nil {
			return fmt.Errorf("failed to collect interviews for role: %w", err)
		}
		if len(interviewIDs) > 0 {
			if err := tx.Where("mock_interview_id IN ?", interviewIDs).Delete(&models.InterviewQuestion{}).Error; err != nil {
				return fmt.Errorf("failed to delete interview questions for role: %w", err)
			}
			if err := tx.Where("id IN ?", interviewIDs).Delete(&models.MockInterview{}).Error; err != nil {
				return fmt.Errorf("failed to delete interviews for role: %w", err)
			}
		}

		result := tx.Delete(&models.Role{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete role: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return repositories.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.SafeDelete(ctx, r.cacheManager.Roadmap, "roles")
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Roadmap, "*")
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Interview, "id:*")
	return nil
}
