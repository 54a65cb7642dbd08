package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

type roadmapService struct {
	repo   repositories.Repository
	cache  *cache.CacheManager
	logger *slog.Logger
}

func NewRoadmapService(repo repositories.Repository, cm *cache.CacheManager, logger *slog.Logger) RoadmapService {
	return &roadmapService{
		repo:   repo,
		cache:  cm,
		logger: logger,
	}
}

func (s *roadmapService) GetRoles(ctx context.Context) ([]*models.Role, error) {
	roles, err := s.repo.Role().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *roadmapService) GetByID(ctx context.Context, id uint) (*models.Roadmap, error) {
	roadmap, err := s.repo.Roadmap().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRoadmapNotFound
		}
		return nil, fmt.Errorf("failed to get roadmap %d: %w", id, err)
	}
	return roadmap, nil
}

// GetByRoleAndLevel resolves a roadmap by role name (case-insensitive)
// and experience level. The newest roadmap wins when several exist.
func (s *roadmapService) GetByRoleAndLevel(ctx context.Context, roleName string, level models.ExperienceLevel) (*models.Roadmap, error) {
	roadmap, err := s.repo.Roadmap().GetByRoleAndLevel(ctx, roleName, level)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRoadmapNotFound
		}
		return nil, fmt.Errorf("failed to get roadmap for %s/%s: %w", roleName, level, err)
	}
	return roadmap, nil
}

func (s *roadmapService) ClearCache(ctx context.Context) error {
	if err := s.cache.Roadmap.InvalidatePattern(ctx, "*"); err != nil {
		return fmt.Errorf("failed to clear roadmap cache: %w", err)
	}
	s.logger.Info("roadmap cache cleared")
	return nil
}
