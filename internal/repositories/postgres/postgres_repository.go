package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
)

// RepositoryConfig holds the infrastructure handles the repositories
// share. RedisClient may be nil; caching then degrades to a no-op.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

type RepositoryManager struct {
	config RepositoryConfig
	repo   *repository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{config: config}
}

func (m *RepositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	cacheManager := cache.NewCacheManager(m.config.RedisClient)

	m.repo = &repository{
		db:        m.config.DB,
		role:      NewRolePostgreSQL(m.config.DB, cacheManager),
		roadmap:   NewRoadmapPostgreSQL(m.config.DB, cacheManager),
		question:  NewQuestionPostgreSQL(m.config.DB, cacheManager),
		interview: NewInterviewPostgreSQL(m.config.DB, cacheManager),
		admin:     NewAdminPostgreSQL(m.config.DB, cacheManager),
	}

	return nil
}

func (m *RepositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

type repository struct {
	db        *gorm.DB
	role      repositories.RoleRepository
	roadmap   repositories.RoadmapRepository
	question  repositories.QuestionRepository
	interview repositories.InterviewRepository
	admin     repositories.AdminRepository
}

func (r *repository) Role() repositories.RoleRepository           { return r.role }
func (r *repository) Roadmap() repositories.RoadmapRepository     { return r.roadmap }
func (r *repository) Question() repositories.QuestionRepository   { return r.question }
func (r *repository) Interview() repositories.InterviewRepository { return r.interview }
func (r *repository) Admin() repositories.AdminRepository         { return r.admin }

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
