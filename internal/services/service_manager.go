package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/events"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/validator"
)

// ServiceManagerConfig carries everything the service layer depends on.
type ServiceManagerConfig struct {
	Repository     repositories.Repository
	CacheManager   *cache.CacheManager
	Publisher      events.EventPublisher
	Logger         *slog.Logger
	SessionTimeout time.Duration
}

type serviceManager struct {
	question      QuestionService
	roadmap       RoadmapService
	mockInterview MockInterviewService
	admin         AdminService

	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewServiceManager(cfg ServiceManagerConfig) ServiceManager {
	v := validator.New()

	return &serviceManager{
		question:      NewQuestionService(cfg.Repository, cfg.CacheManager, cfg.Logger),
		roadmap:       NewRoadmapService(cfg.Repository, cfg.CacheManager, cfg.Logger),
		mockInterview: NewMockInterviewService(cfg.Repository, v, cfg.Publisher, cfg.Logger, cfg.SessionTimeout),
		admin:         NewAdminService(cfg.Repository, v, cfg.Publisher, cfg.Logger),
		repo:          cfg.Repository,
		publisher:     cfg.Publisher,
		logger:        cfg.Logger,
	}
}

func (m *serviceManager) Question() QuestionService           { return m.question }
func (m *serviceManager) Roadmap() RoadmapService             { return m.roadmap }
func (m *serviceManager) MockInterview() MockInterviewService { return m.mockInterview }
func (m *serviceManager) Admin() AdminService                 { return m.admin }

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	return m.repo.Ping(ctx)
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	if err := m.publisher.Close(); err != nil {
		m.logger.Warn("failed to close event publisher", "error", err)
	}
	return m.repo.Close()
}
