package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/config"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/services"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/validator"
)

// Version is stamped by the build; the default marks dev builds.
var Version = "dev"

// HandlerManager owns all route handlers and the router wiring.
type HandlerManager struct {
	cfg    *config.Config
	logger utils.Logger
	cache  *cache.CacheManager

	question  *QuestionHandler
	roadmap   *RoadmapHandler
	interview *InterviewHandler
	admin     *AdminHandler
	auth      *AuthHandler
	health    *HealthHandler
}

func NewHandlerManager(
	cfg *config.Config,
	sm services.ServiceManager,
	repo repositories.Repository,
	cm *cache.CacheManager,
	logger utils.Logger,
) *HandlerManager {
	v := validator.New()

	return &HandlerManager{
		cfg:       cfg,
		logger:    logger,
		cache:     cm,
		question:  NewQuestionHandler(sm.Question(), logger),
		roadmap:   NewRoadmapHandler(sm.Roadmap(), logger),
		interview: NewInterviewHandler(sm.MockInterview(), logger),
		admin:     NewAdminHandler(sm.Admin(), logger),
		auth:      NewAuthHandler(cfg, v, logger),
		health:    NewHealthHandler(repo, cm, Version, logger),
	}
}

// SetupRoutes builds the Gin engine with the full middleware chain and
// route table.
func (m *HandlerManager) SetupRoutes() *gin.Engine {
	if m.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(utils.ContextLogger(m.logger))
	router.Use(utils.LoggerMiddleware(m.logger))
	router.Use(CORSMiddleware(m.cfg.CORSOrigins))
	router.Use(SecurityHeadersMiddleware())
	router.Use(RateLimitMiddleware(m.cache.RateLimit, m.cfg.RateLimitMax, m.cfg.RateLimitWindow, m.logger))

	// Health endpoints stay outside /api/v1 for load balancer probes.
	router.GET("/health", m.health.Health)
	router.GET("/health/detailed", m.health.Detailed)
	router.GET("/health/ready", m.health.Ready)
	router.GET("/health/live", m.health.Live)
	router.GET("/status", m.health.Status)

	adminAuth := AdminAuthMiddleware(m.cfg.JWTSecret)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", m.auth.Login)
		}

		questions := v1.Group("/questions")
		{
			questions.GET("", m.question.List)
			questions.DELETE("/cache", adminAuth, m.question.ClearCache)
			questions.GET("/:id", m.question.GetByID)
		}

		roadmaps := v1.Group("/roadmaps")
		{
			roadmaps.GET("/roles", m.roadmap.GetRoles)
			roadmaps.GET("/id/:id", m.roadmap.GetByID)
			roadmaps.DELETE("/cache", adminAuth, m.roadmap.ClearCache)
			roadmaps.GET("/:role/:level", m.roadmap.GetByRoleAndLevel)
		}

		interviews := v1.Group("/mock-interviews")
		{
			interviews.POST("/start", m.interview.Start)
			interviews.POST("/cleanup", m.interview.Cleanup)
			interviews.GET("/:id", m.interview.GetByID)
			interviews.POST("/:id/submit", m.interview.SubmitAnswer)
			interviews.GET("/:id/feedback", m.interview.GetFeedback)
			interviews.POST("/:id/end", m.interview.End)
		}

		admin := v1.Group("/admin", adminAuth)
		{
			admin.GET("/content", m.admin.GetContent)
			admin.GET("/analytics", m.admin.GetAnalytics)
			admin.POST("/approve", m.admin.ApproveQuestion)
			admin.PUT("/questions/:id", m.admin.UpdateQuestion)
			admin.GET("/export", m.admin.ExportContent)
			admin.DELETE("/:type/:id", m.admin.DeleteContent)
		}
	}

	return router
}
