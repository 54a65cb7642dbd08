package services

import (
	"context"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/validator"
)

// ===== REQUEST DTO ALIASES =====
// Request shapes live in the validator package next to their rules;
// services re-export them so handlers only import services.

type StartInterviewRequest = validator.StartInterviewRequest
type SubmitAnswerRequest = validator.SubmitAnswerRequest
type ApproveQuestionRequest = validator.ApproveQuestionRequest
type QuestionUpdateRequest = validator.QuestionUpdateRequest
type LoginRequest = validator.LoginRequest

// ===== RESPONSE DTOS =====

type QuestionListResponse struct {
	Questions  []*models.Question `json:"questions"`
	Pagination models.Pagination  `json:"pagination"`
}

// SubmitAnswerResponse returns per-answer feedback plus the session's
// progress so clients can advance without a second round trip.
type SubmitAnswerResponse struct {
	QuestionID         uint                   `json:"question_id"`
	Feedback           models.AnswerFeedback  `json:"feedback"`
	Score              float64                `json:"score"`
	CompletedQuestions int                    `json:"completed_questions"`
	TotalQuestions     int                    `json:"total_questions"`
	Status             models.InterviewStatus `json:"status"`
	OverallScore       *string                `json:"overall_score,omitempty"`
}

type QuestionFeedback struct {
	QuestionID  uint                   `json:"question_id"`
	Title       string                 `json:"title"`
	Order       int                    `json:"order"`
	Score       *float64               `json:"score"`
	Feedback    *models.AnswerFeedback `json:"feedback,omitempty"`
	CompletedAt *string                `json:"completed_at,omitempty"`
}

type InterviewFeedbackResponse struct {
	InterviewID  string                 `json:"interview_id"`
	Level        models.ExperienceLevel `json:"level"`
	OverallScore string                 `json:"overall_score"`
	Questions    []QuestionFeedback     `json:"questions"`
}

type AdminContentResponse struct {
	Counts           *repositories.ContentCounts `json:"counts"`
	PendingQuestions []*models.Question          `json:"pending_questions"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// ===== SERVICE INTERFACES =====

type QuestionService interface {
	List(ctx context.Context, filters repositories.QuestionFilters) (*QuestionListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	ClearCache(ctx context.Context) error
}

type RoadmapService interface {
	GetRoles(ctx context.Context) ([]*models.Role, error)
	GetByID(ctx context.Context, id uint) (*models.Roadmap, error)
	GetByRoleAndLevel(ctx context.Context, roleName string, level models.ExperienceLevel) (*models.Roadmap, error)
	ClearCache(ctx context.Context) error
}

type MockInterviewService interface {
	Start(ctx context.Context, req *StartInterviewRequest) (*models.MockInterview, error)
	GetByID(ctx context.Context, id string) (*models.MockInterview, error)
	SubmitAnswer(ctx context.Context, interviewID string, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error)
	GetFeedback(ctx context.Context, interviewID string) (*InterviewFeedbackResponse, error)
	End(ctx context.Context, interviewID string) (*models.MockInterview, error)
	// CleanupStale sweeps active sessions past the timeout to abandoned
	// and returns how many were swept.
	CleanupStale(ctx context.Context) (int64, error)
}

type AdminService interface {
	GetContent(ctx context.Context) (*AdminContentResponse, error)
	GetAnalytics(ctx context.Context) (*repositories.PlatformAnalytics, error)
	ApproveQuestion(ctx context.Context, id uint) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id uint, req *QuestionUpdateRequest) (*models.Question, error)
	DeleteContent(ctx context.Context, contentType string, id uint) error
	// ExportContent renders all questions and roles as an XLSX workbook.
	ExportContent(ctx context.Context) ([]byte, error)
}

// ServiceManager wires services together and owns their shared
// lifecycle.
type ServiceManager interface {
	Question() QuestionService
	Roadmap() RoadmapService
	MockInterview() MockInterviewService
	Admin() AdminService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
