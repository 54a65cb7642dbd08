package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/events"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/validator"
)

// interviewPoolLimit bounds how many candidate questions are loaded
// before the random draw.
const interviewPoolLimit = 100

type mockInterviewService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger

	sessionTimeout time.Duration
}

func NewMockInterviewService(
	repo repositories.Repository,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger *slog.Logger,
	sessionTimeout time.Duration,
) MockInterviewService {
	return &mockInterviewService{
		repo:           repo,
		validator:      v,
		publisher:      publisher,
		logger:         logger,
		sessionTimeout: sessionTimeout,
	}
}

// difficultiesForLevel maps an experience level onto the difficulty
// pool an interview may draw from.
func difficultiesForLevel(level models.ExperienceLevel) []models.DifficultyLevel {
	switch level {
	case models.LevelJunior:
		return []models.DifficultyLevel{models.DifficultyEasy, models.DifficultyMedium}
	case models.LevelSenior:
		return []models.DifficultyLevel{models.DifficultyMedium, models.DifficultyHard}
	default:
		return []models.DifficultyLevel{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}
	}
}

// timeLimitFor returns the per-question limit in seconds.
func timeLimitFor(questionType models.QuestionType) int {
	switch questionType {
	case models.QuestionCoding:
		return 900
	case models.QuestionSystemDesign:
		return 1200
	default:
		return 600
	}
}

func (s *mockInterviewService) Start(ctx context.Context, req *StartInterviewRequest) (*models.MockInterview, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	role, err := s.repo.Role().GetByID(ctx, req.RoleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to get role %d: %w", req.RoleID, err)
	}

	level := models.ExperienceLevel(req.Level)
	pool, err := s.repo.Question().GetForInterview(ctx, role.Name, difficultiesForLevel(level), interviewPoolLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load question pool: %w", err)
	}
	if len(pool) < req.QuestionCount {
		return nil, ErrNotEnoughQuestions
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	selected := pool[:req.QuestionCount]

	now := time.Now().UTC()
	interview := &models.MockInterview{
		ID:             uuid.New().String(),
		RoleID:         role.ID,
		Level:          level,
		Status:         models.InterviewActive,
		StartTime:      now,
		TotalQuestions: req.QuestionCount,
	}

	questions := make([]*models.InterviewQuestion, len(selected))
	totalSeconds := 0
	for i, q := range selected {
		limit := timeLimitFor(q.Type)
		totalSeconds += limit
		questions[i] = &models.InterviewQuestion{
			QuestionID: q.ID,
			Order:      i + 1,
			TimeLimit:  limit,
		}
	}
	interview.Duration = totalSeconds / 60

	if err := s.repo.Interview().Create(ctx, interview, questions); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	s.logger.Info("mock interview started",
		"interview_id", interview.ID,
		"role", role.Name,
		"level", level,
		"questions", req.QuestionCount)

	return s.GetByID(ctx, interview.ID)
}

func (s *mockInterviewService) GetByID(ctx context.Context, id string) (*models.MockInterview, error) {
	interview, err := s.repo.Interview().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to get interview %s: %w", id, err)
	}
	return interview, nil
}

func (s *mockInterviewService) SubmitAnswer(ctx context.Context, interviewID string, req *SubmitAnswerRequest) (*SubmitAnswerResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	interview, err := s.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != models.InterviewActive {
		return nil, ErrInterviewNotActive
	}

	// A stale session is abandoned on touch rather than waiting for the
	// background sweep.
	if time.Since(interview.StartTime) > s.sessionTimeout {
		if err := s.abandon(ctx, interview); err != nil {
			return nil, err
		}
		return nil, ErrInterviewExpired
	}

	iq, err := s.repo.Interview().GetQuestion(ctx, interviewID, req.QuestionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotInInterview
		}
		return nil, fmt.Errorf("failed to get interview question: %w", err)
	}
	if iq.CompletedAt != nil {
		return nil, ErrQuestionAlreadyAnswered
	}

	feedback := GenerateAnswerFeedback(req.Code)
	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feedback: %w", err)
	}

	now := time.Now().UTC()
	score := feedback.Overall
	iq.UserCode = &req.Code
	iq.Feedback = feedbackJSON
	iq.Score = &score
	iq.CompletedAt = &now

	if err := s.repo.Interview().UpdateQuestion(ctx, iq); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	interview.CompletedQuestions++
	if interview.CompletedQuestions >= interview.TotalQuestions {
		if err := s.complete(ctx, interview, now); err != nil {
			return nil, err
		}
	} else if err := s.repo.Interview().Update(ctx, interview); err != nil {
		return nil, fmt.Errorf("failed to update interview progress: %w", err)
	}

	return &SubmitAnswerResponse{
		QuestionID:         req.QuestionID,
		Feedback:           feedback,
		Score:              score,
		CompletedQuestions: interview.CompletedQuestions,
		TotalQuestions:     interview.TotalQuestions,
		Status:             interview.Status,
		OverallScore:       interview.OverallScore,
	}, nil
}

// complete transitions an interview to completed and computes the mean
// overall score from its answered questions.
func (s *mockInterviewService) complete(ctx context.Context, interview *models.MockInterview, endTime time.Time) error {
	scores, err := s.repo.Interview().Scores(ctx, interview.ID)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}

	var sum float64
	for _, score := range scores {
		sum += score
	}
	overall := "0.00"
	if len(scores) > 0 {
		overall = fmt.Sprintf("%.2f", sum/float64(len(scores)))
	}

	interview.Status = models.InterviewCompleted
	interview.EndTime = &endTime
	interview.OverallScore = &overall

	if err := s.repo.Interview().Update(ctx, interview); err != nil {
		return fmt.Errorf("failed to complete interview: %w", err)
	}

	s.publishEvent(ctx, events.EventInterviewCompleted, map[string]any{
		"interview_id":  interview.ID,
		"role_id":       interview.RoleID,
		"level":         interview.Level,
		"overall_score": overall,
	})

	s.logger.Info("mock interview completed",
		"interview_id", interview.ID,
		"overall_score", overall)

	return nil
}

// abandon transitions an active interview to abandoned.
func (s *mockInterviewService) abandon(ctx context.Context, interview *models.MockInterview) error {
	now := time.Now().UTC()
	interview.Status = models.InterviewAbandoned
	interview.EndTime = &now

	if err := s.repo.Interview().Update(ctx, interview); err != nil {
		return fmt.Errorf("failed to abandon interview: %w", err)
	}

	s.publishEvent(ctx, events.EventInterviewAbandoned, map[string]any{
		"interview_id": interview.ID,
		"role_id":      interview.RoleID,
		"level":        interview.Level,
	})

	return nil
}

func (s *mockInterviewService) GetFeedback(ctx context.Context, interviewID string) (*InterviewFeedbackResponse, error) {
	interview, err := s.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != models.InterviewCompleted {
		return nil, ErrFeedbackNotReady
	}

	overall := "0.00"
	if interview.OverallScore != nil {
		overall = *interview.OverallScore
	}

	resp := &InterviewFeedbackResponse{
		InterviewID:  interview.ID,
		Level:        interview.Level,
		OverallScore: overall,
		Questions:    make([]QuestionFeedback, 0, len(interview.Questions)),
	}

	for _, iq := range interview.Questions {
		qf := QuestionFeedback{
			QuestionID: iq.QuestionID,
			Order:      iq.Order,
			Score:      iq.Score,
		}
		if iq.Question != nil {
			qf.Title = iq.Question.Title
		}
		if len(iq.Feedback) > 0 {
			var fb models.AnswerFeedback
			if err := json.Unmarshal(iq.Feedback, &fb); err == nil {
				qf.Feedback = &fb
			}
		}
		if iq.CompletedAt != nil {
			completedAt := iq.CompletedAt.UTC().Format(time.RFC3339)
			qf.CompletedAt = &completedAt
		}
		resp.Questions = append(resp.Questions, qf)
	}

	return resp, nil
}

func (s *mockInterviewService) End(ctx context.Context, interviewID string) (*models.MockInterview, error) {
	interview, err := s.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status != models.InterviewActive {
		return nil, ErrInterviewNotActive
	}

	if err := s.abandon(ctx, interview); err != nil {
		return nil, err
	}

	s.logger.Info("mock interview ended early", "interview_id", interview.ID)
	return interview, nil
}

func (s *mockInterviewService) CleanupStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.sessionTimeout)
	swept, err := s.repo.Interview().MarkAbandoned(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stale interviews: %w", err)
	}

	if swept > 0 {
		s.logger.Info("stale interviews swept", "count", swept)
	}
	return swept, nil
}

// publishEvent publishes best-effort; a broker outage never fails the
// request that triggered the event.
func (s *mockInterviewService) publishEvent(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}
