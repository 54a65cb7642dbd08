package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/events"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/validator"
)

// ===== IN-MEMORY REPOSITORY MOCKS =====

type mockRoleRepo struct {
	roles map[uint]*models.Role
}

func (m *mockRoleRepo) List(ctx context.Context) ([]*models.Role, error) { return nil, nil }
func (m *mockRoleRepo) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	if role, ok := m.roles[id]; ok {
		return role, nil
	}
	return nil, repositories.ErrNotFound
}
func (m *mockRoleRepo) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return nil, repositories.ErrNotFound
}
func (m *mockRoleRepo) Create(ctx context.Context, role *models.Role) error { return nil }
func (m *mockRoleRepo) Delete(ctx context.Context, id uint) error           { return nil }

type mockQuestionRepo struct {
	pool []*models.Question
}

func (m *mockQuestionRepo) List(ctx context.Context, f repositories.QuestionFilters) ([]*models.Question, int64, error) {
	return nil, 0, nil
}
func (m *mockQuestionRepo) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	return nil, repositories.ErrNotFound
}
func (m *mockQuestionRepo) GetForInterview(ctx context.Context, roleName string, difficulties []models.DifficultyLevel, limit int) ([]*models.Question, error) {
	allowed := make(map[models.DifficultyLevel]bool, len(difficulties))
	for _, d := range difficulties {
		allowed[d] = true
	}
	var out []*models.Question
	for _, q := range m.pool {
		if allowed[q.Difficulty] {
			out = append(out, q)
		}
	}
	return out, nil
}
func (m *mockQuestionRepo) Create(ctx context.Context, q *models.Question) error          { return nil }
func (m *mockQuestionRepo) Update(ctx context.Context, q *models.Question) error          { return nil }
func (m *mockQuestionRepo) SetApproved(ctx context.Context, id uint, approved bool) error { return nil }
func (m *mockQuestionRepo) Delete(ctx context.Context, id uint) error                     { return nil }

type mockInterviewRepo struct {
	interviews map[string]*models.MockInterview
	questions  map[string][]*models.InterviewQuestion
	abandoned  int64
}

func newMockInterviewRepo() *mockInterviewRepo {
	return &mockInterviewRepo{
		interviews: map[string]*models.MockInterview{},
		questions:  map[string][]*models.InterviewQuestion{},
	}
}

func (m *mockInterviewRepo) Create(ctx context.Context, interview *models.MockInterview, questions []*models.InterviewQuestion) error {
	for _, q := range questions {
		q.MockInterviewID = interview.ID
	}
	m.interviews[interview.ID] = interview
	m.questions[interview.ID] = questions
	return nil
}

func (m *mockInterviewRepo) GetByID(ctx context.Context, id string) (*models.MockInterview, error) {
	interview, ok := m.interviews[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *interview
	copied.Questions = nil
	for _, q := range m.questions[id] {
		copied.Questions = append(copied.Questions, *q)
	}
	return &copied, nil
}

func (m *mockInterviewRepo) Update(ctx context.Context, interview *models.MockInterview) error {
	if _, ok := m.interviews[interview.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *interview
	stored.Questions = nil
	m.interviews[interview.ID] = &stored
	return nil
}

func (m *mockInterviewRepo) GetQuestion(ctx context.Context, interviewID string, questionID uint) (*models.InterviewQuestion, error) {
	for _, q := range m.questions[interviewID] {
		if q.QuestionID == questionID {
			return q, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockInterviewRepo) UpdateQuestion(ctx context.Context, question *models.InterviewQuestion) error {
	return nil
}

func (m *mockInterviewRepo) Scores(ctx context.Context, interviewID string) ([]float64, error) {
	var scores []float64
	for _, q := range m.questions[interviewID] {
		if q.Score != nil {
			scores = append(scores, *q.Score)
		}
	}
	return scores, nil
}

func (m *mockInterviewRepo) MarkAbandoned(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.abandoned, nil
}

type mockRepository struct {
	role      *mockRoleRepo
	question  *mockQuestionRepo
	interview *mockInterviewRepo

	// Overrides the plain question mock when a test needs custom behavior.
	questionOverride repositories.QuestionRepository
}

func (m *mockRepository) Role() repositories.RoleRepository       { return m.role }
func (m *mockRepository) Roadmap() repositories.RoadmapRepository { return nil }
func (m *mockRepository) Question() repositories.QuestionRepository {
	if m.questionOverride != nil {
		return m.questionOverride
	}
	return m.question
}
func (m *mockRepository) Interview() repositories.InterviewRepository { return m.interview }
func (m *mockRepository) Admin() repositories.AdminRepository         { return nil }
func (m *mockRepository) Ping(ctx context.Context) error              { return nil }
func (m *mockRepository) Close() error                                { return nil }

// ===== FIXTURES =====

func testQuestion(id uint, difficulty models.DifficultyLevel) *models.Question {
	return &models.Question{
		ID:         id,
		Title:      "question",
		Type:       models.QuestionCoding,
		Difficulty: difficulty,
		Roles:      models.JSONList([]string{"Frontend Developer"}),
		IsApproved: true,
	}
}

func newTestInterviewService(t *testing.T, repo *mockRepository, timeout time.Duration) (MockInterviewService, *events.MockEventPublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	svc := NewMockInterviewService(repo, validator.New(), publisher, logger, timeout)
	return svc, publisher
}

func defaultMockRepo() *mockRepository {
	return &mockRepository{
		role: &mockRoleRepo{roles: map[uint]*models.Role{
			1: {ID: 1, Name: "Frontend Developer"},
		}},
		question: &mockQuestionRepo{pool: []*models.Question{
			testQuestion(1, models.DifficultyEasy),
			testQuestion(2, models.DifficultyEasy),
			testQuestion(3, models.DifficultyMedium),
			testQuestion(4, models.DifficultyMedium),
			testQuestion(5, models.DifficultyHard),
		}},
		interview: newMockInterviewRepo(),
	}
}

// ===== TESTS =====

func TestDifficultiesForLevel(t *testing.T) {
	tests := []struct {
		level models.ExperienceLevel
		want  []models.DifficultyLevel
	}{
		{models.LevelJunior, []models.DifficultyLevel{models.DifficultyEasy, models.DifficultyMedium}},
		{models.LevelMid, []models.DifficultyLevel{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}},
		{models.LevelSenior, []models.DifficultyLevel{models.DifficultyMedium, models.DifficultyHard}},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got := difficultiesForLevel(tt.level)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestInterviewService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active interview with requested count", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)

		interview, err := svc.Start(ctx, &StartInterviewRequest{RoleID: 1, Level: "junior", QuestionCount: 3})
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		if interview.Status != models.InterviewActive {
			t.Errorf("status = %s, want active", interview.Status)
		}
		if interview.TotalQuestions != 3 {
			t.Errorf("TotalQuestions = %d, want 3", interview.TotalQuestions)
		}
		if len(interview.Questions) != 3 {
			t.Errorf("got %d join rows, want 3", len(interview.Questions))
		}
		for i, q := range interview.Questions {
			if q.Order != i+1 {
				t.Errorf("question %d order = %d, want %d", i, q.Order, i+1)
			}
		}
	})

	t.Run("junior draw excludes hard questions", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)

		interview, err := svc.Start(ctx, &StartInterviewRequest{RoleID: 1, Level: "junior", QuestionCount: 4})
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		for _, iq := range interview.Questions {
			if iq.QuestionID == 5 {
				t.Error("hard question drawn for junior level")
			}
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)

		_, err := svc.Start(ctx, &StartInterviewRequest{RoleID: 99, Level: "junior", QuestionCount: 3})
		if !errors.Is(err, ErrRoleNotFound) {
			t.Errorf("got %v, want ErrRoleNotFound", err)
		}
	})

	t.Run("pool too small", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)

		_, err := svc.Start(ctx, &StartInterviewRequest{RoleID: 1, Level: "junior", QuestionCount: 10})
		if !errors.Is(err, ErrNotEnoughQuestions) {
			t.Errorf("got %v, want ErrNotEnoughQuestions", err)
		}
	})

	t.Run("invalid level rejected by validation", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)

		_, err := svc.Start(ctx, &StartInterviewRequest{RoleID: 1, Level: "wizard", QuestionCount: 3})
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Errorf("got %v, want validation errors", err)
		}
	})
}

func TestInterviewService_SubmitAnswer(t *testing.T) {
	ctx := context.Background()
	code := "// solution\nfunc solve() int { return 42 }"

	startInterview := func(t *testing.T, svc MockInterviewService, count int) *models.MockInterview {
		t.Helper()
		interview, err := svc.Start(ctx, &StartInterviewRequest{RoleID: 1, Level: "junior", QuestionCount: count})
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		return interview
	}

	t.Run("happy path records feedback and progress", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)
		interview := startInterview(t, svc, 2)

		resp, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{
			QuestionID: interview.Questions[0].QuestionID,
			Code:       code,
		})
		if err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}

		if resp.CompletedQuestions != 1 {
			t.Errorf("CompletedQuestions = %d, want 1", resp.CompletedQuestions)
		}
		if resp.Status != models.InterviewActive {
			t.Errorf("status = %s, want active after partial progress", resp.Status)
		}
		if resp.Score <= 0 {
			t.Errorf("score = %v, want > 0", resp.Score)
		}
	})

	t.Run("resubmission rejected", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)
		interview := startInterview(t, svc, 2)
		questionID := interview.Questions[0].QuestionID

		if _, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: questionID, Code: code}); err != nil {
			t.Fatalf("first submit failed: %v", err)
		}
		_, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: questionID, Code: code})
		if !errors.Is(err, ErrQuestionAlreadyAnswered) {
			t.Errorf("got %v, want ErrQuestionAlreadyAnswered", err)
		}
	})

	t.Run("foreign question rejected", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)
		interview := startInterview(t, svc, 2)

		_, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: 9999, Code: code})
		if !errors.Is(err, ErrQuestionNotInInterview) {
			t.Errorf("got %v, want ErrQuestionNotInInterview", err)
		}
	})

	t.Run("last answer completes the interview", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, publisher := newTestInterviewService(t, repo, time.Hour)
		interview := startInterview(t, svc, 2)

		if _, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: interview.Questions[0].QuestionID, Code: code}); err != nil {
			t.Fatalf("first submit failed: %v", err)
		}
		resp, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: interview.Questions[1].QuestionID, Code: code})
		if err != nil {
			t.Fatalf("final submit failed: %v", err)
		}

		if resp.Status != models.InterviewCompleted {
			t.Errorf("status = %s, want completed", resp.Status)
		}
		if resp.OverallScore == nil {
			t.Fatal("OverallScore not set on completion")
		}

		final, err := svc.GetByID(ctx, interview.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if final.EndTime == nil {
			t.Error("EndTime not set on completion")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventInterviewCompleted {
			t.Errorf("published events = %+v, want one interview.completed", published)
		}
	})

	t.Run("completed interview rejects further answers", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, _ := newTestInterviewService(t, repo, time.Hour)
		interview := startInterview(t, svc, 1)

		if _, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: interview.Questions[0].QuestionID, Code: code}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		_, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: interview.Questions[0].QuestionID, Code: code})
		if !errors.Is(err, ErrInterviewNotActive) {
			t.Errorf("got %v, want ErrInterviewNotActive", err)
		}
	})

	t.Run("expired session abandons on touch", func(t *testing.T) {
		repo := defaultMockRepo()
		svc, publisher := newTestInterviewService(t, repo, time.Nanosecond)
		interview := startInterview(t, svc, 2)

		time.Sleep(time.Millisecond)
		_, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: interview.Questions[0].QuestionID, Code: code})
		if !errors.Is(err, ErrInterviewExpired) {
			t.Fatalf("got %v, want ErrInterviewExpired", err)
		}

		after, err := svc.GetByID(ctx, interview.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if after.Status != models.InterviewAbandoned {
			t.Errorf("status = %s, want abandoned", after.Status)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventInterviewAbandoned {
			t.Errorf("published events = %+v, want one interview.abandoned", published)
		}
	})
}

func TestInterviewService_GetFeedback(t *testing.T) {
	ctx := context.Background()
	code := "// solution\nfunc solve() int { return 42 }"

	repo := defaultMockRepo()
	svc, _ := newTestInterviewService(t, repo, time.Hour)

	interview, err := svc.Start(ctx, &StartInterviewRequest{RoleID: 1, Level: "junior", QuestionCount: 1})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	t.Run("active interview has no feedback", func(t *testing.T) {
		_, err := svc.GetFeedback(ctx, interview.ID)
		if !errors.Is(err, ErrFeedbackNotReady) {
			t.Errorf("got %v, want ErrFeedbackNotReady", err)
		}
	})

	if _, err := svc.SubmitAnswer(ctx, interview.ID, &SubmitAnswerRequest{QuestionID: interview.Questions[0].QuestionID, Code: code}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	t.Run("completed interview returns per-question feedback", func(t *testing.T) {
		feedback, err := svc.GetFeedback(ctx, interview.ID)
		if err != nil {
			t.Fatalf("GetFeedback failed: %v", err)
		}
		if feedback.InterviewID != interview.ID {
			t.Errorf("InterviewID = %s, want %s", feedback.InterviewID, interview.ID)
		}
		if len(feedback.Questions) != 1 {
			t.Fatalf("got %d question entries, want 1", len(feedback.Questions))
		}
		q := feedback.Questions[0]
		if q.Score == nil || q.Feedback == nil || q.CompletedAt == nil {
			t.Errorf("answered question missing score/feedback/completedAt: %+v", q)
		}
	})
}

func TestInterviewService_End(t *testing.T) {
	ctx := context.Background()
	repo := defaultMockRepo()
	svc, publisher := newTestInterviewService(t, repo, time.Hour)

	interview, err := svc.Start(ctx, &StartInterviewRequest{RoleID: 1, Level: "mid", QuestionCount: 2})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ended, err := svc.End(ctx, interview.ID)
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if ended.Status != models.InterviewAbandoned {
		t.Errorf("status = %s, want abandoned", ended.Status)
	}
	if ended.EndTime == nil {
		t.Error("EndTime not set")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventInterviewAbandoned {
		t.Errorf("published events = %+v, want one interview.abandoned", published)
	}

	t.Run("ending twice fails", func(t *testing.T) {
		if _, err := svc.End(ctx, interview.ID); !errors.Is(err, ErrInterviewNotActive) {
			t.Errorf("got %v, want ErrInterviewNotActive", err)
		}
	})
}

func TestInterviewService_CleanupStale(t *testing.T) {
	repo := defaultMockRepo()
	repo.interview.abandoned = 4
	svc, _ := newTestInterviewService(t, repo, time.Hour)

	swept, err := svc.CleanupStale(context.Background())
	if err != nil {
		t.Fatalf("CleanupStale failed: %v", err)
	}
	if swept != 4 {
		t.Errorf("swept = %d, want 4", swept)
	}
}
