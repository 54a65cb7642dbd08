package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
)

// ErrNotFound is returned by repositories when the requested row does
// not exist. Services translate it into their own not-found sentinels.
var ErrNotFound = errors.New("record not found")

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type RoleRepository interface {
	List(ctx context.Context) ([]*models.Role, error)
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	GetByName(ctx context.Context, name string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id uint) error
}

type RoadmapRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Roadmap, error)
	GetByRoleAndLevel(ctx context.Context, roleName string, level models.ExperienceLevel) (*models.Roadmap, error)
	Create(ctx context.Context, roadmap *models.Roadmap) error
	Delete(ctx context.Context, id uint) error
}

type QuestionRepository interface {
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	// GetForInterview returns approved questions whose roles list contains
	// roleName, restricted to the given difficulties.
	GetForInterview(ctx context.Context, roleName string, difficulties []models.DifficultyLevel, limit int) ([]*models.Question, error)
	Create(ctx context.Context, question *models.Question) error
	Update(ctx context.Context, question *models.Question) error
	SetApproved(ctx context.Context, id uint, approved bool) error
	Delete(ctx context.Context, id uint) error
}

type InterviewRepository interface {
	// Create persists the interview and its join rows in one transaction.
	Create(ctx context.Context, interview *models.MockInterview, questions []*models.InterviewQuestion) error
	GetByID(ctx context.Context, id string) (*models.MockInterview, error)
	Update(ctx context.Context, interview *models.MockInterview) error
	GetQuestion(ctx context.Context, interviewID string, questionID uint) (*models.InterviewQuestion, error)
	UpdateQuestion(ctx context.Context, question *models.InterviewQuestion) error
	Scores(ctx context.Context, interviewID string) ([]float64, error)
	// MarkAbandoned flips active sessions started before cutoff to
	// abandoned and returns how many rows changed.
	MarkAbandoned(ctx context.Context, cutoff time.Time) (int64, error)
}

type AdminRepository interface {
	ContentCounts(ctx context.Context) (*ContentCounts, error)
	PendingQuestions(ctx context.Context, limit int) ([]*models.Question, error)
	Analytics(ctx context.Context) (*PlatformAnalytics, error)
	AllQuestions(ctx context.Context) ([]*models.Question, error)
	AllRoles(ctx context.Context) ([]*models.Role, error)
}

// Repository aggregates all entity repositories behind one handle.
type Repository interface {
	Role() RoleRepository
	Roadmap() RoadmapRepository
	Question() QuestionRepository
	Interview() InterviewRepository
	Admin() AdminRepository

	Ping(ctx context.Context) error
	Close() error
}
