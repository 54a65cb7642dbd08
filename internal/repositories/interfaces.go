package repositories

import (
	"fmt"
	"strings"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Type       *models.QuestionType    `json:"type"`
	Difficulty *models.DifficultyLevel `json:"difficulty"`
	Technology *string                 `json:"technology"`
	Company    *string                 `json:"company"`
	Role       *string                 `json:"role"`
	Search     *string                 `json:"search"`

	// Set by services for every non-admin read; unapproved questions
	// are only reachable through admin listings.
	ApprovedOnly bool `json:"approved_only"`

	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sort_by"`    // "created_at", "title", "difficulty", "rating"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// CacheKey builds a deterministic cache key from the filter. Fields are
// serialized in a fixed order so semantically equal filters always map
// to the same key regardless of how they were constructed.
func (f QuestionFilters) CacheKey() string {
	parts := []string{
		"t=" + deref((*string)(f.Type)),
		"d=" + deref((*string)(f.Difficulty)),
		"tech=" + strings.ToLower(deref(f.Technology)),
		"co=" + strings.ToLower(deref(f.Company)),
		"r=" + strings.ToLower(deref(f.Role)),
		"q=" + strings.ToLower(deref(f.Search)),
		fmt.Sprintf("a=%t", f.ApprovedOnly),
		fmt.Sprintf("p=%d", f.Page),
		fmt.Sprintf("l=%d", f.Limit),
		"s=" + f.SortBy + ":" + f.SortOrder,
	}
	return strings.Join(parts, "|")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ===== ADMIN AGGREGATES =====

type ContentCounts struct {
	Roles             int64 `json:"roles"`
	Roadmaps          int64 `json:"roadmaps"`
	Topics            int64 `json:"topics"`
	Questions         int64 `json:"questions"`
	PendingQuestions  int64 `json:"pending_questions"`
	ApprovedQuestions int64 `json:"approved_questions"`
	Interviews        int64 `json:"interviews"`
}

type PlatformAnalytics struct {
	TotalInterviews       int64                            `json:"total_interviews"`
	ActiveInterviews      int64                            `json:"active_interviews"`
	CompletedInterviews   int64                            `json:"completed_interviews"`
	AbandonedInterviews   int64                            `json:"abandoned_interviews"`
	AverageOverallScore   float64                          `json:"average_overall_score"`
	QuestionsByType       map[models.QuestionType]int64    `json:"questions_by_type"`
	QuestionsByDifficulty map[models.DifficultyLevel]int64 `json:"questions_by_difficulty"`
	InterviewsByLevel     map[models.ExperienceLevel]int64 `json:"interviews_by_level"`
}
