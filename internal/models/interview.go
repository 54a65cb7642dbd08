package models

import (
	"time"

	"gorm.io/datatypes"
)

type InterviewStatus string

const (
	InterviewActive    InterviewStatus = "active"
	InterviewCompleted InterviewStatus = "completed"
	InterviewAbandoned InterviewStatus = "abandoned"
)

// MockInterview is a timed session of N questions. Status only moves
// active -> completed or active -> abandoned; terminal states are never left.
type MockInterview struct {
	ID     string          `json:"id" gorm:"primaryKey;size:36"`
	RoleID uint            `json:"role_id" gorm:"not null;index"`
	Level  ExperienceLevel `json:"level" gorm:"not null;size:10"`
	Status InterviewStatus `json:"status" gorm:"not null;default:active;index;size:10"`

	StartTime time.Time  `json:"start_time" gorm:"not null"`
	EndTime   *time.Time `json:"end_time"`
	Duration  int        `json:"duration" gorm:"default:0"` // minutes

	TotalQuestions     int `json:"total_questions" gorm:"not null"`
	CompletedQuestions int `json:"completed_questions" gorm:"default:0"`

	// Mean of per-question scores, set on completion. Decimal on the wire.
	OverallScore *string `json:"overall_score" gorm:"type:decimal(5,2)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Role      *Role               `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Questions []InterviewQuestion `json:"questions,omitempty" gorm:"foreignKey:MockInterviewID;constraint:OnDelete:CASCADE"`
}

// InterviewQuestion joins an interview to one of its questions.
// CompletedAt is set exactly once; answers cannot be resubmitted.
type InterviewQuestion struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	MockInterviewID string `json:"mock_interview_id" gorm:"not null;index;size:36"`
	QuestionID      uint   `json:"question_id" gorm:"not null;index"`

	Order     int `json:"order" gorm:"column:sort_order;not null"`
	TimeLimit int `json:"time_limit" gorm:"default:0"` // seconds

	UserCode    *string        `json:"user_code" gorm:"type:text"`
	Feedback    datatypes.JSON `json:"feedback,omitempty" gorm:"type:jsonb"`
	Score       *float64       `json:"score"`
	CompletedAt *time.Time     `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Question *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
}

// ===== FEEDBACK SCHEMA =====

// AnswerFeedback is the heuristic score object embedded on an
// InterviewQuestion. Deterministic for a given answer text.
type AnswerFeedback struct {
	CodeQuality    int      `json:"code_quality"`
	ProblemSolving int      `json:"problem_solving"`
	Efficiency     int      `json:"efficiency"`
	Overall        float64  `json:"overall"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"improvements"`
}
