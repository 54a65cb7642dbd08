package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionCoding       QuestionType = "coding"
	QuestionConceptual   QuestionType = "conceptual"
	QuestionSystemDesign QuestionType = "system-design"
	QuestionBehavioral   QuestionType = "behavioral"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

type Question struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Title   string `json:"title" gorm:"not null;size:300"`
	Content string `json:"content" gorm:"type:text;not null"`

	Type       QuestionType    `json:"type" gorm:"not null;index;size:20"`
	Difficulty DifficultyLevel `json:"difficulty" gorm:"not null;index;size:10"`

	// []string lists stored as JSONB
	Technologies datatypes.JSON `json:"technologies" gorm:"type:jsonb"`
	Roles        datatypes.JSON `json:"roles" gorm:"type:jsonb"`
	Companies    datatypes.JSON `json:"companies" gorm:"type:jsonb"`
	Tags         datatypes.JSON `json:"tags" gorm:"type:jsonb"`

	// Nullable structured solution stored as JSONB
	Solution datatypes.JSON `json:"solution,omitempty" gorm:"type:jsonb"`

	// Decimal columns surface as strings on the wire
	Rating      string `json:"rating" gorm:"type:decimal(3,2);default:0.00"`
	RatingCount int    `json:"rating_count" gorm:"default:0"`

	SubmittedBy *string `json:"submitted_by" gorm:"size:100"`

	// Gate for visibility in search; unapproved questions never leave admin views
	IsApproved bool `json:"is_approved" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===== SOLUTION SCHEMA =====

type Solution struct {
	Explanation     string        `json:"explanation"`
	CodeExamples    []CodeExample `json:"code_examples,omitempty"`
	TimeComplexity  string        `json:"time_complexity,omitempty"`
	SpaceComplexity string        `json:"space_complexity,omitempty"`
	Alternatives    []string      `json:"alternatives,omitempty"`
}

type CodeExample struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}
