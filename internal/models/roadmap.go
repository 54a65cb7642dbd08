package models

import (
	"time"

	"gorm.io/datatypes"
)

type Roadmap struct {
	ID     uint            `json:"id" gorm:"primaryKey"`
	RoleID uint            `json:"role_id" gorm:"not null;index"`
	Level  ExperienceLevel `json:"level" gorm:"not null;size:10;index"`

	Title          string  `json:"title" gorm:"not null;size:200"`
	Description    *string `json:"description" gorm:"type:text"`
	EstimatedHours int     `json:"estimated_hours" gorm:"default:0"`

	// []string stored as JSONB
	Prerequisites datatypes.JSON `json:"prerequisites" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Role   *Role   `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Topics []Topic `json:"topics,omitempty" gorm:"foreignKey:RoadmapID;constraint:OnDelete:CASCADE"`
}

type Topic struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	RoadmapID   uint    `json:"roadmap_id" gorm:"not null;index"`
	Title       string  `json:"title" gorm:"not null;size:200"`
	Description *string `json:"description" gorm:"type:text"`

	// Display sequence within the roadmap
	Order int `json:"order" gorm:"column:sort_order;not null;default:0"`

	// []TopicResource stored as JSONB
	Resources datatypes.JSON `json:"resources" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Questions []Question `json:"questions,omitempty" gorm:"many2many:topic_questions;"`
}

type TopicResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"` // "article", "video", "course", "documentation"
}

// TopicQuestion is the Topic <-> Question join table. Declared explicitly
// so cascades and indexes are migrated alongside the owning tables.
type TopicQuestion struct {
	TopicID    uint `json:"topic_id" gorm:"primaryKey"`
	QuestionID uint `json:"question_id" gorm:"primaryKey"`
}
