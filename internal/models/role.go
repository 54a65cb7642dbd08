package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type ExperienceLevel string

const (
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

type Role struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;uniqueIndex;size:100"`
	Description *string `json:"description" gorm:"type:text"`

	// []string stored as JSONB
	Technologies datatypes.JSON `json:"technologies" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Roadmaps []Roadmap `json:"roadmaps,omitempty" gorm:"foreignKey:RoleID"`
}

// StringList decodes a JSONB []string column. Malformed or empty
// payloads decode to an empty slice rather than an error.
func StringList(j datatypes.JSON) []string {
	if len(j) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return []string{}
	}
	return out
}

// JSONList encodes a []string for a JSONB column. nil encodes as [].
func JSONList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}
