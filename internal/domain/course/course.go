package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/domain/user"
)

const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Course is owned by a single lecturer. Assignments hang off CourseID, so the
// course/assignment relation cannot drift the way a manually maintained id
// list could.
type Course struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"not null;column:name" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	LecturerID  uuid.UUID  `gorm:"type:uuid;index;not null;column:lecturer_id" json:"lecturer_id"`
	Lecturer    *user.User `gorm:"foreignKey:LecturerID;references:ID" json:"lecturer,omitempty"`

	Difficulty         string   `gorm:"not null;default:Beginner;column:difficulty" json:"difficulty"`
	Duration           string   `gorm:"column:duration" json:"duration"`
	LearningObjectives []string `gorm:"serializer:json;column:learning_objectives" json:"learning_objectives"`
	Prerequisites      []string `gorm:"serializer:json;column:prerequisites" json:"prerequisites"`
	IsPublic           bool     `gorm:"not null;default:true;column:is_public" json:"is_public"`

	Assignments []*Assignment `gorm:"foreignKey:CourseID;references:ID" json:"assignments,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Course) TableName() string { return "course" }
