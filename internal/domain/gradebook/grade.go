package gradebook

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/domain/course"
	"github.com/campuscore/campuscore-backend/internal/domain/user"
)

// Grade scores a single submission. At most one row exists per submission;
// re-grading updates score, feedback and grader in place.
type Grade struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null;column:submission_id" json:"submission_id"`
	AssignmentID uuid.UUID          `gorm:"type:uuid;index;not null;column:assignment_id" json:"assignment_id"`
	Assignment   *course.Assignment `gorm:"foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	StudentID    uuid.UUID          `gorm:"type:uuid;index;not null;column:student_id" json:"student_id"`
	Student      *user.User         `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`

	Score    int        `gorm:"not null;column:score" json:"grade"`
	Feedback string     `gorm:"column:feedback" json:"feedback"`
	GradedBy uuid.UUID  `gorm:"type:uuid;not null;column:graded_by" json:"graded_by"`
	Grader   *user.User `gorm:"foreignKey:GradedBy;references:ID" json:"grader,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Grade) TableName() string { return "grade" }
