package course

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment joins a student to a course. The composite primary key keeps
// duplicate enrollments out at the schema level.
type Enrollment struct {
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;column:course_id" json:"course_id"`
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey;index;column:student_id" json:"student_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Enrollment) TableName() string { return "course_enrollment" }
