package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment belongs to exactly one course.
type Assignment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	DueDate     time.Time `gorm:"not null;column:due_date" json:"due_date"`
	CourseID    uuid.UUID `gorm:"type:uuid;index;not null;column:course_id" json:"course_id"`
	Course      *Course   `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Assignment) TableName() string { return "assignment" }
