package gradebook

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/domain/course"
	"github.com/campuscore/campuscore-backend/internal/domain/user"
)

// FileRef is the durable descriptor the file store hands back after an upload.
// Only the descriptor is persisted, never the bytes.
type FileRef struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Submission is one upload attempt by a student against an assignment.
// Resubmission creates a new row; rows are immutable except for GradeID,
// which is set once when the submission is first graded.
type Submission struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID uuid.UUID          `gorm:"type:uuid;index;not null;column:assignment_id" json:"assignment_id"`
	Assignment   *course.Assignment `gorm:"foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	StudentID    uuid.UUID          `gorm:"type:uuid;index;not null;column:student_id" json:"student_id"`
	Student      *user.User         `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`

	Files       datatypes.JSON `gorm:"column:files" json:"files"`
	SubmittedAt time.Time      `gorm:"not null;column:submitted_at" json:"submitted_at"`

	GradeID *uuid.UUID `gorm:"type:uuid;index;column:grade_id" json:"grade_id,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Submission) TableName() string { return "submission" }

func (s *Submission) FileRefs() ([]FileRef, error) {
	if len(s.Files) == 0 {
		return nil, nil
	}
	var refs []FileRef
	if err := json.Unmarshal(s.Files, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *Submission) SetFileRefs(refs []FileRef) error {
	raw, err := json.Marshal(refs)
	if err != nil {
		return err
	}
	s.Files = datatypes.JSON(raw)
	return nil
}
