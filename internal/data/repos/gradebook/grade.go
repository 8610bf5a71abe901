package gradebook

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type GradeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, grades []*types.Grade) ([]*types.Grade, error)
	GetBySubmissionIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*types.Grade, error)
	// GetByStudentID returns the student's grades newest-first.
	GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Grade, error)
	// GetByAssignmentID returns an assignment's grades by score descending.
	GetByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) ([]*types.Grade, error)
	UpdateScore(ctx context.Context, tx *gorm.DB, gradeID uuid.UUID, score int, feedback string, gradedBy uuid.UUID) error
}

type gradeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	repoLog := baseLog.With("repo", "GradeRepo")
	return &gradeRepo{db: db, log: repoLog}
}

func (r *gradeRepo) Create(ctx context.Context, tx *gorm.DB, grades []*types.Grade) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(grades) == 0 {
		return []*types.Grade{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepo) GetBySubmissionIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Grade
	if len(submissionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Grader").
		Where("submission_id IN ?", submissionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gradeRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Grade
	if err := transaction.WithContext(ctx).
		Preload("Assignment").
		Preload("Assignment.Course").
		Preload("Grader").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gradeRepo) GetByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID) ([]*types.Grade, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Grade
	if err := transaction.WithContext(ctx).
		Preload("Student").
		Preload("Grader").
		Where("assignment_id = ?", assignmentID).
		Order("score desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gradeRepo) UpdateScore(ctx context.Context, tx *gorm.DB, gradeID uuid.UUID, score int, feedback string, gradedBy uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Grade{}).
		Where("id = ?", gradeID).
		Updates(map[string]any{
			"score":     score,
			"feedback":  feedback,
			"graded_by": gradedBy,
		}).Error
}
