package gradebook

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type SubmissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, submissions []*types.Submission) ([]*types.Submission, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*types.Submission, error)
	GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, assignmentID *uuid.UUID) ([]*types.Submission, error)
	GetByAssignmentIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID) ([]*types.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uuid.UUID) ([]*types.Submission, error)
	// SetGradeID links the grade back-reference. The guard clause keeps the
	// link write-once: a populated grade_id is never overwritten.
	SetGradeID(ctx context.Context, tx *gorm.DB, submissionID, gradeID uuid.UUID) error
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	repoLog := baseLog.With("repo", "SubmissionRepo")
	return &submissionRepo{db: db, log: repoLog}
}

func (r *submissionRepo) Create(ctx context.Context, tx *gorm.DB, submissions []*types.Submission) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(submissions) == 0 {
		return []*types.Submission{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, submissionIDs []uuid.UUID) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Submission
	if len(submissionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", submissionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, assignmentID *uuid.UUID) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Preload("Assignment").
		Where("student_id = ?", studentID)
	if assignmentID != nil {
		q = q.Where("assignment_id = ?", *assignmentID)
	}

	var results []*types.Submission
	if err := q.Order("submitted_at desc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) GetByAssignmentIDs(ctx context.Context, tx *gorm.DB, assignmentIDs []uuid.UUID) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Submission
	if len(assignmentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Student").
		Where("assignment_id IN ?", assignmentIDs).
		Order("submitted_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID, studentID uuid.UUID) ([]*types.Submission, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Submission
	if err := transaction.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Order("submitted_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *submissionRepo) SetGradeID(ctx context.Context, tx *gorm.DB, submissionID, gradeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Submission{}).
		Where("id = ? AND grade_id IS NULL", submissionID).
		Update("grade_id", gradeID).Error
}
