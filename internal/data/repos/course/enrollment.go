package course

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	// Enroll inserts the given students into the course, skipping students that
	// are already enrolled. Returns the number of new enrollments.
	Enroll(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, studentIDs []uuid.UUID) (int, error)
	Unenroll(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, studentIDs []uuid.UUID) error
	GetStudentIDsByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]uuid.UUID, error)
	GetCourseIDsByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]uuid.UUID, error)
	FullDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (r *enrollmentRepo) Enroll(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, studentIDs []uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(studentIDs) == 0 {
		return 0, nil
	}

	rows := make([]*types.Enrollment, 0, len(studentIDs))
	for _, sid := range studentIDs {
		rows = append(rows, &types.Enrollment{CourseID: courseID, StudentID: sid})
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *enrollmentRepo) Unenroll(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, studentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(studentIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("course_id = ? AND student_id IN ?", courseID, studentIDs).
		Delete(&types.Enrollment{}).Error
}

func (r *enrollmentRepo) GetStudentIDsByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("course_id = ?", courseID).
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *enrollmentRepo) GetCourseIDsByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("student_id = ?", studentID).
		Pluck("course_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *enrollmentRepo) FullDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(courseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Delete(&types.Enrollment{}).Error
}
