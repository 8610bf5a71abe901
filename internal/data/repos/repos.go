package repos

import (
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/data/repos/course"
	"github.com/campuscore/campuscore-backend/internal/data/repos/feed"
	"github.com/campuscore/campuscore-backend/internal/data/repos/gradebook"
	"github.com/campuscore/campuscore-backend/internal/data/repos/ops"
	"github.com/campuscore/campuscore-backend/internal/data/repos/user"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CourseRepo = course.CourseRepo
type AssignmentRepo = course.AssignmentRepo
type EnrollmentRepo = course.EnrollmentRepo

type SubmissionRepo = gradebook.SubmissionRepo
type GradeRepo = gradebook.GradeRepo

type NewsEventRepo = feed.NewsEventRepo

type SystemHealthLogRepo = ops.SystemHealthLogRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return course.NewCourseRepo(db, baseLog)
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	return course.NewAssignmentRepo(db, baseLog)
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return course.NewEnrollmentRepo(db, baseLog)
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return gradebook.NewSubmissionRepo(db, baseLog)
}

func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	return gradebook.NewGradeRepo(db, baseLog)
}

func NewNewsEventRepo(db *gorm.DB, baseLog *logger.Logger) NewsEventRepo {
	return feed.NewNewsEventRepo(db, baseLog)
}

func NewSystemHealthLogRepo(db *gorm.DB, baseLog *logger.Logger) SystemHealthLogRepo {
	return ops.NewSystemHealthLogRepo(db, baseLog)
}
