package app

import (
	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type Repos struct {
	User            repos.UserRepo
	Course          repos.CourseRepo
	Assignment      repos.AssignmentRepo
	Enrollment      repos.EnrollmentRepo
	Submission      repos.SubmissionRepo
	Grade           repos.GradeRepo
	NewsEvent       repos.NewsEventRepo
	SystemHealthLog repos.SystemHealthLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		Course:          repos.NewCourseRepo(db, log),
		Assignment:      repos.NewAssignmentRepo(db, log),
		Enrollment:      repos.NewEnrollmentRepo(db, log),
		Submission:      repos.NewSubmissionRepo(db, log),
		Grade:           repos.NewGradeRepo(db, log),
		NewsEvent:       repos.NewNewsEventRepo(db, log),
		SystemHealthLog: repos.NewSystemHealthLogRepo(db, log),
	}
}
