package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/campuscore/campuscore-backend/internal/platform/logger"
	"github.com/campuscore/campuscore-backend/internal/services"
)

type Services struct {
	Token        services.TokenIssuer
	Auth         services.AuthService
	TwoFactor    services.TwoFactorService
	User         services.UserService
	Course       services.CourseService
	Assignment   services.AssignmentService
	Submission   services.SubmissionService
	Grade        services.GradeService
	NewsEvent    services.NewsEventService
	SystemHealth services.SystemHealthService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) (Services, error) {
	log.Info("Wiring services...")

	tokenIssuer, err := services.NewTokenIssuer(cfg.JWTSecretKey, cfg.AccessTokenTTL)
	if err != nil {
		return Services{}, fmt.Errorf("init token issuer: %w", err)
	}

	return Services{
		Token:        tokenIssuer,
		Auth:         services.NewAuthService(db, log, r.User, tokenIssuer, c.PendingLogin),
		TwoFactor:    services.NewTwoFactorService(db, log, r.User, tokenIssuer, c.PendingLogin, cfg.TwoFactorIssuer),
		User:         services.NewUserService(log, r.User),
		Course:       services.NewCourseService(db, log, r.Course, r.Assignment, r.Enrollment, r.User),
		Assignment:   services.NewAssignmentService(db, log, r.Assignment, r.Course),
		Submission:   services.NewSubmissionService(db, log, r.Submission, r.Grade, r.Assignment, c.Bucket),
		Grade:        services.NewGradeService(db, log, r.Grade, r.Submission),
		NewsEvent:    services.NewNewsEventService(log, r.NewsEvent),
		SystemHealth: services.NewSystemHealthService(db, log, r.SystemHealthLog),
	}, nil
}
