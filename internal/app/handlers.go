package app

import (
	httpH "github.com/campuscore/campuscore-backend/internal/http/handlers"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type Handlers struct {
	Auth         *httpH.AuthHandler
	TwoFactor    *httpH.TwoFactorHandler
	User         *httpH.UserHandler
	Course       *httpH.CourseHandler
	Assignment   *httpH.AssignmentHandler
	Submission   *httpH.SubmissionHandler
	Grade        *httpH.GradeHandler
	NewsEvent    *httpH.NewsEventHandler
	SystemHealth *httpH.SystemHealthHandler
	Upload       *httpH.UploadHandler
	Health       *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, cfg Config, s Services, c Clients) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         httpH.NewAuthHandler(s.Auth, int(cfg.PendingLoginTTL.Seconds()), cfg.SecureCookies),
		TwoFactor:    httpH.NewTwoFactorHandler(s.TwoFactor, s.Auth),
		User:         httpH.NewUserHandler(s.User),
		Course:       httpH.NewCourseHandler(s.Course),
		Assignment:   httpH.NewAssignmentHandler(s.Assignment),
		Submission:   httpH.NewSubmissionHandler(s.Submission),
		Grade:        httpH.NewGradeHandler(s.Grade),
		NewsEvent:    httpH.NewNewsEventHandler(s.NewsEvent),
		SystemHealth: httpH.NewSystemHealthHandler(s.SystemHealth),
		Upload:       httpH.NewUploadHandler(c.Bucket),
		Health:       httpH.NewHealthHandler(),
	}
}
