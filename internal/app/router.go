package app

import (
	httpserver "github.com/campuscore/campuscore-backend/internal/http"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *httpserver.Server {
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:            log,
		RequestTimeout: cfg.RequestTimeout,

		AuthMiddleware: middleware.Auth,

		AuthHandler:         handlers.Auth,
		TwoFactorHandler:    handlers.TwoFactor,
		UserHandler:         handlers.User,
		CourseHandler:       handlers.Course,
		AssignmentHandler:   handlers.Assignment,
		SubmissionHandler:   handlers.Submission,
		GradeHandler:        handlers.Grade,
		NewsEventHandler:    handlers.NewsEvent,
		SystemHealthHandler: handlers.SystemHealth,
		UploadHandler:       handlers.Upload,
		HealthHandler:       handlers.Health,
	})
}
