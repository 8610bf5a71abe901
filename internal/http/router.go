package http

import (
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	httpH "github.com/campuscore/campuscore-backend/internal/http/handlers"
	httpMW "github.com/campuscore/campuscore-backend/internal/http/middleware"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	RequestTimeout time.Duration

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler         *httpH.AuthHandler
	TwoFactorHandler    *httpH.TwoFactorHandler
	UserHandler         *httpH.UserHandler
	CourseHandler       *httpH.CourseHandler
	AssignmentHandler   *httpH.AssignmentHandler
	SubmissionHandler   *httpH.SubmissionHandler
	GradeHandler        *httpH.GradeHandler
	NewsEventHandler    *httpH.NewsEventHandler
	SystemHealthHandler *httpH.SystemHealthHandler
	UploadHandler       *httpH.UploadHandler
	HealthHandler       *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestTimeout(cfg.RequestTimeout))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
		if cfg.TwoFactorHandler != nil {
			api.POST("/2fa/login/verify", cfg.TwoFactorHandler.VerifyLogin)
		}
	}

	protected := api.Group("/")
	lecturer := protected.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
			lecturer.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireRole(types.RoleLecturer))
		}

		if cfg.AuthHandler != nil {
			protected.POST("/auth/change-password", cfg.AuthHandler.ChangePassword)
		}

		if cfg.TwoFactorHandler != nil {
			protected.GET("/2fa/setup", cfg.TwoFactorHandler.Setup)
			protected.POST("/2fa/verify", cfg.TwoFactorHandler.ConfirmSetup)
			protected.POST("/2fa/disable", cfg.TwoFactorHandler.Disable)
		}

		if cfg.UserHandler != nil {
			protected.GET("/users/profile", cfg.UserHandler.GetProfile)
			lecturer.GET("/users/students", cfg.UserHandler.ListStudents)
		}

		if cfg.CourseHandler != nil {
			protected.GET("/courses", cfg.CourseHandler.List)
			protected.GET("/courses/public", cfg.CourseHandler.ListPublic)
			protected.GET("/courses/student", cfg.CourseHandler.ListMine)
			protected.GET("/courses/:id", cfg.CourseHandler.GetByID)
			protected.POST("/courses/:id/enroll", cfg.CourseHandler.Enroll)
			protected.POST("/courses/:id/unenroll", cfg.CourseHandler.Unenroll)
			lecturer.POST("/courses", cfg.CourseHandler.Create)
			lecturer.PUT("/courses/:id", cfg.CourseHandler.Update)
			lecturer.DELETE("/courses/:id", cfg.CourseHandler.Delete)
			lecturer.GET("/courses/:id/users", cfg.CourseHandler.ListEnrolledUsers)
			lecturer.GET("/courses/student/:studentId", cfg.CourseHandler.ListForStudent)
		}

		if cfg.AssignmentHandler != nil {
			protected.GET("/courses/:id/assignments", cfg.AssignmentHandler.ListByCourse)
			protected.GET("/assignments", cfg.AssignmentHandler.List)
			protected.GET("/assignments/:id", cfg.AssignmentHandler.GetByID)
			lecturer.POST("/assignments", cfg.AssignmentHandler.Create)
			lecturer.POST("/courses/:id/assignments", cfg.AssignmentHandler.CreateForCourse)
			lecturer.DELETE("/assignments/:id", cfg.AssignmentHandler.Delete)
		}

		if cfg.SubmissionHandler != nil {
			protected.POST("/submissions/submit", cfg.SubmissionHandler.Submit)
			protected.GET("/submissions/student", cfg.SubmissionHandler.ListMine)
			lecturer.GET("/submissions/assignment/:id", cfg.SubmissionHandler.ListByAssignment)
		}

		if cfg.GradeHandler != nil {
			protected.GET("/grades/student/grades", cfg.GradeHandler.ListMine)
			protected.GET("/grades/submission/:id", cfg.GradeHandler.GetBySubmission)
			lecturer.POST("/grades/:submissionId", cfg.GradeHandler.Grade)
			lecturer.GET("/grades/assignment/:id", cfg.GradeHandler.ListByAssignment)
			lecturer.GET("/grades/assignment/:id/student", cfg.GradeHandler.GetByAssignmentAndStudent)
		}

		if cfg.NewsEventHandler != nil {
			protected.GET("/news-events", cfg.NewsEventHandler.List)
			protected.GET("/news-events/:id", cfg.NewsEventHandler.GetByID)
			lecturer.POST("/news-events", cfg.NewsEventHandler.Create)
			lecturer.PUT("/news-events/:id", cfg.NewsEventHandler.Update)
			lecturer.DELETE("/news-events/:id", cfg.NewsEventHandler.Delete)
		}

		if cfg.SystemHealthHandler != nil {
			lecturer.GET("/system-health", cfg.SystemHealthHandler.Snapshot)
		}

		if cfg.UploadHandler != nil {
			protected.POST("/uploads/upload", cfg.UploadHandler.Upload)
		}
	}

	return r
}
