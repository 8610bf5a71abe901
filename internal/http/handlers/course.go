package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/http/response"
	"github.com/campuscore/campuscore-backend/internal/platform/ctxutil"
	"github.com/campuscore/campuscore-backend/internal/services"
)

type CourseHandler struct {
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func (ch *CourseHandler) Create(c *gin.Context) {
	var req struct {
		Name               string   `json:"name"`
		Description        string   `json:"description"`
		Difficulty         string   `json:"difficulty"`
		Duration           string   `json:"duration"`
		LearningObjectives []string `json:"learningObjectives"`
		Prerequisites      []string `json:"prerequisites"`
		IsPublic           *bool    `json:"isPublic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	course, err := ch.courseService.Create(c.Request.Context(), rd.UserID, services.CourseInput{
		Name:               req.Name,
		Description:        req.Description,
		Difficulty:         req.Difficulty,
		Duration:           req.Duration,
		LearningObjectives: req.LearningObjectives,
		Prerequisites:      req.Prerequisites,
		IsPublic:           req.IsPublic,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, course)
}

func (ch *CourseHandler) Update(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	course, err := ch.courseService.Update(c.Request.Context(), courseID, rd.UserID, req.Name, req.Description)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, course)
}

func (ch *CourseHandler) Delete(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := ch.courseService.Delete(c.Request.Context(), courseID, rd.UserID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *CourseHandler) GetByID(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	course, err := ch.courseService.GetByID(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, course)
}

// List routes on role: students see their enrolled courses, lecturers see
// every course.
func (ch *CourseHandler) List(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd.Role == types.RoleLecturer {
		courses, err := ch.courseService.ListAll(c.Request.Context())
		if err != nil {
			response.RespondAPIError(c, err)
			return
		}
		response.RespondOK(c, courses)
		return
	}
	courses, err := ch.courseService.ListForStudent(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, courses)
}

// ListMine returns the caller's enrolled courses.
func (ch *CourseHandler) ListMine(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	courses, err := ch.courseService.ListForStudent(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, courses)
}

// ListForStudent returns the enrolled courses of the student named in the path.
func (ch *CourseHandler) ListForStudent(c *gin.Context) {
	studentID, ok := pathUUID(c, "studentId")
	if !ok {
		return
	}
	courses, err := ch.courseService.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, courses)
}

func (ch *CourseHandler) ListPublic(c *gin.Context) {
	summaries, err := ch.courseService.ListPublic(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, summaries)
}

func (ch *CourseHandler) ListEnrolledUsers(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	users, err := ch.courseService.ListEnrolledUsers(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, users)
}

func (ch *CourseHandler) Enroll(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := ch.courseService.Enroll(c.Request.Context(), courseID, rd.UserID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrolled": true})
}

func (ch *CourseHandler) Unenroll(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := ch.courseService.Unenroll(c.Request.Context(), courseID, rd.UserID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrolled": false})
}
