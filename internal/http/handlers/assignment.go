package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscore/campuscore-backend/internal/http/response"
	"github.com/campuscore/campuscore-backend/internal/platform/ctxutil"
	"github.com/campuscore/campuscore-backend/internal/services"
)

type AssignmentHandler struct {
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

type assignmentRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	CourseID    string    `json:"courseId"`
}

func (ah *AssignmentHandler) Create(c *gin.Context) {
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	ah.create(c, courseID, req)
}

// CreateForCourse is the course-scoped creation route; the course comes from
// the path instead of the body.
func (ah *AssignmentHandler) CreateForCourse(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ah.create(c, courseID, req)
}

func (ah *AssignmentHandler) create(c *gin.Context, courseID uuid.UUID, req assignmentRequest) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	assignment, err := ah.assignmentService.Create(c.Request.Context(), rd.UserID, services.AssignmentInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CourseID:    courseID,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, assignment)
}

func (ah *AssignmentHandler) GetByID(c *gin.Context) {
	assignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	assignment, err := ah.assignmentService.GetByID(c.Request.Context(), assignmentID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, assignment)
}

func (ah *AssignmentHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	assignments, err := ah.assignmentService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, assignments)
}

// List returns the assignments of the course named by the courseId query
// parameter.
func (ah *AssignmentHandler) List(c *gin.Context) {
	courseID, err := uuid.Parse(c.Query("courseId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	assignments, err := ah.assignmentService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, assignments)
}

func (ah *AssignmentHandler) Delete(c *gin.Context) {
	assignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if err := ah.assignmentService.Delete(c.Request.Context(), assignmentID, rd.UserID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
