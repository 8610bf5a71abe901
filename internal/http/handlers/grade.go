package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscore/campuscore-backend/internal/http/response"
	"github.com/campuscore/campuscore-backend/internal/platform/ctxutil"
	"github.com/campuscore/campuscore-backend/internal/services"
)

type GradeHandler struct {
	gradeService services.GradeService
}

func NewGradeHandler(gradeService services.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// Grade creates or updates the grade for the submission named in the path.
func (gh *GradeHandler) Grade(c *gin.Context) {
	submissionID, ok := pathUUID(c, "submissionId")
	if !ok {
		return
	}
	var req struct {
		Grade    int    `json:"grade"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	grade, created, err := gh.gradeService.GradeOrUpdate(c.Request.Context(), rd.UserID, submissionID, req.Grade, req.Feedback)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if created {
		response.RespondCreated(c, grade)
		return
	}
	response.RespondOK(c, grade)
}

func (gh *GradeHandler) GetBySubmission(c *gin.Context) {
	submissionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	grade, err := gh.gradeService.GetBySubmission(c.Request.Context(), submissionID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, grade)
}

func (gh *GradeHandler) GetByAssignmentAndStudent(c *gin.Context) {
	assignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	studentID, err := uuid.Parse(c.Query("studentId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	grade, err := gh.gradeService.GetByAssignmentAndStudent(c.Request.Context(), assignmentID, studentID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, grade)
}

// ListMine returns the caller's own grades.
func (gh *GradeHandler) ListMine(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	grades, err := gh.gradeService.ListByStudent(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, grades)
}

func (gh *GradeHandler) ListByAssignment(c *gin.Context) {
	assignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	grades, err := gh.gradeService.ListByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, grades)
}
