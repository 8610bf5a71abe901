package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscore/campuscore-backend/internal/http/response"
	"github.com/campuscore/campuscore-backend/internal/platform/ctxutil"
	"github.com/campuscore/campuscore-backend/internal/services"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
}

func NewSubmissionHandler(submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit accepts a multipart form: an "assignmentId" field plus one or more
// "files" parts.
func (sh *SubmissionHandler) Submit(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.PostForm("assignmentId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	uploads := make([]services.SubmissionUpload, 0, len(form.File["files"]))
	var opened []interface{ Close() error }
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, services.SubmissionUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		})
	}

	rd := ctxutil.GetRequestData(c.Request.Context())
	submission, err := sh.submissionService.Submit(c.Request.Context(), rd.UserID, assignmentID, uploads)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, submission)
}

// ListMine returns the caller's own submissions, optionally filtered by
// assignment via the assignmentId query parameter.
func (sh *SubmissionHandler) ListMine(c *gin.Context) {
	var assignmentID *uuid.UUID
	if raw := c.Query("assignmentId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
			return
		}
		assignmentID = &id
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	views, err := sh.submissionService.ListByStudent(c.Request.Context(), rd.UserID, assignmentID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, views)
}

func (sh *SubmissionHandler) ListByAssignment(c *gin.Context) {
	assignmentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	views, err := sh.submissionService.ListByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, views)
}
