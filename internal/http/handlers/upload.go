package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/campuscore-backend/internal/clients/gcs"
	"github.com/campuscore/campuscore-backend/internal/http/response"
)

// UploadHandler is a standalone file passthrough to object storage, used for
// content that is not tied to a submission.
type UploadHandler struct {
	bucket gcs.BucketService
}

func NewUploadHandler(bucket gcs.BucketService) *UploadHandler {
	return &UploadHandler{bucket: bucket}
}

func (uh *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer f.Close()

	ext := filepath.Ext(fh.Filename)
	name := strings.TrimSuffix(filepath.Base(fh.Filename), ext)
	key := fmt.Sprintf("uploads/%s-%d%s", name, time.Now().UnixNano(), ext)

	url, err := uh.bucket.UploadFile(c.Request.Context(), key, f, fh.Header.Get("Content-Type"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"url": url, "filename": fh.Filename})
}
