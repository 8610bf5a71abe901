package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/campuscore/campuscore-backend/internal/http/response"
	"github.com/campuscore/campuscore-backend/internal/services"
)

type SystemHealthHandler struct {
	healthService services.SystemHealthService
}

func NewSystemHealthHandler(healthService services.SystemHealthService) *SystemHealthHandler {
	return &SystemHealthHandler{healthService: healthService}
}

func (sh *SystemHealthHandler) Snapshot(c *gin.Context) {
	snapshot, err := sh.healthService.Snapshot(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, snapshot)
}
