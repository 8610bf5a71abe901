package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/campuscore-backend/internal/http/response"
	"github.com/campuscore/campuscore-backend/internal/services"
)

type NewsEventHandler struct {
	newsEventService services.NewsEventService
}

func NewNewsEventHandler(newsEventService services.NewsEventService) *NewsEventHandler {
	return &NewsEventHandler{newsEventService: newsEventService}
}

type newsEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	Type        string     `json:"type"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (r newsEventRequest) toInput() services.NewsEventInput {
	return services.NewsEventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Type:        r.Type,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

func (nh *NewsEventHandler) Create(c *gin.Context) {
	var req newsEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := nh.newsEventService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, entry)
}

func (nh *NewsEventHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req newsEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := nh.newsEventService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

func (nh *NewsEventHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := nh.newsEventService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (nh *NewsEventHandler) GetByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	entry, err := nh.newsEventService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

// List returns all feed entries, optionally filtered via the type query
// parameter ("news" or "event").
func (nh *NewsEventHandler) List(c *gin.Context) {
	entries, err := nh.newsEventService.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, entries)
}
