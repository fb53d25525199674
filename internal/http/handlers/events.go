package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ticketing/internal/domain/models"
	"ticketing/internal/services"
)

// EventHandler exposes event endpoints.
type EventHandler struct {
	Events *services.EventService
}

type eventCreateRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description *string   `json:"description"`
	Location    string    `json:"location" binding:"required,max=255"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
}

// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication_failed", "not authenticated")
		return
	}
	var req eventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_payload", "invalid payload")
		return
	}
	event, err := h.Events.Create(c.Request.Context(), services.EventCreate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}, ownerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	p := parsePagination(c)

	values := map[string]any{}
	if v := c.Query("title"); v != "" {
		values["title"] = v
	}
	if v := c.Query("location"); v != "" {
		values["location"] = v
	}
	if v := c.Query("starting_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "bad_query", "starting_after must be RFC3339")
			return
		}
		values["start_time"] = t
	}
	f, err := models.EventFilter.Build(values)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	events, err := h.Events.List(c.Request.Context(), p.Offset, p.Limit, f)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	event, err := h.Events.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

type eventUpdateRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Location    *string    `json:"location" binding:"omitempty,max=255"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// PATCH /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication_failed", "not authenticated")
		return
	}
	var req eventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_payload", "invalid payload")
		return
	}
	patch := map[string]any{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Location != nil {
		patch["location"] = *req.Location
	}
	if req.StartTime != nil {
		patch["start_time"] = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		patch["end_time"] = req.EndTime.UTC()
	}
	if len(patch) == 0 {
		respondError(c, http.StatusBadRequest, "bad_payload", "empty update")
		return
	}

	event, err := h.Events.Update(c.Request.Context(), id, patch, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication_failed", "not authenticated")
		return
	}
	event, err := h.Events.Delete(c.Request.Context(), id, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
