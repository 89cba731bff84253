package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heala/internal/domain"
	"heala/pkg/validator"
)

func (h *Handler) getEvents(c *gin.Context) {
	var filter domain.EventFilter

	if organizer := c.Query("organizer_id"); organizer != "" {
		filter.OrganizerID = &organizer
	}
	if fromStr := c.Query("from_date"); fromStr != "" {
		from, err := validator.ParseDate(fromStr)
		if err != nil {
			badRequestResponse(c, "invalid from_date")
			return
		}
		filter.FromDate = &from
	}
	filter.Limit, filter.Offset = paginationParams(c)

	events, total, err := h.services.Event.List(c.Request.Context(), filter)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, events, total, filter.Offset/filter.Limit+1, filter.Limit)
}

func (h *Handler) getEventByID(c *gin.Context) {
	event, err := h.services.Event.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, event)
}

func (h *Handler) createEvent(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateEventDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Event.Create(c.Request.Context(), actor, req)
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

func (h *Handler) updateEvent(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.UpdateEventDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Event.Update(c.Request.Context(), actor, c.Param("id"), req); err != nil {
		domainErrorResponse(c, err)
		return
	}

	messageResponse(c, http.StatusOK, "event updated")
}

func (h *Handler) deleteEvent(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Event.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		domainErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

func (h *Handler) registerForEvent(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, err := h.services.Event.Register(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	createdResponse(c, gin.H{"id": id})
}

func (h *Handler) getEventRegistrations(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	registrations, err := h.services.Event.ListRegistrations(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, registrations)
}
