package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketing/internal/services"
)

// TicketHandler exposes reservation endpoints.
type TicketHandler struct {
	Tickets *services.TicketService
	Docs    *services.DocsService
}

type ticketCreateRequest struct {
	EventID    int64   `json:"event_id" binding:"required,gt=0"`
	TicketType string  `json:"ticket_type" binding:"omitempty,max=50"`
	Price      float64 `json:"price" binding:"gte=0"`
	SeatID     *int64  `json:"seat_id" binding:"omitempty,gt=0"`
}

// POST /api/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication_failed", "not authenticated")
		return
	}
	var req ticketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_payload", "invalid payload")
		return
	}
	ticket, err := h.Tickets.Create(c.Request.Context(), services.TicketCreate{
		EventID:    req.EventID,
		TicketType: req.TicketType,
		Price:      req.Price,
		SeatID:     req.SeatID,
	}, ownerID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// GET /api/tickets returns the caller's own tickets.
func (h *TicketHandler) ListMine(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication_failed", "not authenticated")
		return
	}
	p := parsePagination(c)
	tickets, err := h.Tickets.ListByOwner(c.Request.Context(), ownerID, p.Offset, p.Limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GET /api/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	ticket, err := h.Tickets.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// GET /api/tickets/:id/e-ticket
func (h *TicketHandler) ETicket(c *gin.Context) {
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
	pdf, filename, err := h.Docs.ETicket(c.Request.Context(), id, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
