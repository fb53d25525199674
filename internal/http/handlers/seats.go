package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticketing/internal/services"
)

// SeatHandler exposes seat-map endpoints.
type SeatHandler struct {
	Seats *services.SeatService
}

type seatCreateRequest struct {
	EventID    int64   `json:"event_id" binding:"required,gt=0"`
	SeatNumber string  `json:"seat_number" binding:"required,max=10"`
	SeatRow    string  `json:"seat_row" binding:"required,max=10"`
	Price      float64 `json:"price" binding:"gte=0"`
}

// POST /api/seats
func (h *SeatHandler) Create(c *gin.Context) {
	var req seatCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_payload", "invalid payload")
		return
	}
	seat, err := h.Seats.Add(c.Request.Context(), services.SeatCreate{
		EventID:    req.EventID,
		SeatNumber: req.SeatNumber,
		SeatRow:    req.SeatRow,
		Price:      req.Price,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, seat)
}

// GET /api/events/:id/seats lists the available seats for the event.
func (h *SeatHandler) Available(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID <= 0 {
		respondError(c, http.StatusBadRequest, "bad_id", "invalid event id")
		return
	}
	p := parsePagination(c)
	seats, err := h.Seats.Available(c.Request.Context(), eventID, p.Offset, p.Limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, seats)
}

// POST /api/seats/:id/reserve
func (h *SeatHandler) Reserve(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	seat, err := h.Seats.Reserve(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, seat)
}
