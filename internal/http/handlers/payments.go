package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketing/internal/services"
)

// PaymentHandler exposes payment endpoints.
type PaymentHandler struct {
	Payments *services.PaymentService
}

type paymentCreateRequest struct {
	TicketID      int64   `json:"ticket_id" binding:"required,gt=0"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required,max=50"`
}

// POST /api/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication_failed", "not authenticated")
		return
	}
	var req paymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_payload", "invalid payload")
		return
	}
	payment, err := h.Payments.Process(c.Request.Context(), services.PaymentCreate{
		TicketID:      req.TicketID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=success pending failed"`
}

// PUT /api/payments/:id/status (admin)
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_payload", "invalid payload")
		return
	}
	payment, err := h.Payments.UpdateStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
