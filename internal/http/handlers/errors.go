package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketing/internal/http/middleware"
	"ticketing/internal/query"
	"ticketing/internal/repository"
	"ticketing/internal/services"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondServiceError maps service and repository errors to HTTP
// responses.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLogin):
		respondError(c, http.StatusBadRequest, "login_failed", err.Error())
	case errors.Is(err, services.ErrRegistration):
		respondError(c, http.StatusBadRequest, "registration_failed", err.Error())
	case errors.Is(err, services.ErrInvalidRefreshToken):
		respondError(c, http.StatusForbidden, "invalid_refresh_token", err.Error())
	case errors.Is(err, services.ErrAuthentication):
		respondError(c, http.StatusUnauthorized, "authentication_failed", err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrPermission):
		respondError(c, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, query.ErrValidation), errors.Is(err, query.ErrTypeMismatch):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, repository.ErrIntegrity):
		respondError(c, http.StatusConflict, "integrity_error", err.Error())
	case errors.Is(err, repository.ErrInvalidQuery):
		respondError(c, http.StatusBadRequest, "invalid_query", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
