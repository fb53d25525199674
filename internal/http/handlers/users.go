package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketing/internal/domain/models"
	"ticketing/internal/http/middleware"
	"ticketing/internal/services"
)

// UserHandler exposes account endpoints.
type UserHandler struct {
	Users *services.UserService
}

// currentUserID pulls the authenticated user's id from the request
// claims. Routes using it must sit behind RequireAuth.
func currentUserID(c *gin.Context) (int64, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return 0, false
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, false
	}
	return id, true
}

// GET /api/users (admin)
func (h *UserHandler) List(c *gin.Context) {
	p := parsePagination(c)

	values := map[string]any{}
	if v := c.Query("nickname"); v != "" {
		values["nickname"] = v
	}
	if v := c.Query("email"); v != "" {
		values["email"] = v
	}
	f, err := models.UserFilter.Build(values)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	users, err := h.Users.List(c.Request.Context(), p.Offset, p.Limit, f)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	user, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type userUpdateRequest struct {
	Nickname *string `json:"nickname" binding:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

// PATCH /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_id", err.Error())
		return
	}

	callerID, ok := currentUserID(c)
	claims := middleware.GetClaims(c)
	if !ok || (callerID != id && (claims == nil || !claims.IsAdmin)) {
		respondError(c, http.StatusForbidden, "permission_denied", "cannot update another user")
		return
	}

	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_payload", "invalid payload")
		return
	}
	patch := map[string]any{}
	if req.Nickname != nil {
		patch["nickname"] = *req.Nickname
	}
	if req.IsActive != nil {
		patch["is_active"] = *req.IsActive
	}
	if len(patch) == 0 {
		respondError(c, http.StatusBadRequest, "bad_payload", "empty update")
		return
	}

	user, err := h.Users.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
