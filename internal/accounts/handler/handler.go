package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aptivai_backend/internal/accounts/service"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/httpkit"
)

// Handler handles HTTP requests for account data rights.
type Handler struct {
	svc *service.Service
}

const msgInvalidID = "invalid user ID"

// New creates a new accounts handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Delete removes the caller's account.
// DELETE /api/v1/accounts/:userId
func (h *Handler) Delete(c *gin.Context) {
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Delete(c.Request.Context(), identity.UserID(), targetID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ExportData downloads everything stored about the caller.
// GET /api/v1/accounts/:userId/data
func (h *Handler) ExportData(c *gin.Context) {
	targetID, ok := parseUserID(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	data, err := h.svc.ExportPersonalData(c.Request.Context(), identity.UserID(), targetID)
	if httpkit.HandleError(c, err) {
		return
	}
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		httpkit.HandleError(c, apperr.Internal("failed to render personal data"))
		return
	}
	httpkit.Attachment(c, fmt.Sprintf("personal-data-%s.json", targetID), "application/json", body)
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
