package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptivai_backend/internal/agents/service"
	"aptivai_backend/internal/agents/transport"
	"aptivai_backend/platform/httpkit"
	"aptivai_backend/platform/validator"
)

// Handler handles HTTP requests for agent chat.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new agents handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns the available agents.
// GET /api/v1/agents
func (h *Handler) List(c *gin.Context) {
	httpkit.OK(c, h.svc.List())
}

// Chat sends one message to an agent.
// POST /api/v1/agents/:name/chat
func (h *Handler) Chat(c *gin.Context) {
	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	result, err := h.svc.Chat(c.Request.Context(), httpkit.OptionalUserID(c), c.Param("name"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
