package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptivai_backend/internal/compliance/service"
	"aptivai_backend/internal/compliance/transport"
	"aptivai_backend/platform/httpkit"
	"aptivai_backend/platform/validator"
)

// Handler handles HTTP requests for the compliance log.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new compliance handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Query returns entries matching the filters.
// GET /api/v1/admin/compliance?search=&status=&agent=
func (h *Handler) Query(c *gin.Context) {
	req, ok := h.bindQuery(c)
	if !ok {
		return
	}

	result, err := h.svc.Query(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Stats returns counters per status.
// GET /api/v1/admin/compliance/stats
func (h *Handler) Stats(c *gin.Context) {
	result, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Agents lists the agent names found in the log.
// GET /api/v1/admin/compliance/agents
func (h *Handler) Agents(c *gin.Context) {
	result, err := h.svc.Agents(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Export downloads the filtered log as a JSON file.
// GET /api/v1/admin/compliance/export
func (h *Handler) Export(c *gin.Context) {
	req, ok := h.bindQuery(c)
	if !ok {
		return
	}

	fileName, body, err := h.svc.Export(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Attachment(c, fileName, service.ExportContentType, body)
}

// Archive stores the filtered export in object storage and returns a download link.
// POST /api/v1/admin/compliance/exports
func (h *Handler) Archive(c *gin.Context) {
	req, ok := h.bindQuery(c)
	if !ok {
		return
	}

	result, err := h.svc.ArchiveExport(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) bindQuery(c *gin.Context) (transport.QueryRequest, bool) {
	var req transport.QueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return req, false
	}
	return req, true
}
