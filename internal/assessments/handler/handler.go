package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aptivai_backend/internal/assessments/service"
	"aptivai_backend/internal/assessments/transport"
	"aptivai_backend/internal/scoring"
	"aptivai_backend/platform/httpkit"
	"aptivai_backend/platform/validator"
)

// Handler handles HTTP requests for readiness assessments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid assessment ID"
)

// New creates a new assessments handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Questions returns the questionnaire.
// GET /api/v1/assessments/questions
func (h *Handler) Questions(c *gin.Context) {
	httpkit.OK(c, h.svc.Questions())
}

// Submit scores and records a completed questionnaire. Anonymous callers are allowed.
// POST /api/v1/assessments
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), httpkit.OptionalUserID(c), scoring.Answers(req.Responses), req.ConsentGiven)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetByID returns one of the caller's assessments.
// GET /api/v1/assessments/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), identity.UserID(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// List returns the caller's assessments.
// GET /api/v1/assessments
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ListByUser(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
