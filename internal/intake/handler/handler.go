package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptivai_backend/internal/intake/service"
	"aptivai_backend/internal/intake/transport"
	"aptivai_backend/platform/httpkit"
	"aptivai_backend/platform/validator"
)

// Handler handles HTTP requests for intake forms.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new intake handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// BookConsultation stores a consultation booking.
// POST /api/v1/consultations
func (h *Handler) BookConsultation(c *gin.Context) {
	var req transport.BookConsultationRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.BookConsultation(c.Request.Context(), httpkit.OptionalUserID(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// RequestEnrollment stores a course enrollment for the caller.
// POST /api/v1/enrollments
func (h *Handler) RequestEnrollment(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	var req transport.RequestEnrollmentRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.RequestEnrollment(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListEnrollments returns the caller's enrollments.
// GET /api/v1/enrollments
func (h *Handler) ListEnrollments(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ListEnrollments(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RequestPersonalization stores a personalization request.
// POST /api/v1/personalization
func (h *Handler) RequestPersonalization(c *gin.Context) {
	var req transport.RequestPersonalizationRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.RequestPersonalization(c.Request.Context(), httpkit.OptionalUserID(c), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return false
	}
	return true
}
