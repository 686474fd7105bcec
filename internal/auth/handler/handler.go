package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptivai_backend/internal/auth/service"
	"aptivai_backend/internal/auth/transport"
	authvalidator "aptivai_backend/internal/auth/validator"
	"aptivai_backend/platform/httpkit"
	"aptivai_backend/platform/validator"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-up", h.SignUp)
	rg.POST("/sign-in", h.SignIn)
}

// SignUp creates an account and returns an access token.
// POST /api/v1/auth/sign-up
func (h *Handler) SignUp(c *gin.Context) {
	var req transport.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		details := validator.Fields(err)
		for _, field := range details {
			if field == "Password:"+authvalidator.StrongPasswordTag {
				httpkit.Error(c, http.StatusBadRequest, authvalidator.PasswordPolicy, details)
				return
			}
		}
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, details)
		return
	}

	result, err := h.svc.SignUp(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// SignIn exchanges credentials for an access token.
// POST /api/v1/auth/sign-in
func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}

	result, err := h.svc.SignIn(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetMe returns the caller's profile.
// GET /api/v1/users/me
func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.GetMe(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
