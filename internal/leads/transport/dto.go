package transport

import (
	"time"

	"github.com/google/uuid"
)

// ListLeadsRequest filters the admin lead list.
type ListLeadsRequest struct {
	Priority string `form:"priority" validate:"omitempty,oneof=low medium high critical"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ScoreLeadRequest carries the engagement signals of one lead.
type ScoreLeadRequest struct {
	UserID                uuid.UUID `json:"userId" validate:"required"`
	Role                  string    `json:"role" validate:"max=100"`
	Employees             int       `json:"employees" validate:"min=0"`
	SpecificRequirements  bool      `json:"specificRequirements"`
	BudgetDiscussed       bool      `json:"budgetDiscussed"`
	Touchpoints           int       `json:"touchpoints" validate:"min=0"`
	ResourcesDownloaded   int       `json:"resourcesDownloaded" validate:"min=0"`
	ConsultationRequested bool      `json:"consultationRequested"`
}

// UpdateCompanyRequest sets company descriptors on a lead profile.
type UpdateCompanyRequest struct {
	CompanySize *string  `json:"companySize,omitempty" validate:"omitempty,max=100"`
	Industry    *string  `json:"industry,omitempty" validate:"omitempty,max=100"`
	PainPoints  []string `json:"painPoints,omitempty" validate:"omitempty,max=20,dive,max=300"`
}

// LeadResponse is a lead profile.
type LeadResponse struct {
	ID                   uuid.UUID `json:"id"`
	UserID               uuid.UUID `json:"userId"`
	ReadinessScore       *int      `json:"aiReadinessScore,omitempty"`
	Priority             *string   `json:"priorityLevel,omitempty"`
	RecommendedSolutions []string  `json:"recommendedSolutions"`
	LeadScore            *int      `json:"leadScore,omitempty"`
	CompanySize          *string   `json:"companySize,omitempty"`
	Industry             *string   `json:"industry,omitempty"`
	PainPoints           []string  `json:"painPoints"`
	LastInteraction      time.Time `json:"lastInteraction"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// LeadListResponse is a page of lead profiles.
type LeadListResponse struct {
	Items    []LeadResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// LeadScoreResponse is the outcome of scoring a lead.
type LeadScoreResponse struct {
	Lead    LeadResponse `json:"lead"`
	Score   int          `json:"score"`
	Band    string       `json:"band"`
	Reasons []string     `json:"reasons"`
}
