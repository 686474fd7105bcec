package transport

import (
	"time"

	"github.com/google/uuid"
)

// BookConsultationRequest is a consultation booking from the scheduler agent or the site form.
type BookConsultationRequest struct {
	ContactName   string `json:"contactName" validate:"required,min=2,max=120"`
	CompanyName   string `json:"companyName" validate:"required,min=2,max=160"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Phone         string `json:"phone" validate:"required,max=32"`
	PreferredDate string `json:"preferredDate" validate:"omitempty,max=64"`
	Message       string `json:"message" validate:"max=2000"`
	ConsentGiven  bool   `json:"consentGiven"`
}

// ConsultationResponse is a stored booking.
type ConsultationResponse struct {
	ID            uuid.UUID `json:"id"`
	ContactName   string    `json:"contactName"`
	CompanyName   string    `json:"companyName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PreferredDate *string   `json:"preferredDate,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RequestEnrollmentRequest enrolls the caller's team in a course.
type RequestEnrollmentRequest struct {
	CourseTitle  string  `json:"courseTitle" validate:"required,min=2,max=200"`
	Participants int     `json:"participants" validate:"required,min=1,max=500"`
	AmountZar    float64 `json:"amountZar" validate:"min=0,max=10000000"`
}

// EnrollmentResponse is a stored enrollment.
type EnrollmentResponse struct {
	ID           uuid.UUID `json:"id"`
	CourseTitle  string    `json:"courseTitle"`
	Participants int       `json:"participants"`
	AmountCents  int64     `json:"amountCents"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EnrollmentListResponse lists the caller's enrollments.
type EnrollmentListResponse struct {
	Items []EnrollmentResponse `json:"items"`
}

// RequestPersonalizationRequest asks the personalization agent to tailor content.
type RequestPersonalizationRequest struct {
	Audience         string   `json:"audience" validate:"required,min=2,max=200"`
	DataFields       []string `json:"dataFields" validate:"max=20,dive,required,max=80"`
	UsesPersonalData bool     `json:"usesPersonalData"`
	ConsentOnFile    bool     `json:"consentOnFile"`
}

// PersonalizationResponse is a stored request. HeldForReview is set when
// personal data would be used without consent on file.
type PersonalizationResponse struct {
	ID            uuid.UUID `json:"id"`
	Audience      string    `json:"audience"`
	DataFields    []string  `json:"dataFields"`
	HeldForReview bool      `json:"heldForReview"`
	CreatedAt     time.Time `json:"createdAt"`
}
