// Package repository stores inbound consultation, enrollment and
// personalization requests.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Booking statuses.
const (
	ConsultationPendingConfirmation = "pending_confirmation"
	EnrollmentRequested             = "requested"
)

// Consultation is a consultation booking request.
type Consultation struct {
	ID            uuid.UUID
	UserID        *uuid.UUID
	ContactName   string
	CompanyName   string
	Email         string
	Phone         string
	PreferredDate *string
	Message       *string
	ConsentGiven  bool
	Status        string
	CreatedAt     time.Time
}

// Enrollment is a course enrollment request.
type Enrollment struct {
	ID           uuid.UUID
	StudentID    uuid.UUID
	CourseTitle  string
	Participants int
	AmountCents  int64
	Status       string
	CreatedAt    time.Time
}

// Personalization is a content personalization request.
type Personalization struct {
	ID               uuid.UUID
	UserID           *uuid.UUID
	Audience         string
	DataFields       []string
	UsesPersonalData bool
	ConsentOnFile    bool
	CreatedAt        time.Time
}

// Repository persists intake requests.
type Repository interface {
	CreateConsultation(ctx context.Context, c Consultation) (Consultation, error)
	CreateEnrollment(ctx context.Context, e Enrollment) (Enrollment, error)
	CreatePersonalization(ctx context.Context, p Personalization) (Personalization, error)
	ListEnrollments(ctx context.Context, studentID uuid.UUID) ([]Enrollment, error)
}
