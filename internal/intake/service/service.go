// Package service implements the intake requests that feed the review queue
// and the compliance log.
package service

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"aptivai_backend/internal/events"
	"aptivai_backend/internal/intake/repository"
	"aptivai_backend/internal/intake/transport"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
	"aptivai_backend/platform/phone"
)

// Service handles consultation, enrollment and personalization requests.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new intake service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// BookConsultation stores a booking. Contact details are only accepted with consent.
func (s *Service) BookConsultation(ctx context.Context, userID *uuid.UUID, req transport.BookConsultationRequest) (transport.ConsultationResponse, error) {
	if !req.ConsentGiven {
		return transport.ConsultationResponse{}, apperr.Validation("consent is required to store contact details").
			WithDetails(map[string]string{"consentGiven": "required"})
	}
	e164, err := phone.Parse(req.Phone)
	if err != nil {
		return transport.ConsultationResponse{}, apperr.Validation("invalid phone number").
			WithDetails(map[string]string{"phone": "invalid"})
	}

	booking, err := s.repo.CreateConsultation(ctx, repository.Consultation{
		UserID:        userID,
		ContactName:   strings.TrimSpace(req.ContactName),
		CompanyName:   strings.TrimSpace(req.CompanyName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         e164,
		PreferredDate: optional(req.PreferredDate),
		Message:       optional(req.Message),
		ConsentGiven:  req.ConsentGiven,
	})
	if err != nil {
		s.log.DatabaseError("create consultation booking", err)
		return transport.ConsultationResponse{}, apperr.Persistence("create consultation booking", err)
	}

	s.log.Info("consultation booked", "id", booking.ID, "company", booking.CompanyName)
	_ = s.bus.PublishSync(ctx, events.ConsultationRequested{
		BaseEvent:      events.NewBaseEvent(),
		ConsultationID: booking.ID,
		UserID:         userID,
		ContactName:    booking.ContactName,
		CompanyName:    booking.CompanyName,
		Email:          booking.Email,
		Phone:          booking.Phone,
		PreferredDate:  req.PreferredDate,
		ConsentGiven:   booking.ConsentGiven,
	})

	return transport.ConsultationResponse{
		ID:            booking.ID,
		ContactName:   booking.ContactName,
		CompanyName:   booking.CompanyName,
		Email:         booking.Email,
		Phone:         booking.Phone,
		PreferredDate: booking.PreferredDate,
		Status:        booking.Status,
		CreatedAt:     booking.CreatedAt,
	}, nil
}

// RequestEnrollment stores an enrollment for the caller.
func (s *Service) RequestEnrollment(ctx context.Context, userID uuid.UUID, req transport.RequestEnrollmentRequest) (transport.EnrollmentResponse, error) {
	enrollment, err := s.repo.CreateEnrollment(ctx, repository.Enrollment{
		StudentID:    userID,
		CourseTitle:  strings.TrimSpace(req.CourseTitle),
		Participants: req.Participants,
		AmountCents:  toCents(req.AmountZar),
	})
	if err != nil {
		s.log.DatabaseError("create course enrollment", err)
		return transport.EnrollmentResponse{}, apperr.Persistence("create course enrollment", err)
	}

	s.log.Info("enrollment requested", "id", enrollment.ID, "course", enrollment.CourseTitle, "amountCents", enrollment.AmountCents)
	_ = s.bus.PublishSync(ctx, events.EnrollmentRequested{
		BaseEvent:    events.NewBaseEvent(),
		EnrollmentID: enrollment.ID,
		UserID:       userID,
		CourseTitle:  enrollment.CourseTitle,
		Participants: enrollment.Participants,
		AmountCents:  enrollment.AmountCents,
	})
	return toEnrollmentResponse(enrollment), nil
}

// ListEnrollments returns the caller's enrollments.
func (s *Service) ListEnrollments(ctx context.Context, userID uuid.UUID) (transport.EnrollmentListResponse, error) {
	enrollments, err := s.repo.ListEnrollments(ctx, userID)
	if err != nil {
		s.log.DatabaseError("list course enrollments", err)
		return transport.EnrollmentListResponse{}, apperr.Persistence("list course enrollments", err)
	}
	items := make([]transport.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		items = append(items, toEnrollmentResponse(e))
	}
	return transport.EnrollmentListResponse{Items: items}, nil
}

// RequestPersonalization stores a personalization request. Requests that
// would use personal data without consent on file are held for review.
func (s *Service) RequestPersonalization(ctx context.Context, userID *uuid.UUID, req transport.RequestPersonalizationRequest) (transport.PersonalizationResponse, error) {
	fields := make([]string, 0, len(req.DataFields))
	for _, f := range req.DataFields {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}

	request, err := s.repo.CreatePersonalization(ctx, repository.Personalization{
		UserID:           userID,
		Audience:         strings.TrimSpace(req.Audience),
		DataFields:       fields,
		UsesPersonalData: req.UsesPersonalData,
		ConsentOnFile:    req.ConsentOnFile,
	})
	if err != nil {
		s.log.DatabaseError("create personalization request", err)
		return transport.PersonalizationResponse{}, apperr.Persistence("create personalization request", err)
	}

	held := request.UsesPersonalData && !request.ConsentOnFile
	if held {
		s.log.Warn("personalization held for review", "id", request.ID, "fields", request.DataFields)
	}
	_ = s.bus.PublishSync(ctx, events.PersonalizationRequested{
		BaseEvent:        events.NewBaseEvent(),
		RequestID:        request.ID,
		UserID:           userID,
		Audience:         request.Audience,
		DataFields:       request.DataFields,
		UsesPersonalData: request.UsesPersonalData,
		ConsentOnFile:    request.ConsentOnFile,
	})

	return transport.PersonalizationResponse{
		ID:            request.ID,
		Audience:      request.Audience,
		DataFields:    request.DataFields,
		HeldForReview: held,
		CreatedAt:     request.CreatedAt,
	}, nil
}

func toEnrollmentResponse(e repository.Enrollment) transport.EnrollmentResponse {
	return transport.EnrollmentResponse{
		ID:           e.ID,
		CourseTitle:  e.CourseTitle,
		Participants: e.Participants,
		AmountCents:  e.AmountCents,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
}

func toCents(zar float64) int64 {
	return int64(math.Round(zar * 100))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
