package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"aptivai_backend/internal/events"
	"aptivai_backend/internal/intake/repository"
	"aptivai_backend/internal/intake/transport"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

func newTestService() (*Service, *repository.Memory, *[]events.Event) {
	log := logger.New("development")
	repo := repository.NewMemory()
	bus := events.NewInMemoryBus(log)
	published := &[]events.Event{}
	capture := events.HandlerFunc(func(_ context.Context, e events.Event) error {
		*published = append(*published, e)
		return nil
	})
	bus.Subscribe(events.ConsultationRequested{}.EventName(), capture)
	bus.Subscribe(events.EnrollmentRequested{}.EventName(), capture)
	bus.Subscribe(events.PersonalizationRequested{}.EventName(), capture)
	return New(repo, bus, log), repo, published
}

func validBooking() transport.BookConsultationRequest {
	return transport.BookConsultationRequest{
		ContactName:   "Thandi Mokoena",
		CompanyName:   "Acme Logistics",
		Email:         "Thandi@Acme.co.za",
		Phone:         "082 123 4567",
		PreferredDate: "next Tuesday morning",
		ConsentGiven:  true,
	}
}

func TestBookConsultationNormalizesAndPublishes(t *testing.T) {
	svc, repo, published := newTestService()

	got, err := svc.BookConsultation(context.Background(), nil, validBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Phone != "+27821234567" || got.Email != "thandi@acme.co.za" {
		t.Errorf("expected normalized contact details, got %+v", got)
	}
	if got.Status != repository.ConsultationPendingConfirmation {
		t.Errorf("expected pending confirmation, got %s", got.Status)
	}
	if len(repo.Consultations) != 1 || len(*published) != 1 {
		t.Fatalf("expected one stored booking and one event, got %d and %d", len(repo.Consultations), len(*published))
	}
	if e := (*published)[0].(events.ConsultationRequested); e.ConsultationID != got.ID || e.CompanyName != "Acme Logistics" {
		t.Errorf("unexpected event %+v", e)
	}
}

func TestBookConsultationRequiresConsentAndValidPhone(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*transport.BookConsultationRequest)
	}{
		{name: "no consent", mutate: func(r *transport.BookConsultationRequest) { r.ConsentGiven = false }},
		{name: "bad phone", mutate: func(r *transport.BookConsultationRequest) { r.Phone = "call me" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, published := newTestService()
			req := validBooking()
			tt.mutate(&req)

			_, err := svc.BookConsultation(context.Background(), nil, req)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.Consultations) != 0 || len(*published) != 0 {
				t.Error("nothing may be stored or published")
			}
		})
	}
}

func TestRequestEnrollmentConvertsAmount(t *testing.T) {
	svc, _, published := newTestService()
	userID := uuid.New()

	got, err := svc.RequestEnrollment(context.Background(), userID, transport.RequestEnrollmentRequest{
		CourseTitle:  "Module 2: Practical AI Applications",
		Participants: 5,
		AmountZar:    75000.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AmountCents != 7500050 {
		t.Errorf("expected 7500050 cents, got %d", got.AmountCents)
	}
	e := (*published)[0].(events.EnrollmentRequested)
	if e.UserID != userID || e.AmountCents != 7500050 {
		t.Errorf("unexpected event %+v", e)
	}

	list, _ := svc.ListEnrollments(context.Background(), userID)
	if len(list.Items) != 1 {
		t.Errorf("expected one enrollment, got %d", len(list.Items))
	}
	other, _ := svc.ListEnrollments(context.Background(), uuid.New())
	if len(other.Items) != 0 {
		t.Error("enrollments leaked across users")
	}
}

func TestRequestPersonalizationHoldsPersonalDataWithoutConsent(t *testing.T) {
	tests := []struct {
		name     string
		personal bool
		consent  bool
		wantHeld bool
	}{
		{name: "personal data without consent", personal: true, consent: false, wantHeld: true},
		{name: "personal data with consent", personal: true, consent: true, wantHeld: false},
		{name: "aggregate data", personal: false, consent: false, wantHeld: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, published := newTestService()
			got, err := svc.RequestPersonalization(context.Background(), nil, transport.RequestPersonalizationRequest{
				Audience:         "executives",
				DataFields:       []string{"Email", " ", "Job title"},
				UsesPersonalData: tt.personal,
				ConsentOnFile:    tt.consent,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.HeldForReview != tt.wantHeld {
				t.Errorf("expected held=%v, got %v", tt.wantHeld, got.HeldForReview)
			}
			if len(got.DataFields) != 2 {
				t.Errorf("expected blank fields dropped, got %v", got.DataFields)
			}
			if len(*published) != 1 {
				t.Errorf("expected one event, got %d", len(*published))
			}
		})
	}
}
