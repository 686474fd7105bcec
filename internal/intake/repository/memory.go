package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Repository.
type Memory struct {
	mu               sync.Mutex
	Consultations    []Consultation
	Enrollments      []Enrollment
	Personalizations []Personalization
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) CreateConsultation(_ context.Context, c Consultation) (Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.New()
	c.Status = ConsultationPendingConfirmation
	c.CreatedAt = time.Now().UTC()
	m.Consultations = append(m.Consultations, c)
	return c, nil
}

func (m *Memory) CreateEnrollment(_ context.Context, e Enrollment) (Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = uuid.New()
	e.Status = EnrollmentRequested
	e.CreatedAt = time.Now().UTC()
	m.Enrollments = append(m.Enrollments, e)
	return e, nil
}

func (m *Memory) CreatePersonalization(_ context.Context, p Personalization) (Personalization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = uuid.New()
	p.DataFields = slices.Clone(p.DataFields)
	if p.DataFields == nil {
		p.DataFields = []string{}
	}
	p.CreatedAt = time.Now().UTC()
	m.Personalizations = append(m.Personalizations, p)
	return p, nil
}

func (m *Memory) ListEnrollments(_ context.Context, studentID uuid.UUID) ([]Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Enrollment
	for _, e := range m.Enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
