package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new intake repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// CreateConsultation inserts a booking in pending_confirmation state.
func (r *Repo) CreateConsultation(ctx context.Context, c Consultation) (Consultation, error) {
	c.ID = uuid.New()
	c.Status = ConsultationPendingConfirmation

	query := `
		INSERT INTO consultation_bookings (id, user_id, contact_name, company_name, email, phone, preferred_date, message, consent_given, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		c.ID, c.UserID, c.ContactName, c.CompanyName, c.Email, c.Phone, c.PreferredDate, c.Message, c.ConsentGiven, c.Status,
	).Scan(&c.CreatedAt)
	if err != nil {
		return Consultation{}, fmt.Errorf("insert consultation booking: %w", err)
	}
	return c, nil
}

// CreateEnrollment inserts an enrollment in requested state.
func (r *Repo) CreateEnrollment(ctx context.Context, e Enrollment) (Enrollment, error) {
	e.ID = uuid.New()
	e.Status = EnrollmentRequested

	query := `
		INSERT INTO course_enrollments (id, student_id, course_title, participants, amount_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		e.ID, e.StudentID, e.CourseTitle, e.Participants, e.AmountCents, e.Status,
	).Scan(&e.CreatedAt)
	if err != nil {
		return Enrollment{}, fmt.Errorf("insert course enrollment: %w", err)
	}
	return e, nil
}

// CreatePersonalization inserts a personalization request.
func (r *Repo) CreatePersonalization(ctx context.Context, p Personalization) (Personalization, error) {
	p.ID = uuid.New()
	if p.DataFields == nil {
		p.DataFields = []string{}
	}

	query := `
		INSERT INTO personalization_requests (id, user_id, audience, data_fields, uses_personal_data, consent_on_file)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.UserID, p.Audience, p.DataFields, p.UsesPersonalData, p.ConsentOnFile,
	).Scan(&p.CreatedAt)
	if err != nil {
		return Personalization{}, fmt.Errorf("insert personalization request: %w", err)
	}
	return p, nil
}

// ListEnrollments returns a student's enrollments, newest first.
func (r *Repo) ListEnrollments(ctx context.Context, studentID uuid.UUID) ([]Enrollment, error) {
	query := `
		SELECT id, student_id, course_title, participants, amount_cents, status, created_at
		FROM course_enrollments
		WHERE student_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list course enrollments: %w", err)
	}
	enrollments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Enrollment, error) {
		var e Enrollment
		err := row.Scan(&e.ID, &e.StudentID, &e.CourseTitle, &e.Participants, &e.AmountCents, &e.Status, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan course enrollments: %w", err)
	}
	return enrollments, nil
}
