package transport

import (
	"time"

	"github.com/google/uuid"
)

// DeletionResponse confirms an account deletion.
type DeletionResponse struct {
	Success            bool      `json:"success"`
	Message            string    `json:"message"`
	UserID             uuid.UUID `json:"userId"`
	EnrollmentsRemoved int64     `json:"enrollmentsRemoved"`
	RolesRemoved       int64     `json:"rolesRemoved"`
	DeletedAt          time.Time `json:"deletedAt"`
}
