package service

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"aptivai_backend/internal/auth/password"
	"aptivai_backend/internal/auth/repository"
	"aptivai_backend/internal/auth/token"
	"aptivai_backend/internal/auth/transport"
	"aptivai_backend/internal/events"
	"aptivai_backend/platform/apperr"
	"aptivai_backend/platform/logger"
)

const msgInvalidCredentials = "invalid email or password"

type Service struct {
	repo        repository.AuthRepository
	issuer      *token.Issuer
	adminEmails []string
	bus         events.Bus
	log         *logger.Logger
}

// New creates the auth service. Accounts whose email is in adminEmails get the admin role.
func New(repo repository.AuthRepository, issuer *token.Issuer, adminEmails []string, bus events.Bus, log *logger.Logger) *Service {
	normalized := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		normalized = append(normalized, normalizeEmail(e))
	}
	return &Service{repo: repo, issuer: issuer, adminEmails: normalized, bus: bus, log: log}
}

func (s *Service) SignUp(ctx context.Context, req transport.SignUpRequest) (transport.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.AuthResponse{}, apperr.Internal("failed to secure password")
	}

	roles := []string{repository.RoleUser}
	if slices.Contains(s.adminEmails, email) {
		roles = append(roles, repository.RoleAdmin)
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Roles:        roles,
	})
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			s.log.AuthEvent("sign_up", email, false, "email taken")
			return transport.AuthResponse{}, err
		}
		s.log.DatabaseError("create user", err)
		return transport.AuthResponse{}, apperr.Persistence("create user", err)
	}

	s.log.AuthEvent("sign_up", email, true, "")
	_ = s.bus.PublishSync(ctx, events.UserSignedUp{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
	})
	return s.issue(user)
}

func (s *Service) SignIn(ctx context.Context, req transport.SignInRequest) (transport.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			s.log.DatabaseError("get user by email", err)
			return transport.AuthResponse{}, apperr.Persistence("get user by email", err)
		}
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return transport.AuthResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("sign_in", email, false, "wrong password")
		return transport.AuthResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return s.issue(user)
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (transport.ProfileResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return transport.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Roles:     nonNilRoles(user.Roles),
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) issue(user repository.User) (transport.AuthResponse, error) {
	roles := nonNilRoles(user.Roles)
	accessToken, expiresAt, err := s.issuer.Issue(user.ID, roles)
	if err != nil {
		return transport.AuthResponse{}, apperr.Internal("failed to issue access token")
	}
	return transport.AuthResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
		Roles:       roles,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nonNilRoles(roles []string) []string {
	if roles == nil {
		return []string{}
	}
	return roles
}
