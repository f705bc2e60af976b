package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so login failures don't reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	repo   Repository
	jwt    auth.JWTConfig
	logger zerolog.Logger
}

func NewService(repo Repository, jwt auth.JWTConfig, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		jwt:    jwt,
		logger: logger.With().Str("component", "identity").Logger(),
	}
}

// Register creates a staff account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Employee, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if !validRoles[req.Role] {
		return nil, apperr.Validation("role must be one of admin, receptionist, doctor")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage("hash password", err)
	}

	e := &Employee{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Validation("email %s is already registered", email)
		}
		return nil, apperr.Storage("create employee", err)
	}
	s.logger.Info().Str("employee_id", e.ID.String()).Str("role", e.Role).Msg("employee registered")
	return e, nil
}

// Login verifies the credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	e, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Storage("get employee", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.IssueToken(e.ID.String(), e.Name, e.Role)
	if err != nil {
		return nil, apperr.Storage("issue token", err)
	}
	s.logger.Info().Str("employee_id", e.ID.String()).Msg("employee logged in")
	return &LoginResponse{Token: token, Employee: e}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("employee %s not found", id)
		}
		return nil, apperr.Storage("get employee", err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list employees", err)
	}
	return employees, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("employee %s not found", id)
		}
		return apperr.Storage("delete employee", err)
	}
	s.logger.Info().Str("employee_id", id.String()).Msg("employee deleted")
	return nil
}
