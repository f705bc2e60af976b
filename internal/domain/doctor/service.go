package doctor

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apperr"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "doctor").Logger(),
	}
}

func validate(d *Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return apperr.Validation("doctor name is required")
	}
	if d.ConsultationFee < 0 {
		return apperr.Validation("consultation fee must not be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if err := validate(d); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return apperr.Storage("create doctor", err)
	}
	s.logger.Info().Str("doctor_id", d.ID.String()).Msg("doctor created")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("doctor %s not found", id)
		}
		return nil, apperr.Storage("get doctor", err)
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	if err := validate(d); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("doctor %s not found", d.ID)
		}
		return apperr.Storage("update doctor", err)
	}
	return nil
}

// Delete removes a doctor. A doctor with currently-admitted patients cannot
// be removed; discharged stays keep their history because the patient rows
// drop the reference on delete.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.repo.ActivePatientCount(ctx, id)
	if err != nil {
		return apperr.Storage("count active patients", err)
	}
	if count > 0 {
		return apperr.ResourceInUse("doctor %s attends %d admitted patients", id, count)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("doctor %s not found", id)
		}
		return apperr.Storage("delete doctor", err)
	}
	s.logger.Info().Str("doctor_id", id.String()).Msg("doctor deleted")
	return nil
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list doctors", err)
	}
	return doctors, nil
}
