package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/db"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "appointment").Logger(),
	}
}

// Create books a slot. Slot contention is not checked: the booked-slot
// lookup exists so clients can steer around taken slots, but overlapping
// bookings are allowed.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if strings.TrimSpace(a.PatientName) == "" {
		return apperr.Validation("patient name is required")
	}
	if a.DoctorID == uuid.Nil {
		return apperr.Validation("doctor id is required")
	}
	if a.Date.IsZero() {
		return apperr.Validation("date is required")
	}
	if strings.TrimSpace(a.Slot) == "" {
		return apperr.Validation("slot is required")
	}

	a.Status = StatusScheduled
	if err := s.repo.Create(ctx, a); err != nil {
		if db.IsForeignKeyViolation(err) {
			return apperr.NotFound("doctor %s not found", a.DoctorID)
		}
		return apperr.Storage("create appointment", err)
	}
	s.logger.Info().
		Str("appointment_id", a.ID.String()).
		Str("doctor_id", a.DoctorID.String()).
		Str("slot", a.Slot).
		Msg("appointment booked")
	return nil
}

// Cancel marks a booked appointment cancelled, freeing its slot.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == StatusCancelled {
		return apperr.InvalidState("appointment %s is already cancelled", id)
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return apperr.Storage("cancel appointment", err)
	}
	s.logger.Info().Str("appointment_id", id.String()).Msg("appointment cancelled")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("appointment %s not found", id)
		}
		return nil, apperr.Storage("get appointment", err)
	}
	return a, nil
}

func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]*Appointment, error) {
	appts, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, apperr.Storage("list appointments", err)
	}
	return appts, nil
}

func (s *Service) ListByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error) {
	appts, err := s.repo.ListByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, apperr.Storage("list appointments by doctor", err)
	}
	return appts, nil
}

func (s *Service) BookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	slots, err := s.repo.BookedSlots(ctx, doctorID, date)
	if err != nil {
		return nil, apperr.Storage("list booked slots", err)
	}
	return slots, nil
}
