package patient

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

// BedAllocator is the slice of the bed service admissions depend on.
type BedAllocator interface {
	Allocate(ctx context.Context, patientID, bedTypeID uuid.UUID) (*AllocationResult, error)
	Release(ctx context.Context, patientID uuid.UUID) (bool, error)
}

type Service struct {
	repo   Repository
	beds   BedAllocator
	logger zerolog.Logger
}

func NewService(repo Repository, beds BedAllocator, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		beds:   beds,
		logger: logger.With().Str("component", "patient").Logger(),
	}
}

func (s *Service) validate(p *Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("patient name is required")
	}
	if p.Age < 0 {
		return apperr.Validation("age must not be negative")
	}
	if !validSeverities[p.DiseaseSeverity] {
		return apperr.Validation("disease severity must be one of Mild, Moderate, Severe")
	}
	if p.IllnessID == nil && (p.OtherIllnessText == nil || strings.TrimSpace(*p.OtherIllnessText) == "") {
		return apperr.Validation("an illness or a free-text description is required")
	}
	if p.DiseaseSeverity != SeverityMild && p.RequestedBedTypeID == nil {
		return apperr.Validation("a bed type is required for severity above Mild")
	}
	return nil
}

// Admit creates the patient record and, for severities above Mild, tries to
// claim a bed of the requested type. The record is persisted first: a full
// ward must never turn an admission away, so an allocation miss (or failure)
// only logs a warning and the response reports the unassigned state.
func (s *Service) Admit(ctx context.Context, p *Patient) (*AdmitResponse, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}

	p.AdmittedDate = time.Now().UTC()
	p.DischargedDate = nil
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperr.Storage("create patient", err)
	}
	s.logger.Info().
		Str("patient_id", p.ID.String()).
		Str("severity", p.DiseaseSeverity).
		Msg("patient admitted")

	resp := &AdmitResponse{Patient: p}
	if p.DiseaseSeverity == SeverityMild {
		return resp, nil
	}

	res, err := s.beds.Allocate(ctx, p.ID, *p.RequestedBedTypeID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("patient_id", p.ID.String()).
			Msg("bed allocation failed after admission")
		resp.Allocation = &AllocationResult{Assigned: false}
		return resp, nil
	}
	resp.Allocation = res
	if res.Assigned {
		p.BedID = res.BedID
	}
	return resp, nil
}

// AllocateBed retries bed allocation for an already-admitted patient, e.g.
// after a bed frees up or the severity worsened. Unlike at admission time,
// errors here surface to the caller.
func (s *Service) AllocateBed(ctx context.Context, patientID, bedTypeID uuid.UUID) (*AllocationResult, error) {
	p, err := s.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !p.Active() {
		return nil, apperr.InvalidState("patient %s is discharged", patientID)
	}
	return s.beds.Allocate(ctx, patientID, bedTypeID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("patient %s not found", id)
		}
		return nil, apperr.Storage("get patient", err)
	}
	return p, nil
}

// Update rewrites the editable fields. Admission and discharge dates are
// lifecycle-owned and never touched here.
func (s *Service) Update(ctx context.Context, p *Patient) (*Patient, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("patient %s not found", p.ID)
		}
		return nil, apperr.Storage("update patient", err)
	}
	return s.Get(ctx, p.ID)
}

// Delete removes the patient and frees any held bed. A patient with billing
// history is protected by the referential constraint and reported in use.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("patient %s not found", id)
		}
		if db.IsForeignKeyViolation(err) {
			return apperr.ResourceInUse("patient %s has billing records and cannot be deleted", id)
		}
		return apperr.Storage("delete patient", err)
	}
	s.logger.Info().Str("patient_id", id.String()).Msg("patient deleted")
	return nil
}

func (s *Service) ListAdmitted(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	patients, total, err := s.repo.ListAdmitted(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage("list admitted patients", err)
	}
	return patients, total, nil
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	patients, total, err := s.repo.ListByDoctor(ctx, doctorID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage("list patients by doctor", err)
	}
	return patients, total, nil
}
