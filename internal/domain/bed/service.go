package bed

import (
	"context"
	"errors"
	"sort"

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
		logger: logger.With().Str("component", "bed").Logger(),
	}
}

// Allocate claims one available bed of the requested type for the patient.
// No free bed is a soft failure: the result carries Assigned=false and the
// caller decides how to proceed. A patient that already holds a bed is
// rejected with an invalid-state error.
func (s *Service) Allocate(ctx context.Context, patientID, bedTypeID uuid.UUID) (*AllocationResult, error) {
	if patientID == uuid.Nil {
		return nil, apperr.Validation("patient id is required")
	}
	if bedTypeID == uuid.Nil {
		return nil, apperr.Validation("bed type id is required")
	}

	exists, err := s.repo.BedTypeExists(ctx, bedTypeID)
	if err != nil {
		return nil, apperr.Storage("check bed type", err)
	}
	if !exists {
		return nil, apperr.NotFound("bed type %s not found", bedTypeID)
	}

	if current, err := s.repo.GetByPatient(ctx, patientID); err == nil && current != nil {
		return nil, apperr.InvalidState("patient %s already holds bed %s", patientID, current.ID)
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Storage("check current bed", err)
	}

	bedID, err := s.repo.Claim(ctx, patientID, bedTypeID)
	if err != nil {
		return nil, apperr.Storage("claim bed", err)
	}
	if bedID == nil {
		s.logger.Warn().
			Str("patient_id", patientID.String()).
			Str("bed_type_id", bedTypeID.String()).
			Msg("no bed of requested type available")
		return &AllocationResult{Assigned: false}, nil
	}

	s.logger.Info().
		Str("patient_id", patientID.String()).
		Str("bed_id", bedID.String()).
		Msg("bed allocated")
	return &AllocationResult{Assigned: true, BedID: bedID}, nil
}

// Release frees the bed held by the patient, if any.
func (s *Service) Release(ctx context.Context, patientID uuid.UUID) (bool, error) {
	released, err := s.repo.Release(ctx, patientID)
	if err != nil {
		return false, apperr.Storage("release bed", err)
	}
	if released {
		s.logger.Info().Str("patient_id", patientID.String()).Msg("bed released")
	}
	return released, nil
}

// GetByPatient returns the bed currently bound to the patient.
func (s *Service) GetByPatient(ctx context.Context, patientID uuid.UUID) (*Bed, error) {
	b, err := s.repo.GetByPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("patient %s holds no bed", patientID)
		}
		return nil, apperr.Storage("get bed by patient", err)
	}
	return b, nil
}

func (s *Service) List(ctx context.Context) ([]*Bed, error) {
	beds, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list beds", err)
	}
	return beds, nil
}

// GroupedByFloor returns the inventory arranged floor by floor.
func (s *Service) GroupedByFloor(ctx context.Context) ([]*FloorGroup, error) {
	beds, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	byFloor := make(map[int][]*Bed)
	for _, b := range beds {
		byFloor[b.Floor] = append(byFloor[b.Floor], b)
	}

	floors := make([]int, 0, len(byFloor))
	for f := range byFloor {
		floors = append(floors, f)
	}
	sort.Ints(floors)

	groups := make([]*FloorGroup, 0, len(floors))
	for _, f := range floors {
		groups = append(groups, &FloorGroup{Floor: f, Beds: byFloor[f]})
	}
	return groups, nil
}
