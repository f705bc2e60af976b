package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/db"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateBedType(ctx context.Context, bt *BedType) error {
	if bt.Name == "" {
		return apperr.Validation("bed type name is required")
	}
	if bt.PricePerDay < 0 {
		return apperr.Validation("price per day must not be negative")
	}
	if err := s.repo.CreateBedType(ctx, bt); err != nil {
		return apperr.Storage("create bed type", err)
	}
	return nil
}

func (s *Service) GetBedType(ctx context.Context, id uuid.UUID) (*BedType, error) {
	bt, err := s.repo.GetBedType(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("bed type %s not found", id)
		}
		return nil, apperr.Storage("get bed type", err)
	}
	return bt, nil
}

func (s *Service) UpdateBedType(ctx context.Context, bt *BedType) error {
	if bt.Name == "" {
		return apperr.Validation("bed type name is required")
	}
	if bt.PricePerDay < 0 {
		return apperr.Validation("price per day must not be negative")
	}
	if err := s.repo.UpdateBedType(ctx, bt); err != nil {
		return apperr.Storage("update bed type", err)
	}
	return nil
}

// DeleteBedType removes a catalog entry. Deleting a type still referenced by
// any bed (or by an admitted patient's request) is rejected and the row is
// left intact.
func (s *Service) DeleteBedType(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBedType(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return apperr.ResourceInUse("bed type %s is still referenced by beds or patients", id)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("bed type %s not found", id)
		}
		return apperr.Storage("delete bed type", err)
	}
	return nil
}

func (s *Service) ListBedTypes(ctx context.Context) ([]*BedType, error) {
	types, err := s.repo.ListBedTypes(ctx)
	if err != nil {
		return nil, apperr.Storage("list bed types", err)
	}
	return types, nil
}

func (s *Service) CreateIllness(ctx context.Context, il *Illness) error {
	if il.Name == "" {
		return apperr.Validation("illness name is required")
	}
	if err := s.repo.CreateIllness(ctx, il); err != nil {
		return apperr.Storage("create illness", err)
	}
	return nil
}

func (s *Service) UpdateIllness(ctx context.Context, il *Illness) error {
	if il.Name == "" {
		return apperr.Validation("illness name is required")
	}
	if err := s.repo.UpdateIllness(ctx, il); err != nil {
		return apperr.Storage("update illness", err)
	}
	return nil
}

func (s *Service) DeleteIllness(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteIllness(ctx, id); err != nil {
		if db.IsForeignKeyViolation(err) {
			return apperr.ResourceInUse("illness %s is still referenced by patients", id)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("illness %s not found", id)
		}
		return apperr.Storage("delete illness", err)
	}
	return nil
}

func (s *Service) ListIllnesses(ctx context.Context) ([]*Illness, error) {
	illnesses, err := s.repo.ListIllnesses(ctx)
	if err != nil {
		return nil, apperr.Storage("list illnesses", err)
	}
	return illnesses, nil
}
