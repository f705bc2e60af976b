package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage interface for the resource catalog.
type Repository interface {
	CreateBedType(ctx context.Context, bt *BedType) error
	GetBedType(ctx context.Context, id uuid.UUID) (*BedType, error)
	UpdateBedType(ctx context.Context, bt *BedType) error
	DeleteBedType(ctx context.Context, id uuid.UUID) error
	ListBedTypes(ctx context.Context) ([]*BedType, error)

	CreateIllness(ctx context.Context, il *Illness) error
	UpdateIllness(ctx context.Context, il *Illness) error
	DeleteIllness(ctx context.Context, id uuid.UUID) error
	ListIllnesses(ctx context.Context) ([]*Illness, error)
}
