package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage interface for staff accounts.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
