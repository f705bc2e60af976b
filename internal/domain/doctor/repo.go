package doctor

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage interface for doctors.
type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Doctor, error)

	// ActivePatientCount counts currently-admitted patients attended by the
	// doctor.
	ActivePatientCount(ctx context.Context, id uuid.UUID) (int, error)
}
