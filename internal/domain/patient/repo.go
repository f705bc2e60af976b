package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage interface for patient records.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error

	// Delete removes the patient and frees any held bed in one transaction.
	// A patient referenced by billing rows cannot be deleted; the constraint
	// violation surfaces to the caller.
	Delete(ctx context.Context, id uuid.UUID) error

	ListAdmitted(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error)
}
