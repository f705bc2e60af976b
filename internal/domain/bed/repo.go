package bed

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage interface for the bed inventory.
type Repository interface {
	// Claim atomically selects one available bed of the given type and binds
	// it to the patient. Selection and the status flip are a single
	// serializable step; two concurrent claims can never receive the same
	// bed. Returns nil when no bed of the type is free or the patient
	// already holds a bed.
	Claim(ctx context.Context, patientID, bedTypeID uuid.UUID) (*uuid.UUID, error)

	// Release frees the bed bound to the patient, if any. Reports whether a
	// bed was released.
	Release(ctx context.Context, patientID uuid.UUID) (bool, error)

	GetByPatient(ctx context.Context, patientID uuid.UUID) (*Bed, error)
	List(ctx context.Context) ([]*Bed, error)
	BedTypeExists(ctx context.Context, bedTypeID uuid.UUID) (bool, error)
}
