package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage interface for billing. InTx runs fn inside a
// single database transaction; repository calls made with the context fn
// receives join that transaction.
type Repository interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error

	// GetAdmission loads the billing view of a patient. Inside a transaction
	// the patient row is locked until commit so concurrent discharges
	// serialize.
	GetAdmission(ctx context.Context, patientID uuid.UUID) (*Admission, error)

	InsertBill(ctx context.Context, b *Bill) error
	MarkDischarged(ctx context.Context, patientID uuid.UUID, at time.Time) error

	ListHistory(ctx context.Context, limit, offset int) ([]*Bill, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Bill, error)
}
