package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the storage interface for appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByDate(ctx context.Context, date time.Time) ([]*Appointment, error)
	ListByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*Appointment, error)

	// BookedSlots returns the slots already taken for a doctor on a date,
	// cancelled bookings excluded.
	BookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)
}
