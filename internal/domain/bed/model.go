package bed

import (
	"time"

	"github.com/google/uuid"
)

// Bed statuses. A bed is Occupied exactly when a patient id is bound to it.
const (
	StatusAvailable = "Available"
	StatusOccupied  = "Occupied"
)

// Bed is one physical bed. Beds are provisioned outside this service; the
// core only flips them between Available and Occupied.
type Bed struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Ward      string     `db:"ward" json:"ward"`
	Floor     int        `db:"floor" json:"floor"`
	BedTypeID uuid.UUID  `db:"bed_type_id" json:"bed_type_id"`
	Status    string     `db:"status" json:"status"`
	PatientID *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`

	// Joined for display
	BedTypeName string  `db:"bed_type_name" json:"bed_type_name,omitempty"`
	PricePerDay float64 `db:"price_per_day" json:"price_per_day,omitempty"`
	PatientName *string `db:"patient_name" json:"patient_name,omitempty"`
}

// AllocationResult reports the outcome of a claim. Assigned=false means no
// bed of the requested type was free; that is a soft failure, not an error.
type AllocationResult struct {
	Assigned bool       `json:"assigned"`
	BedID    *uuid.UUID `json:"bed_id,omitempty"`
}

// FloorGroup is the by-floor view used by the ward dashboard.
type FloorGroup struct {
	Floor int    `json:"floor"`
	Beds  []*Bed `json:"beds"`
}
