package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusScheduled = "Scheduled"
	StatusCancelled = "Cancelled"
)

// Appointment is an outpatient consultation booking. It references no
// Patient record: walk-in visitors book by name, and admission is a separate
// flow.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	Phone       string    `db:"phone" json:"phone"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Date        time.Time `db:"date" json:"date"`
	Slot        string    `db:"slot" json:"slot"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Joined for display
	DoctorName string `db:"doctor_name" json:"doctor_name,omitempty"`
}
