package billing

import (
	"time"

	"github.com/google/uuid"
)

// Bill is the settled invoice written at discharge time. Components are
// stored alongside the total so history stays auditable even if rates
// change later.
type Bill struct {
	ID            uuid.UUID `db:"id" json:"id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	Days          int       `db:"days" json:"days"`
	BedCharge     float64   `db:"bed_charge" json:"bed_charge"`
	ServiceCharge float64   `db:"service_charge" json:"service_charge"`
	DoctorFee     float64   `db:"doctor_fee" json:"doctor_fee"`
	Total         float64   `db:"total" json:"total"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// Joined for display
	PatientName string `db:"patient_name" json:"patient_name,omitempty"`
}

// Preview is the read-only bill projection shown before discharge. It is
// computed from current state and never persisted.
type Preview struct {
	PatientID     uuid.UUID `json:"patient_id"`
	Days          int       `json:"days"`
	BedCharge     float64   `json:"bed_charge"`
	ServiceCharge float64   `json:"service_charge"`
	DoctorFee     float64   `json:"doctor_fee"`
	Total         float64   `json:"total"`
}

// Admission is the billing view of an admitted patient: just the fields the
// calculator needs, joined with the held bed's rate and the doctor's fee.
type Admission struct {
	PatientID      uuid.UUID
	PatientName    string
	AdmittedDate   time.Time
	DischargedDate *time.Time
	DoctorID       *uuid.UUID
	DoctorFee      *float64
	BedPricePerDay *float64
}

// DischargeRequest carries the total the client previewed. The server
// recomputes the bill and refuses to settle against a stale figure.
type DischargeRequest struct {
	ExpectedTotal float64 `json:"expected_total"`
}
