package patient

import (
	"time"

	"github.com/google/uuid"
)

// Disease severities. Anything above Mild reserves a bed at admission.
const (
	SeverityMild     = "Mild"
	SeverityModerate = "Moderate"
	SeveritySevere   = "Severe"
)

var validSeverities = map[string]bool{
	SeverityMild:     true,
	SeverityModerate: true,
	SeveritySevere:   true,
}

// Patient is one admission lifecycle. DischargedDate is null while the
// patient is active; once set the record is terminal and re-admission
// creates a new Patient.
type Patient struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Age                int        `db:"age" json:"age"`
	Gender             string     `db:"gender" json:"gender"`
	AdmittedDate       time.Time  `db:"admitted_date" json:"admitted_date"`
	DischargedDate     *time.Time `db:"discharged_date" json:"discharged_date,omitempty"`
	DoctorID           *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	DiseaseSeverity    string     `db:"disease_severity" json:"disease_severity"`
	IllnessID          *uuid.UUID `db:"illness_id" json:"illness_id,omitempty"`
	OtherIllnessText   *string    `db:"other_illness_text" json:"other_illness_text,omitempty"`
	RequestedBedTypeID *uuid.UUID `db:"requested_bed_type_id" json:"requested_bed_type_id,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`

	// Joined for display
	DoctorName  *string    `db:"doctor_name" json:"doctor_name,omitempty"`
	IllnessName *string    `db:"illness_name" json:"illness_name,omitempty"`
	BedID       *uuid.UUID `db:"bed_id" json:"bed_id,omitempty"`
}

// Active reports whether the patient is still admitted.
func (p *Patient) Active() bool {
	return p.DischargedDate == nil
}

// AllocationResult mirrors the allocator's outcome for admission responses.
type AllocationResult struct {
	Assigned bool       `json:"assigned"`
	BedID    *uuid.UUID `json:"bed_id,omitempty"`
}

// AdmitResponse is returned from the admission endpoint: the created patient
// plus the outcome of the conditional bed allocation.
type AdmitResponse struct {
	Patient    *Patient          `json:"patient"`
	Allocation *AllocationResult `json:"allocation,omitempty"`
}
