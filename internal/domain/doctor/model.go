package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is an attending physician. ConsultationFee is the flat per-stay fee
// added to a patient's bill at discharge.
type Doctor struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Specialization  string    `db:"specialization" json:"specialization"`
	Phone           string    `db:"phone" json:"phone"`
	Email           string    `db:"email" json:"email"`
	ConsultationFee float64   `db:"consultation_fee" json:"consultation_fee"`
	AvailableDays   string    `db:"available_days" json:"available_days"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
