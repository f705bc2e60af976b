package catalog

import (
	"time"

	"github.com/google/uuid"
)

// BedType is a catalog entry defining a daily rate for a class of bed
// (e.g. General, ICU). Beds reference bed types; a type with referencing
// beds cannot be deleted.
type BedType struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	PricePerDay float64   `db:"price_per_day" json:"price_per_day"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Illness is a catalog entry for a named illness. Patients reference an
// illness by id, or carry free text for "other".
type Illness struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
