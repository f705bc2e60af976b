package identity

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles. Role names are referenced by route guards, so they are fixed
// strings rather than a lookup table.
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleDoctor       = "doctor"
)

var validRoles = map[string]bool{
	RoleAdmin:        true,
	RoleReceptionist: true,
	RoleDoctor:       true,
}

// Employee is a staff account. The password hash never leaves the server.
type Employee struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterRequest creates a staff account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest authenticates a staff member.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed access token and the account it belongs to.
type LoginResponse struct {
	Token    string    `json:"token"`
	Employee *Employee `json:"employee"`
}
