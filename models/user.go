package models

import "time"

// Resident roles.
const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
)

// User represents a resident account in the housing association portal.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Apartment    string    `bson:"apartment" json:"apartment"` // e.g. "A 12"
	Role         string    `bson:"role" json:"role"`
	Password     string    `bson:"-" json:"password,omitempty"` // input only, never stored
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// Identity is the verified caller identity resolved from a bearer credential.
// The payment subsystem consumes it as an opaque capability and fails closed
// whenever it cannot be resolved.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
