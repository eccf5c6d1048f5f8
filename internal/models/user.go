package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleFarmer Role = "farmer"
)

// User is a directory record. PasswordHash never leaves the store/auth
// boundary; everything handed to the HTTP layer goes through Sanitize.
type User struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
}

// Identity is the sanitized user shape stored in sessions and returned
// to clients. No secret field.
type Identity struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Role   Role   `json:"role"`
}

func (u *User) Sanitize() Identity {
	return Identity{
		ID:     u.ID.String(),
		Email:  u.Email,
		Mobile: u.Mobile,
		Role:   u.Role,
	}
}
