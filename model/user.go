package model

import (
	"time"
)

// User represents an account managed by the identity gateway.
type User struct {
	Key          string    `json:"_key,omitempty"`
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new user with default values
func NewUser(uid, email, name string) *User {
	now := time.Now()
	return &User{
		UID:       uid,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
