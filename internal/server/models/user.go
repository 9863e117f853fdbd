// Package models defines server-side data models persisted in the database,
// plus the outward-facing projections handlers serialize.
package models

import "time"

// User is the persisted account record. Email is stored lower-cased and is
// unique. PasswordHash holds a bcrypt hash and must never be serialized
// outward; use Profile for responses.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is the outward projection of a User. It structurally cannot
// carry the password hash.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile returns the outward projection of the user.
func (u *User) Profile() UserProfile {
	return UserProfile{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
