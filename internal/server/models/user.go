// Package models defines the persistent record types shared by
// repositories and services.
package models

import "time"

// User is an identity record. PasswordHash is a bcrypt digest and must
// never be exposed outward.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
