package models

import "time"

// Task is a unit of work owned by exactly one user. UserID is immutable
// after creation. Description is optional; the empty string means "none".
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
