package models

import "time"

// Task is an owned resource. UserID is set exactly once, at creation, from
// the authenticated subject; it never comes from client input.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
