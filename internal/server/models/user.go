// Package models contains server-side domain types.
package models

import "time"

// User is a registered principal. PasswordHash is the only persisted form of
// the credential and must never appear in any API response or log line.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
