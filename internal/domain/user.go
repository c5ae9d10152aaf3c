package domain

import "time"

// User is the domain entity for an account. Emails are unique
// case-insensitively; PasswordHash is a bcrypt hash.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
