package domain

import "time"

// User represents a registered account. PasswordHash is a bcrypt digest and is
// stripped before a User leaves the service layer.
type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
