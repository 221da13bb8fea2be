package domain

import "time"

// Todo is a to-do item owned by exactly one user.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Priority    int
	Complete    bool
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
