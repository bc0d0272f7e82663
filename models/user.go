package models

import "time"

// UserRole distinguishes admin-panel accounts from regular visitors.
// Registration itself is public; only the admin workflow needs an account.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
