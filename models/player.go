package models

import "time"

// Player is the captain profile written alongside a team registration.
// Locked profiles cannot be edited by the player themselves; they exist for
// admin contact and payout purposes.
type Player struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	UID       string    `json:"uid" db:"uid"`
	IsLocked  bool      `json:"isLocked" db:"is_locked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
