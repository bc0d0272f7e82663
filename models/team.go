package models

import "time"

// PaymentStatus tracks manual receipt verification by an admin.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// PayoutStatus tracks prize disbursement for placed teams.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutCompleted PayoutStatus = "completed"
)

// SquadSize is the fixed roster size of a registered team. Index 0 of the
// player list is always the captain.
const SquadSize = 4

// PlayerEntry is one roster slot: in-game name plus the platform UID.
type PlayerEntry struct {
	IGN string `json:"ign"`
	UID string `json:"uid"`
}

// Team is a finalized squad registration. Everything past ReceiptURL is
// owned by the admin workflow after submission: verification, slot and room
// assignment, results and payout.
type Team struct {
	ID             string                 `json:"id" db:"id"`
	TeamName       string                 `json:"teamName" db:"team_name"`
	CaptainContact string                 `json:"captainContact" db:"captain_contact"`
	CaptainEmail   string                 `json:"captainEmail" db:"captain_email"`
	Players        [SquadSize]PlayerEntry `json:"players" db:"players"`
	TournamentID   string                 `json:"tournamentId" db:"tournament_id"`
	TournamentName string                 `json:"tournamentName" db:"tournament_name"`
	EntryFee       int                    `json:"entryFee" db:"entry_fee"`
	PaymentStatus  PaymentStatus          `json:"paymentStatus" db:"payment_status"`
	ReceiptURL     *string                `json:"receiptUrl,omitempty" db:"receipt_url"`
	Slot           *int                   `json:"slot" db:"slot"`
	RoomCredsSent  bool                   `json:"roomCredsSent" db:"room_creds_sent"`
	Kills          int                    `json:"kills" db:"kills"`
	ResultRank     *int                   `json:"resultRank" db:"result_rank"`
	PrizeAmount    int                    `json:"prizeAmount" db:"prize_amount"`
	PayoutStatus   PayoutStatus           `json:"payoutStatus" db:"payout_status"`
	CreatedAt      time.Time              `json:"createdAt" db:"created_at"`
}

// Captain returns the roster entry holding captain semantics.
func (t *Team) Captain() PlayerEntry {
	return t.Players[0]
}
