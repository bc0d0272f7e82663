package wizard

import (
	"time"

	"github.com/ffarena/arena-backend/models"
)

// Record is the accumulated registration state for one session. It is owned
// exclusively by the Wizard; step handlers read it and hand back patches.
type Record struct {
	TeamName       string                        `json:"teamName"`
	CaptainContact string                        `json:"captainContact"`
	CaptainEmail   string                        `json:"captainEmail"`
	Players        [models.SquadSize]models.PlayerEntry `json:"players"`
	TournamentID   string                        `json:"tournamentId"`
	TournamentName string                        `json:"tournamentName"`
	EntryFee       int                           `json:"entryFee"`
	PaymentStatus  models.PaymentStatus          `json:"paymentStatus"`
	ReceiptURL     *string                       `json:"receiptUrl"`

	// Post-registration fields. No setter in this flow; admins own them.
	Slot          *int                `json:"slot"`
	RoomCredsSent bool                `json:"roomCredsSent"`
	Kills         int                 `json:"kills"`
	ResultRank    *int                `json:"resultRank"`
	PrizeAmount   int                 `json:"prizeAmount"`
	PayoutStatus  models.PayoutStatus `json:"payoutStatus"`

	CreatedAt time.Time `json:"createdAt"`
}

// newRecord builds the empty record a session starts with. TournamentID is
// fixed here and never mutates afterwards.
func newRecord(tournamentID string) Record {
	return Record{
		TournamentID:  tournamentID,
		PaymentStatus: models.PaymentPending,
		PayoutStatus:  models.PayoutPending,
	}
}

// Patch is a partial update emitted by a step after its own validation.
// Nil fields are left untouched; the merge itself never validates.
type Patch struct {
	TeamName       *string
	CaptainContact *string
	CaptainEmail   *string
	Players        *[models.SquadSize]models.PlayerEntry
}

func (r *Record) apply(p Patch) {
	if p.TeamName != nil {
		r.TeamName = *p.TeamName
	}
	if p.CaptainContact != nil {
		r.CaptainContact = *p.CaptainContact
	}
	if p.CaptainEmail != nil {
		r.CaptainEmail = *p.CaptainEmail
	}
	if p.Players != nil {
		r.Players = *p.Players
	}
}

// finalize produces the team document persisted at submission time.
func (r Record) finalize(receiptURL string, now time.Time) *models.Team {
	return &models.Team{
		TeamName:       r.TeamName,
		CaptainContact: r.CaptainContact,
		CaptainEmail:   r.CaptainEmail,
		Players:        r.Players,
		TournamentID:   r.TournamentID,
		TournamentName: r.TournamentName,
		EntryFee:       r.EntryFee,
		PaymentStatus:  r.PaymentStatus,
		ReceiptURL:     &receiptURL,
		Slot:           r.Slot,
		RoomCredsSent:  r.RoomCredsSent,
		Kills:          r.Kills,
		ResultRank:     r.ResultRank,
		PrizeAmount:    r.PrizeAmount,
		PayoutStatus:   r.PayoutStatus,
		CreatedAt:      now,
	}
}
