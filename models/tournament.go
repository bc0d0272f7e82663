package models

import "time"

// TournamentType mirrors the match formats offered on the platform.
type TournamentType string

const (
	TypeSolo  TournamentType = "Solo"
	TypeDuo   TournamentType = "Duo"
	TypeSquad TournamentType = "Squad"
)

// TournamentStatus matches the ENUM in the database.
type TournamentStatus string

const (
	StatusOpen   TournamentStatus = "Open"
	StatusClosed TournamentStatus = "Closed"
)

// Tournament is a listed event squads can register for.
type Tournament struct {
	ID             string           `json:"id" db:"id"`
	TournamentName string           `json:"tournamentName" db:"tournament_name"`
	EntryFee       int              `json:"entryFee" db:"entry_fee"`
	TournamentType TournamentType   `json:"tournamentType" db:"tournament_type"`
	StartDateTime  time.Time        `json:"startDateTime" db:"start_date_time"`
	MaxTeams       int              `json:"maxTeams" db:"max_teams"`
	Status         TournamentStatus `json:"status" db:"status"`
	Description    string           `json:"description" db:"description"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`

	BannerKey *string `json:"-" db:"banner_key"`
	BannerURL *string `json:"bannerImageURL,omitempty" db:"-"`
}
