package models

import "time"

// ChampionPlayer is one member of a winning roster as curated by an admin.
type ChampionPlayer struct {
	Name string `json:"name"`
	UID  string `json:"uid"`
}

// Champion is an admin-curated historical record of a past tournament's
// winning team, displayed on the public champions pages.
type Champion struct {
	ID             string           `json:"id" db:"id"`
	TournamentID   string           `json:"tournamentId" db:"tournament_id"`
	TournamentName string           `json:"tournamentName" db:"tournament_name"`
	TeamName       string           `json:"teamName" db:"team_name"`
	CaptainName    string           `json:"captainName" db:"captain_name"`
	Players        []ChampionPlayer `json:"players" db:"players"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`

	HeroKey  *string `json:"-" db:"hero_key"`
	ProofKey *string `json:"-" db:"proof_key"`
	// Gallery keys are stored; URLs are resolved through the uploader.
	GalleryKeys []string `json:"-" db:"gallery_keys"`

	HeroImageURL     *string  `json:"heroImageURL,omitempty" db:"-"`
	ProofImageURL    *string  `json:"proofImageURL,omitempty" db:"-"`
	GalleryMediaURLs []string `json:"galleryMediaURLs" db:"-"`
}
