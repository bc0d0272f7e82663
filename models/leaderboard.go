package models

// LeaderboardEntry is a derived standing row for one tournament, computed
// from verified team results.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	TeamName   string `json:"teamName"`
	Captain    string `json:"captain"`
	Kills      int    `json:"kills"`
	ResultRank *int   `json:"resultRank"`
	Prize      int    `json:"prize"`
}
