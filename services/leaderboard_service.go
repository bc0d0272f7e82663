package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/repositories"
)

// LeaderboardService derives per-tournament standings from recorded team
// results. Only teams with a verified payment count.
type LeaderboardService interface {
	TournamentStandings(ctx context.Context, tournamentID string) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	teamRepo repositories.TeamRepository
}

func NewLeaderboardService(teamRepo repositories.TeamRepository) LeaderboardService {
	return &leaderboardService{teamRepo: teamRepo}
}

func (s *leaderboardService) TournamentStandings(ctx context.Context, tournamentID string) ([]models.LeaderboardEntry, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for standings: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		if team.PaymentStatus != models.PaymentVerified {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			TeamName:   team.TeamName,
			Captain:    team.Captain().IGN,
			Kills:      team.Kills,
			ResultRank: team.ResultRank,
			Prize:      team.PrizeAmount,
		})
	}

	// Result rank wins when recorded; otherwise order by kills.
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].ResultRank, entries[j].ResultRank
		switch {
		case ri != nil && rj != nil:
			return *ri < *rj
		case ri != nil:
			return true
		case rj != nil:
			return false
		default:
			return entries[i].Kills > entries[j].Kills
		}
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
