package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ffarena/arena-backend/live"
	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/repositories"
)

// TeamService owns the admin side of a registration's lifecycle: payment
// verification, slot and room assignment, results and payout.
type TeamService interface {
	GetTeamByID(ctx context.Context, id string) (*models.Team, error)
	ListTeamsByTournament(ctx context.Context, tournamentID string) ([]models.Team, error)
	SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Team, error)
	AssignSlot(ctx context.Context, id string, slot int) (*models.Team, error)
	MarkRoomCredsSent(ctx context.Context, id string, sent bool) (*models.Team, error)
	RecordResult(ctx context.Context, id string, input ResultInput) (*models.Team, error)
	SetPayoutStatus(ctx context.Context, id string, status models.PayoutStatus) (*models.Team, error)
}

// ResultInput is the post-match result payload for one team.
type ResultInput struct {
	Kills       int  `json:"kills"`
	ResultRank  *int `json:"resultRank"`
	PrizeAmount int  `json:"prizeAmount"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	hub      *live.Hub
	logger   *slog.Logger
}

func NewTeamService(teamRepo repositories.TeamRepository, hub *live.Hub, logger *slog.Logger) TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &teamService{teamRepo: teamRepo, hub: hub, logger: logger}
}

func (s *teamService) GetTeamByID(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", id, err)
	}
	return team, nil
}

func (s *teamService) ListTeamsByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %s: %w", tournamentID, err)
	}
	return teams, nil
}

func (s *teamService) SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Team, error) {
	switch status {
	case models.PaymentPending, models.PaymentVerified, models.PaymentRejected:
	default:
		return nil, ErrInvalidPaymentStatus
	}

	if err := s.teamRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update payment status for team %s: %w", id, err)
	}

	team, err := s.GetTeamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		event := ""
		switch status {
		case models.PaymentVerified:
			event = live.EventPaymentVerified
		case models.PaymentRejected:
			event = live.EventPaymentRejected
		}
		if event != "" {
			s.hub.BroadcastToRoom(team.TournamentID, event, map[string]interface{}{
				"teamId":   team.ID,
				"teamName": team.TeamName,
			})
		}
	}
	return team, nil
}

func (s *teamService) AssignSlot(ctx context.Context, id string, slot int) (*models.Team, error) {
	if slot <= 0 {
		return nil, ErrInvalidSlot
	}
	if err := s.teamRepo.UpdateSlot(ctx, id, &slot); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to assign slot for team %s: %w", id, err)
	}
	return s.GetTeamByID(ctx, id)
}

func (s *teamService) MarkRoomCredsSent(ctx context.Context, id string, sent bool) (*models.Team, error) {
	if err := s.teamRepo.UpdateRoomCredsSent(ctx, id, sent); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update room creds flag for team %s: %w", id, err)
	}
	return s.GetTeamByID(ctx, id)
}

func (s *teamService) RecordResult(ctx context.Context, id string, input ResultInput) (*models.Team, error) {
	if input.Kills < 0 || input.PrizeAmount < 0 {
		return nil, ErrValidationFailed
	}
	if input.ResultRank != nil && *input.ResultRank <= 0 {
		return nil, ErrValidationFailed
	}
	if err := s.teamRepo.UpdateResult(ctx, id, input.Kills, input.ResultRank, input.PrizeAmount); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to record result for team %s: %w", id, err)
	}
	return s.GetTeamByID(ctx, id)
}

func (s *teamService) SetPayoutStatus(ctx context.Context, id string, status models.PayoutStatus) (*models.Team, error) {
	switch status {
	case models.PayoutPending, models.PayoutCompleted:
	default:
		return nil, ErrInvalidPayoutStatus
	}
	if err := s.teamRepo.UpdatePayoutStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update payout status for team %s: %w", id, err)
	}
	return s.GetTeamByID(ctx, id)
}
