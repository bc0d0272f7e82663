package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ffarena/arena-backend/live"
	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/repositories"
	"github.com/ffarena/arena-backend/storage"
	"github.com/ffarena/arena-backend/wizard"
)

// RegistrationService is the wizard's backend: it bridges the session state
// machine to the repositories, the object store, and the live feed.
type RegistrationService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	uploader       storage.FileUploader
	hub            *live.Hub
	logger         *slog.Logger
}

var _ wizard.Backend = (*RegistrationService)(nil)

func NewRegistrationService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	hub *live.Hub,
	logger *slog.Logger,
) *RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		uploader:       uploader,
		hub:            hub,
		logger:         logger,
	}
}

// FetchTournament loads the metadata snapshot merged into the record at
// session start. Absence is reported as the wizard's not-found sentinel so
// it stays distinguishable from a transport failure.
func (s *RegistrationService) FetchTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, wizard.ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to fetch tournament %s: %w", id, err)
	}
	return t, nil
}

// UploadReceipt stores the payment proof under a fresh key and returns its
// public URL. Every attempt gets a new key; failed submissions never reuse
// a previously uploaded object.
func (s *RegistrationService) UploadReceipt(ctx context.Context, file wizard.ReceiptFile) (string, error) {
	ext, err := wizard.ReceiptExtension(file.ContentType)
	if err != nil {
		return "", err
	}

	key := "receipts/" + uuid.New().String() + ext
	result, err := s.uploader.Upload(ctx, key, file.ContentType, file.Data)
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}
	return result.Location, nil
}

// CreateTeam persists the finalized registration after re-checking that
// the tournament still accepts teams.
func (s *RegistrationService) CreateTeam(ctx context.Context, team *models.Team) (string, error) {
	t, err := s.tournamentRepo.GetByID(ctx, team.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return "", ErrTournamentNotFound
		}
		return "", fmt.Errorf("failed to check tournament %s: %w", team.TournamentID, err)
	}
	if t.Status != models.StatusOpen {
		return "", ErrRegistrationClosed
	}

	registered, err := s.teamRepo.CountByTournament(ctx, team.TournamentID)
	if err != nil {
		return "", fmt.Errorf("failed to count registered teams: %w", err)
	}
	if registered >= t.MaxTeams {
		return "", ErrTournamentFull
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return "", fmt.Errorf("failed to create team registration: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(team.TournamentID, live.EventTeamRegistered, map[string]interface{}{
			"teamId":   team.ID,
			"teamName": team.TeamName,
		})
	}
	return team.ID, nil
}

// CreateCaptainProfile is the secondary registration write. Failures here
// are surfaced to the wizard, which logs and swallows them.
func (s *RegistrationService) CreateCaptainProfile(ctx context.Context, player *models.Player) error {
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return fmt.Errorf("failed to create captain profile: %w", err)
	}
	return nil
}
