package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/repositories"
	"github.com/ffarena/arena-backend/storage"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input TournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id string, input TournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	UploadBanner(ctx context.Context, id string, contentType string, file io.Reader) (*models.Tournament, error)
	CloseStartedTournaments(ctx context.Context) error
}

// TournamentInput is the admin create/update payload.
type TournamentInput struct {
	TournamentName string                  `json:"tournamentName"`
	EntryFee       int                     `json:"entryFee"`
	TournamentType models.TournamentType   `json:"tournamentType"`
	StartDateTime  time.Time               `json:"startDateTime"`
	MaxTeams       int                     `json:"maxTeams"`
	Status         models.TournamentStatus `json:"status"`
	Description    string                  `json:"description"`
}

type tournamentService struct {
	repo     repositories.TournamentRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewTournamentService(repo repositories.TournamentRepository, uploader storage.FileUploader, logger *slog.Logger) TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{repo: repo, uploader: uploader, logger: logger}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	t := &models.Tournament{
		TournamentName: input.TournamentName,
		EntryFee:       input.EntryFee,
		TournamentType: input.TournamentType,
		StartDateTime:  input.StartDateTime,
		MaxTeams:       input.MaxTeams,
		Status:         input.Status,
		Description:    input.Description,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	populateTournamentBanner(t, s.uploader)
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for i := range tournaments {
		populateTournamentBanner(&tournaments[i], s.uploader)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id string, input TournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(&input); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}

	t.TournamentName = input.TournamentName
	t.EntryFee = input.EntryFee
	t.TournamentType = input.TournamentType
	t.StartDateTime = input.StartDateTime
	t.MaxTeams = input.MaxTeams
	t.Status = input.Status
	t.Description = input.Description

	if err := s.repo.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to update tournament %s: %w", id, err)
	}

	populateTournamentBanner(t, s.uploader)
	return t, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to load tournament %s: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentInUse):
			return ErrTournamentInUse
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}

	if t.BannerKey != nil {
		if err := s.uploader.Delete(ctx, *t.BannerKey); err != nil {
			s.logger.Warn("failed to delete tournament banner from storage",
				slog.String("tournament_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *tournamentService) UploadBanner(ctx context.Context, id string, contentType string, file io.Reader) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}

	ext, err := imageExtension(contentType)
	if err != nil {
		return nil, err
	}

	key := "tournament-banners/" + uuid.New().String() + ext
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload tournament banner: %w", err)
	}

	oldKey := t.BannerKey
	if err := s.repo.UpdateBannerKey(ctx, id, &key); err != nil {
		// Roll the orphaned object back on a best-effort basis.
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to delete orphaned banner upload",
				slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to persist banner key: %w", err)
	}

	if oldKey != nil && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete replaced banner",
				slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	t.BannerKey = &key
	populateTournamentBanner(t, s.uploader)
	return t, nil
}

// CloseStartedTournaments flips Open tournaments past their start time to
// Closed. Invoked periodically by the scheduler goroutine.
func (s *tournamentService) CloseStartedTournaments(ctx context.Context) error {
	ids, err := s.repo.CloseStarted(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		s.logger.Info("closed tournaments past their start time",
			slog.Int("count", len(ids)), slog.Any("tournament_ids", ids))
	}
	return nil
}

func validateTournamentInput(input *TournamentInput) error {
	input.TournamentName = strings.TrimSpace(input.TournamentName)
	if input.TournamentName == "" {
		return ErrTournamentNameRequired
	}
	if input.EntryFee < 0 {
		return ErrTournamentInvalidFee
	}
	if !isValidTournamentType(input.TournamentType) {
		return ErrTournamentInvalidType
	}
	if input.StartDateTime.IsZero() {
		return ErrTournamentStartRequired
	}
	if input.MaxTeams <= 0 {
		return ErrTournamentInvalidSize
	}
	if input.Status == "" {
		input.Status = models.StatusOpen
	}
	if !isValidTournamentStatus(input.Status) {
		return ErrTournamentInvalidStatus
	}
	return nil
}
