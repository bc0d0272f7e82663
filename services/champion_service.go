package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/repositories"
	"github.com/ffarena/arena-backend/storage"
)

type ChampionService interface {
	CreateChampion(ctx context.Context, input ChampionInput) (*models.Champion, error)
	GetChampionByID(ctx context.Context, id string) (*models.Champion, error)
	ListChampions(ctx context.Context) ([]models.Champion, error)
	UpdateChampion(ctx context.Context, id string, input ChampionInput) (*models.Champion, error)
	DeleteChampion(ctx context.Context, id string) error
	UploadMedia(ctx context.Context, id string, media ChampionMedia) (*models.Champion, error)
}

// ChampionInput is the admin create/update payload for a champion record.
type ChampionInput struct {
	TournamentID   string                  `json:"tournamentId"`
	TournamentName string                  `json:"tournamentName"`
	TeamName       string                  `json:"teamName"`
	CaptainName    string                  `json:"captainName"`
	Players        []models.ChampionPlayer `json:"players"`
}

// MediaFile is one image in a champion media upload.
type MediaFile struct {
	ContentType string
	Data        io.Reader
}

// ChampionMedia groups the optional hero and proof images with any number
// of gallery images.
type ChampionMedia struct {
	Hero    *MediaFile
	Proof   *MediaFile
	Gallery []MediaFile
}

type championService struct {
	repo           repositories.ChampionRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewChampionService(
	repo repositories.ChampionRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) ChampionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &championService{
		repo:           repo,
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *championService) CreateChampion(ctx context.Context, input ChampionInput) (*models.Champion, error) {
	if err := s.validateInput(ctx, &input); err != nil {
		return nil, err
	}

	c := &models.Champion{
		TournamentID:   input.TournamentID,
		TournamentName: input.TournamentName,
		TeamName:       input.TeamName,
		CaptainName:    input.CaptainName,
		Players:        input.Players,
		GalleryKeys:    []string{},
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrChampionInvalidTournament) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create champion record: %w", err)
	}
	populateChampionMedia(c, s.uploader)
	return c, nil
}

func (s *championService) GetChampionByID(ctx context.Context, id string) (*models.Champion, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to get champion %s: %w", id, err)
	}
	populateChampionMedia(c, s.uploader)
	return c, nil
}

func (s *championService) ListChampions(ctx context.Context) ([]models.Champion, error) {
	champions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list champions: %w", err)
	}
	for i := range champions {
		populateChampionMedia(&champions[i], s.uploader)
	}
	return champions, nil
}

func (s *championService) UpdateChampion(ctx context.Context, id string, input ChampionInput) (*models.Champion, error) {
	if err := s.validateInput(ctx, &input); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to load champion %s: %w", id, err)
	}

	c.TournamentID = input.TournamentID
	c.TournamentName = input.TournamentName
	c.TeamName = input.TeamName
	c.CaptainName = input.CaptainName
	c.Players = input.Players

	if err := s.repo.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repositories.ErrChampionNotFound):
			return nil, ErrChampionNotFound
		case errors.Is(err, repositories.ErrChampionInvalidTournament):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update champion %s: %w", id, err)
	}

	populateChampionMedia(c, s.uploader)
	return c, nil
}

func (s *championService) DeleteChampion(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return ErrChampionNotFound
		}
		return fmt.Errorf("failed to load champion %s: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return ErrChampionNotFound
		}
		return fmt.Errorf("failed to delete champion %s: %w", id, err)
	}

	keys := append([]string{}, c.GalleryKeys...)
	if c.HeroKey != nil {
		keys = append(keys, *c.HeroKey)
	}
	if c.ProofKey != nil {
		keys = append(keys, *c.ProofKey)
	}
	for _, key := range keys {
		if err := s.uploader.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete champion media from storage",
				slog.String("key", key), slog.Any("error", err))
		}
	}
	return nil
}

// UploadMedia stores the provided hero/proof/gallery images and persists
// their keys. Gallery images upload concurrently; the first failure aborts
// the whole batch.
func (s *championService) UploadMedia(ctx context.Context, id string, media ChampionMedia) (*models.Champion, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to load champion %s: %w", id, err)
	}

	heroKey := c.HeroKey
	proofKey := c.ProofKey
	if media.Hero != nil {
		key, err := s.uploadOne(ctx, *media.Hero)
		if err != nil {
			return nil, err
		}
		heroKey = &key
	}
	if media.Proof != nil {
		key, err := s.uploadOne(ctx, *media.Proof)
		if err != nil {
			return nil, err
		}
		proofKey = &key
	}

	galleryKeys := append([]string{}, c.GalleryKeys...)
	if len(media.Gallery) > 0 {
		newKeys := make([]string, len(media.Gallery))
		var mu sync.Mutex

		g, gCtx := errgroup.WithContext(ctx)
		for i, file := range media.Gallery {
			i, file := i, file
			g.Go(func() error {
				key, err := s.uploadOne(gCtx, file)
				if err != nil {
					return err
				}
				mu.Lock()
				newKeys[i] = key
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		galleryKeys = append(galleryKeys, newKeys...)
	}

	if err := s.repo.UpdateMediaKeys(ctx, id, heroKey, proofKey, galleryKeys); err != nil {
		if errors.Is(err, repositories.ErrChampionNotFound) {
			return nil, ErrChampionNotFound
		}
		return nil, fmt.Errorf("failed to persist champion media keys: %w", err)
	}

	c.HeroKey = heroKey
	c.ProofKey = proofKey
	c.GalleryKeys = galleryKeys
	populateChampionMedia(c, s.uploader)
	return c, nil
}

func (s *championService) uploadOne(ctx context.Context, file MediaFile) (string, error) {
	ext, err := imageExtension(file.ContentType)
	if err != nil {
		return "", err
	}
	key := "champions/" + uuid.New().String() + ext
	if _, err := s.uploader.Upload(ctx, key, file.ContentType, file.Data); err != nil {
		return "", fmt.Errorf("failed to upload champion media: %w", err)
	}
	return key, nil
}

func (s *championService) validateInput(ctx context.Context, input *ChampionInput) error {
	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.TeamName == "" {
		return ErrChampionTeamRequired
	}

	// Denormalize the tournament name from the referenced tournament when
	// the caller supplied only the ID.
	if input.TournamentID != "" && input.TournamentName == "" {
		t, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return fmt.Errorf("failed to resolve tournament %s: %w", input.TournamentID, err)
		}
		input.TournamentName = t.TournamentName
	}
	return nil
}

// ReadAllMedia buffers an upload part so its size can be checked before any
// network call. It reads at most limit+1 bytes; a returned size above the
// limit means the part was too large.
func ReadAllMedia(r io.Reader, limit int64) (*bytes.Reader, int64, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read upload: %w", err)
	}
	return bytes.NewReader(data), int64(len(data)), nil
}
