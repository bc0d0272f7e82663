package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ffarena/arena-backend/models"
)

var (
	ErrChampionNotFound          = errors.New("champion record not found")
	ErrChampionInvalidTournament = errors.New("invalid tournament reference")
)

type ChampionRepository interface {
	Create(ctx context.Context, champion *models.Champion) error
	GetByID(ctx context.Context, id string) (*models.Champion, error)
	List(ctx context.Context) ([]models.Champion, error)
	Update(ctx context.Context, champion *models.Champion) error
	Delete(ctx context.Context, id string) error
	UpdateMediaKeys(ctx context.Context, id string, heroKey, proofKey *string, galleryKeys []string) error
}

type postgresChampionRepository struct {
	db *sql.DB
}

func NewPostgresChampionRepository(db *sql.DB) ChampionRepository {
	return &postgresChampionRepository{db: db}
}

const championColumns = `
	id, tournament_id, tournament_name, team_name, captain_name, players,
	hero_key, proof_key, gallery_keys, created_at`

func (r *postgresChampionRepository) Create(ctx context.Context, c *models.Champion) error {
	players, err := json.Marshal(c.Players)
	if err != nil {
		return fmt.Errorf("failed to encode players: %w", err)
	}

	c.ID = uuid.New().String()
	query := `
		INSERT INTO champions (
			id, tournament_id, tournament_name, team_name, captain_name,
			players, hero_key, proof_key, gallery_keys
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		c.ID, c.TournamentID, c.TournamentName, c.TeamName, c.CaptainName,
		players, c.HeroKey, c.ProofKey, pq.Array(c.GalleryKeys),
	).Scan(&c.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrChampionInvalidTournament
		}
		return err
	}
	return nil
}

func (r *postgresChampionRepository) GetByID(ctx context.Context, id string) (*models.Champion, error) {
	query := `SELECT` + championColumns + ` FROM champions WHERE id = $1`
	c, err := scanChampion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresChampionRepository) List(ctx context.Context) ([]models.Champion, error) {
	query := `SELECT` + championColumns + ` FROM champions ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	champions := make([]models.Champion, 0)
	for rows.Next() {
		c, scanErr := scanChampion(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		champions = append(champions, *c)
	}
	return champions, rows.Err()
}

func (r *postgresChampionRepository) Update(ctx context.Context, c *models.Champion) error {
	players, err := json.Marshal(c.Players)
	if err != nil {
		return fmt.Errorf("failed to encode players: %w", err)
	}

	query := `
		UPDATE champions SET
			tournament_id = $1,
			tournament_name = $2,
			team_name = $3,
			captain_name = $4,
			players = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		c.TournamentID, c.TournamentName, c.TeamName, c.CaptainName, players, c.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrChampionInvalidTournament
		}
		return err
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}

func (r *postgresChampionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM champions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}

func (r *postgresChampionRepository) UpdateMediaKeys(ctx context.Context, id string, heroKey, proofKey *string, galleryKeys []string) error {
	query := `UPDATE champions SET hero_key = $1, proof_key = $2, gallery_keys = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, heroKey, proofKey, pq.Array(galleryKeys), id)
	if err != nil {
		return fmt.Errorf("failed to update champion media keys: %w", err)
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}

func scanChampion(row rowScanner) (*models.Champion, error) {
	var c models.Champion
	var players []byte
	err := row.Scan(
		&c.ID, &c.TournamentID, &c.TournamentName, &c.TeamName, &c.CaptainName,
		&players, &c.HeroKey, &c.ProofKey, pq.Array(&c.GalleryKeys), &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(players, &c.Players); err != nil {
		return nil, fmt.Errorf("failed to decode players for champion %s: %w", c.ID, err)
	}
	return &c, nil
}
