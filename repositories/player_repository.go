package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ffarena/arena-backend/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByUID(ctx context.Context, gameUID string) (*models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	player.ID = uuid.New().String()
	query := `
		INSERT INTO players (id, name, phone, email, uid, is_locked)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		player.ID, player.Name, player.Phone, player.Email, player.UID, player.IsLocked,
	).Scan(&player.CreatedAt)
}

func (r *postgresPlayerRepository) GetByUID(ctx context.Context, gameUID string) (*models.Player, error) {
	query := `
		SELECT id, name, phone, email, uid, is_locked, created_at
		FROM players
		WHERE uid = $1
		ORDER BY created_at DESC
		LIMIT 1`

	p := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, gameUID).Scan(
		&p.ID, &p.Name, &p.Phone, &p.Email, &p.UID, &p.IsLocked, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}
