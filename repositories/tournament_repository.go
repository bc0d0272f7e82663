package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ffarena/arena-backend/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTournamentInUse        = errors.New("tournament has registered teams or champion records")
)

type ListTournamentsFilter struct {
	Status *models.TournamentStatus
	Type   *models.TournamentType
	Limit  int
	Offset int
}

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, t *models.Tournament) error
	Delete(ctx context.Context, id string) error
	UpdateBannerKey(ctx context.Context, id string, bannerKey *string) error
	CloseStarted(ctx context.Context, now time.Time) ([]string, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `
	id, tournament_name, entry_fee, tournament_type, start_date_time,
	max_teams, status, description, banner_key, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = uuid.New().String()
	query := `
		INSERT INTO tournaments (
			id, tournament_name, entry_fee, tournament_type, start_date_time,
			max_teams, status, description, banner_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.TournamentName, t.EntryFee, t.TournamentType, t.StartDateTime,
		t.MaxTeams, t.Status, t.Description, t.BannerKey,
	).Scan(&t.CreatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TournamentName, &t.EntryFee, &t.TournamentType, &t.StartDateTime,
		&t.MaxTeams, &t.Status, &t.Description, &t.BannerKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(" AND tournament_type = $%d", argID)
		args = append(args, *filter.Type)
		argID++
	}

	query += " ORDER BY start_date_time ASC, created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(
			&t.ID, &t.TournamentName, &t.EntryFee, &t.TournamentType, &t.StartDateTime,
			&t.MaxTeams, &t.Status, &t.Description, &t.BannerKey, &t.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			tournament_name = $1,
			entry_fee = $2,
			tournament_type = $3,
			start_date_time = $4,
			max_teams = $5,
			status = $6,
			description = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		t.TournamentName, t.EntryFee, t.TournamentType, t.StartDateTime,
		t.MaxTeams, t.Status, t.Description, t.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateBannerKey(ctx context.Context, id string, bannerKey *string) error {
	query := `UPDATE tournaments SET banner_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, bannerKey, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament banner key: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// CloseStarted flips Open tournaments whose start time has passed to Closed
// and returns their IDs. Driven by the scheduler in main.
func (r *postgresTournamentRepository) CloseStarted(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE tournaments SET status = $1
		WHERE status = $2 AND start_date_time <= $3
		RETURNING id`

	rows, err := r.db.QueryContext(ctx, query, models.StatusClosed, models.StatusOpen, now)
	if err != nil {
		return nil, fmt.Errorf("failed to close started tournaments: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrTournamentNameConflict
		case "23503":
			return ErrTournamentInUse
		}
	}
	return err
}
