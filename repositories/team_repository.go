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
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamInvalidTournament = errors.New("invalid tournament reference")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error)
	CountByTournament(ctx context.Context, tournamentID string) (int, error)
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error
	UpdateSlot(ctx context.Context, id string, slot *int) error
	UpdateRoomCredsSent(ctx context.Context, id string, sent bool) error
	UpdateResult(ctx context.Context, id string, kills int, resultRank *int, prizeAmount int) error
	UpdatePayoutStatus(ctx context.Context, id string, status models.PayoutStatus) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `
	id, team_name, captain_contact, captain_email, players, tournament_id,
	tournament_name, entry_fee, payment_status, receipt_url, slot,
	room_creds_sent, kills, result_rank, prize_amount, payout_status, created_at`

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	players, err := json.Marshal(team.Players)
	if err != nil {
		return fmt.Errorf("failed to encode players: %w", err)
	}

	team.ID = uuid.New().String()
	query := `
		INSERT INTO teams (
			id, team_name, captain_contact, captain_email, players,
			tournament_id, tournament_name, entry_fee, payment_status,
			receipt_url, slot, room_creds_sent, kills, result_rank,
			prize_amount, payout_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = r.db.ExecContext(ctx, query,
		team.ID, team.TeamName, team.CaptainContact, team.CaptainEmail, players,
		team.TournamentID, team.TournamentName, team.EntryFee, team.PaymentStatus,
		team.ReceiptURL, team.Slot, team.RoomCredsSent, team.Kills, team.ResultRank,
		team.PrizeAmount, team.PayoutStatus, team.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamInvalidTournament
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE id = $1`
	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	query := `SELECT` + teamColumns + ` FROM teams WHERE tournament_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) CountByTournament(ctx context.Context, tournamentID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM teams WHERE tournament_id = $1`, tournamentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}

func (r *postgresTeamRepository) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateSlot(ctx context.Context, id string, slot *int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET slot = $1 WHERE id = $2`, slot, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateRoomCredsSent(ctx context.Context, id string, sent bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET room_creds_sent = $1 WHERE id = $2`, sent, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateResult(ctx context.Context, id string, kills int, resultRank *int, prizeAmount int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET kills = $1, result_rank = $2, prize_amount = $3 WHERE id = $4`,
		kills, resultRank, prizeAmount, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdatePayoutStatus(ctx context.Context, id string, status models.PayoutStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET payout_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var t models.Team
	var players []byte
	err := row.Scan(
		&t.ID, &t.TeamName, &t.CaptainContact, &t.CaptainEmail, &players,
		&t.TournamentID, &t.TournamentName, &t.EntryFee, &t.PaymentStatus,
		&t.ReceiptURL, &t.Slot, &t.RoomCredsSent, &t.Kills, &t.ResultRank,
		&t.PrizeAmount, &t.PayoutStatus, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(players, &t.Players); err != nil {
		return nil, fmt.Errorf("failed to decode players for team %s: %w", t.ID, err)
	}
	return &t, nil
}
