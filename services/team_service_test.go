package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffarena/arena-backend/models"
)

func seedTeam(repo *fakeTeamRepo) string {
	return repo.add(models.Team{
		TeamName:      "Alpha Squad",
		TournamentID:  "t1",
		PaymentStatus: models.PaymentPending,
		PayoutStatus:  models.PayoutPending,
	})
}

// TestSetPaymentStatus checks the verify transition and the enum guard.
func TestSetPaymentStatus(t *testing.T) {
	repo := newFakeTeamRepo()
	id := seedTeam(repo)
	svc := NewTeamService(repo, nil, nil)

	team, err := svc.SetPaymentStatus(context.Background(), id, models.PaymentVerified)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentVerified, team.PaymentStatus)

	_, err = svc.SetPaymentStatus(context.Background(), id, models.PaymentStatus("approved"))
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)

	_, err = svc.SetPaymentStatus(context.Background(), "missing", models.PaymentRejected)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

// TestAssignSlot checks slot assignment and the positive-slot guard.
func TestAssignSlot(t *testing.T) {
	repo := newFakeTeamRepo()
	id := seedTeam(repo)
	svc := NewTeamService(repo, nil, nil)

	team, err := svc.AssignSlot(context.Background(), id, 7)
	require.NoError(t, err)
	require.NotNil(t, team.Slot)
	assert.Equal(t, 7, *team.Slot)

	_, err = svc.AssignSlot(context.Background(), id, 0)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

// TestMarkRoomCredsSent checks the flag round-trips.
func TestMarkRoomCredsSent(t *testing.T) {
	repo := newFakeTeamRepo()
	id := seedTeam(repo)
	svc := NewTeamService(repo, nil, nil)

	team, err := svc.MarkRoomCredsSent(context.Background(), id, true)
	require.NoError(t, err)
	assert.True(t, team.RoomCredsSent)

	team, err = svc.MarkRoomCredsSent(context.Background(), id, false)
	require.NoError(t, err)
	assert.False(t, team.RoomCredsSent)
}

// TestRecordResult checks result persistence and input validation.
func TestRecordResult(t *testing.T) {
	repo := newFakeTeamRepo()
	id := seedTeam(repo)
	svc := NewTeamService(repo, nil, nil)

	team, err := svc.RecordResult(context.Background(), id, ResultInput{
		Kills:       23,
		ResultRank:  intPtr(1),
		PrizeAmount: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 23, team.Kills)
	require.NotNil(t, team.ResultRank)
	assert.Equal(t, 1, *team.ResultRank)
	assert.Equal(t, 500, team.PrizeAmount)

	_, err = svc.RecordResult(context.Background(), id, ResultInput{Kills: -1})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.RecordResult(context.Background(), id, ResultInput{ResultRank: intPtr(0)})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

// TestSetPayoutStatus checks the payout transition and enum guard.
func TestSetPayoutStatus(t *testing.T) {
	repo := newFakeTeamRepo()
	id := seedTeam(repo)
	svc := NewTeamService(repo, nil, nil)

	team, err := svc.SetPayoutStatus(context.Background(), id, models.PayoutCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.PayoutCompleted, team.PayoutStatus)

	_, err = svc.SetPayoutStatus(context.Background(), id, models.PayoutStatus("done"))
	assert.ErrorIs(t, err, ErrInvalidPayoutStatus)
}
