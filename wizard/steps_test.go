package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffarena/arena-backend/models"
)

// TestTeamInfoFormValidate covers the first step's field rules.
func TestTeamInfoFormValidate(t *testing.T) {
	tests := []struct {
		name      string
		form      TeamInfoForm
		wantField string
	}{
		{
			name: "valid",
			form: TeamInfoForm{
				TeamName:       "Alpha Squad",
				CaptainContact: "9876543210",
				CaptainEmail:   "captain@example.com",
			},
		},
		{
			name: "team name too short",
			form: TeamInfoForm{
				TeamName:       "Al",
				CaptainContact: "9876543210",
				CaptainEmail:   "captain@example.com",
			},
			wantField: "teamName",
		},
		{
			name: "team name only whitespace",
			form: TeamInfoForm{
				TeamName:       "    ",
				CaptainContact: "9876543210",
				CaptainEmail:   "captain@example.com",
			},
			wantField: "teamName",
		},
		{
			name: "phone with bad leading digit",
			form: TeamInfoForm{
				TeamName:       "Alpha Squad",
				CaptainContact: "5876543210",
				CaptainEmail:   "captain@example.com",
			},
			wantField: "captainContact",
		},
		{
			name: "phone too short",
			form: TeamInfoForm{
				TeamName:       "Alpha Squad",
				CaptainContact: "987654321",
				CaptainEmail:   "captain@example.com",
			},
			wantField: "captainContact",
		},
		{
			name: "email without domain",
			form: TeamInfoForm{
				TeamName:       "Alpha Squad",
				CaptainContact: "9876543210",
				CaptainEmail:   "captain@",
			},
			wantField: "captainEmail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.wantField == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

// TestPlayersFormValidate checks that every roster slot is validated and
// errors are keyed per slot.
func TestPlayersFormValidate(t *testing.T) {
	form := PlayersForm{Players: validRoster()}
	assert.Nil(t, form.Validate())

	form.Players[2] = models.PlayerEntry{IGN: "ab", UID: "123"}
	errs := form.Validate()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "players[2].ign")
	assert.Contains(t, errs, "players[2].uid")
	assert.NotContains(t, errs, "players[0].ign")
	assert.Len(t, errs, 2)
}

// TestValidateReceipt checks the receipt policy's distinct rejections.
func TestValidateReceipt(t *testing.T) {
	assert.NoError(t, ValidateReceipt("image/jpeg", 1024))
	assert.NoError(t, ValidateReceipt("image/png", MaxReceiptSize))
	assert.NoError(t, ValidateReceipt("image/webp", 1))

	assert.ErrorIs(t, ValidateReceipt("image/gif", 1024), ErrUnsupportedReceiptType)
	assert.ErrorIs(t, ValidateReceipt("application/pdf", 1024), ErrUnsupportedReceiptType)
	assert.ErrorIs(t, ValidateReceipt("image/png", MaxReceiptSize+1), ErrReceiptTooLarge)
}

// TestReceiptExtension checks the key suffix mapping.
func TestReceiptExtension(t *testing.T) {
	ext, err := ReceiptExtension("image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	_, err = ReceiptExtension("image/svg+xml")
	assert.ErrorIs(t, err, ErrUnsupportedReceiptType)
}

// TestStepString checks the step labels used in session state payloads.
func TestStepString(t *testing.T) {
	assert.Equal(t, "team_info", StepTeamInfo.String())
	assert.Equal(t, "players", StepPlayers.String())
	assert.Equal(t, "payment", StepPayment.String())
	assert.Equal(t, "confirmation", StepConfirmation.String())
	assert.Equal(t, "unknown", Step(42).String())
}
