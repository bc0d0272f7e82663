package services

import "errors"

// Business errors shared across services and the HTTP error mapper.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed        = errors.New("validation failed")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTournamentInvalidFee    = errors.New("tournament entry fee cannot be negative")
	ErrTournamentInvalidType   = errors.New("invalid tournament type provided")
	ErrTournamentInvalidStatus = errors.New("invalid tournament status provided")
	ErrTournamentInvalidSize   = errors.New("tournament max teams must be positive")
	ErrTournamentStartRequired = errors.New("tournament start date is required")
	ErrRegistrationClosed      = errors.New("tournament registration is closed")
	ErrTournamentFull          = errors.New("tournament registration is full")
	ErrChampionTeamRequired    = errors.New("champion team name is required")
	ErrInvalidPaymentStatus    = errors.New("invalid payment status provided")
	ErrInvalidPayoutStatus     = errors.New("invalid payout status provided")
	ErrInvalidSlot             = errors.New("slot must be positive")

	// Conflicts
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTournamentInUse        = errors.New("tournament has registered teams or champion records")
	ErrUserEmailConflict      = errors.New("email address is already in use")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Entity-specific not-found variants
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrChampionNotFound   = errors.New("champion record not found")

	// Upload policy
	ErrUnsupportedImageType = errors.New("unsupported image content type")
)
