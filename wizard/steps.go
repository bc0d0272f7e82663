package wizard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ffarena/arena-backend/models"
)

// Step indexes the fixed linear flow.
type Step int

const (
	StepTeamInfo Step = iota
	StepPlayers
	StepPayment
	StepConfirmation

	lastStep = StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepTeamInfo:
		return "team_info"
	case StepPlayers:
		return "players"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	}
	return "unknown"
}

var (
	// Indian mobile number: 10 digits, leading 6-9.
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	// Platform player UID: 5-12 digits.
	uidPattern   = regexp.MustCompile(`^\d{5,12}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// TeamInfoForm carries the fields of the first step.
type TeamInfoForm struct {
	TeamName       string `json:"teamName"`
	CaptainContact string `json:"captainContact"`
	CaptainEmail   string `json:"captainEmail"`
}

// Validate checks the form synchronously. A nil return means the form may
// be merged and the flow advanced.
func (f TeamInfoForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if len(strings.TrimSpace(f.TeamName)) < 3 {
		errs["teamName"] = "team name must be at least 3 characters"
	}
	if !phonePattern.MatchString(f.CaptainContact) {
		errs["captainContact"] = "enter a valid 10-digit mobile number"
	}
	if !emailPattern.MatchString(f.CaptainEmail) {
		errs["captainEmail"] = "enter a valid email address"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Patch converts a validated form into a record update.
func (f TeamInfoForm) Patch() Patch {
	name := strings.TrimSpace(f.TeamName)
	return Patch{
		TeamName:       &name,
		CaptainContact: &f.CaptainContact,
		CaptainEmail:   &f.CaptainEmail,
	}
}

// PlayersForm carries the fixed 4 roster sub-forms. Index 0 is the captain.
type PlayersForm struct {
	Players [models.SquadSize]models.PlayerEntry `json:"players"`
}

// Validate requires every roster slot to pass; partial validity does not
// advance the flow.
func (f PlayersForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	for i, p := range f.Players {
		if len(strings.TrimSpace(p.IGN)) < 3 {
			errs[fmt.Sprintf("players[%d].ign", i)] = "IGN must be at least 3 characters"
		}
		if !uidPattern.MatchString(p.UID) {
			errs[fmt.Sprintf("players[%d].uid", i)] = "UID must be 5-12 digits"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f PlayersForm) Patch() Patch {
	players := f.Players
	return Patch{Players: &players}
}

// MaxReceiptSize is the upload ceiling for payment receipts.
const MaxReceiptSize = 2 * 1024 * 1024

var receiptExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ValidateReceipt enforces the payment-step file policy before any network
// call, with distinct errors for wrong type and oversize.
func ValidateReceipt(contentType string, size int64) error {
	if _, ok := receiptExtensions[contentType]; !ok {
		return ErrUnsupportedReceiptType
	}
	if size > MaxReceiptSize {
		return ErrReceiptTooLarge
	}
	return nil
}

// ReceiptExtension maps an accepted content type to a storage key suffix.
func ReceiptExtension(contentType string) (string, error) {
	ext, ok := receiptExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedReceiptType
	}
	return ext, nil
}
