package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ffarena/arena-backend/models"
)

// SubmissionResult is the terminal outcome of a session.
type SubmissionResult struct {
	Success bool   `json:"success"`
	TeamID  string `json:"id,omitempty"`
}

// Wizard drives the fixed 4-step registration flow over one shared record.
// One instance per registration session; the instance is the single writer
// of its record. All exported methods are safe for concurrent use; HTTP
// handlers and the async metadata fetch may interleave.
type Wizard struct {
	backend Backend
	logger  *slog.Logger

	mu         sync.Mutex
	step       Step
	record     Record
	submitting bool
	closed     bool
	result     SubmissionResult
}

// New creates a session for the given tournament. The record starts with
// empty defaults; call Initialize to merge the tournament snapshot in.
func New(tournamentID string, backend Backend, logger *slog.Logger) *Wizard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Wizard{
		backend: backend,
		logger:  logger,
		step:    StepTeamInfo,
		record:  newRecord(tournamentID),
	}
}

// Initialize fetches tournament metadata and merges the two denormalized
// fields into the record. Only those two fields are touched: a fetch that
// completes after the user has typed ahead must not clobber their input.
// Late responses against a closed session are discarded.
func (w *Wizard) Initialize(ctx context.Context) error {
	w.mu.Lock()
	tournamentID := w.record.TournamentID
	w.mu.Unlock()

	t, err := w.backend.FetchTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("%w: %w", ErrTournamentLookup, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrSessionClosed
	}
	w.record.TournamentName = t.TournamentName
	w.record.EntryFee = t.EntryFee
	return nil
}

// UpdateRecord shallow-merges a partial update. Validation is the step's
// responsibility before calling this; the merge itself never validates.
func (w *Wizard) UpdateRecord(p Patch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.record.apply(p)
}

// Advance moves to the next step; no-op at the last one.
func (w *Wizard) Advance() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step < lastStep {
		w.step++
	}
}

// Retreat moves to the previous step; no-op at the first one.
func (w *Wizard) Retreat() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepTeamInfo {
		w.step--
	}
}

// Current returns the active step index.
func (w *Wizard) Current() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Snapshot returns a copy of the record and the submission result for
// rendering. The confirmation view must check Result.Success before
// trusting the record as finalized data.
func (w *Wizard) Snapshot() (Record, SubmissionResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.record, w.result
}

// Submit finalizes the registration: upload the receipt under a fresh key,
// persist the team document, then best-effort persist the captain profile.
// Only callable from the payment step. While a submit is in flight, further
// calls are rejected; this is an idempotent guard, not a queue.
//
// On any failure the record is left unchanged and the user stays on the
// payment step; a retry re-uploads rather than reusing a stale receipt.
func (w *Wizard) Submit(ctx context.Context, receipt *ReceiptFile) (SubmissionResult, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return SubmissionResult{}, ErrSessionClosed
	}
	if w.step != StepPayment {
		w.mu.Unlock()
		return SubmissionResult{}, ErrNotPaymentStep
	}
	if w.submitting {
		w.mu.Unlock()
		return SubmissionResult{}, ErrSubmitInProgress
	}
	w.submitting = true
	record := w.record
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	// Fail fast, before any network call.
	if receipt == nil {
		return SubmissionResult{}, ErrMissingReceipt
	}
	if err := ValidateReceipt(receipt.ContentType, receipt.Size); err != nil {
		return SubmissionResult{}, err
	}

	receiptURL, err := w.backend.UploadReceipt(ctx, *receipt)
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	team := record.finalize(receiptURL, time.Now().UTC())
	teamID, err := w.backend.CreateTeam(ctx, team)
	if err != nil {
		return SubmissionResult{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	// Secondary write: the team registration is authoritative, a captain
	// profile failure is logged and swallowed.
	captain := team.Captain()
	profile := &models.Player{
		Name:     captain.IGN,
		Phone:    team.CaptainContact,
		Email:    team.CaptainEmail,
		UID:      captain.UID,
		IsLocked: true,
	}
	if err := w.backend.CreateCaptainProfile(ctx, profile); err != nil {
		w.logger.Warn("captain profile write failed after team registration",
			slog.String("team_id", teamID),
			slog.Any("error", err))
	}

	result := SubmissionResult{Success: true, TeamID: teamID}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		// Session died mid-flight; the registration stands but there is
		// nowhere to render it.
		return result, ErrSessionClosed
	}
	w.record.ReceiptURL = team.ReceiptURL
	w.record.CreatedAt = team.CreatedAt
	w.result = result
	// Force-advance regardless of how the step index drifted meanwhile.
	w.step = StepConfirmation
	return result, nil
}

// Close marks the session dead. Late async responses are discarded instead
// of being applied to a torn-down session.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}
