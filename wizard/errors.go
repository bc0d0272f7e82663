package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Failure taxonomy of the registration flow. Everything here is recoverable:
// the caller either fixes the input and retries, or navigates away.
var (
	// ErrTournamentNotFound means the tournament document does not exist.
	// Distinct from a transport failure: the caller should leave the flow.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrTournamentLookup wraps a backend/transport failure while loading
	// tournament metadata. Retryable; the session stays usable.
	ErrTournamentLookup = errors.New("failed to load tournament")

	// ErrMissingReceipt is returned before any network call when submit is
	// invoked without a receipt file.
	ErrMissingReceipt = errors.New("payment receipt is required")

	// ErrUnsupportedReceiptType and ErrReceiptTooLarge reject out-of-policy
	// files before they reach the uploader.
	ErrUnsupportedReceiptType = errors.New("receipt must be a JPG, PNG or WEBP image")
	ErrReceiptTooLarge        = errors.New("receipt exceeds the 2 MiB size limit")

	// ErrUpload wraps an object-storage failure. The record is unchanged and
	// the user may resubmit with the same or a different file.
	ErrUpload = errors.New("receipt upload failed")

	// ErrRegistrationFailed wraps a team-document write failure after a
	// successful upload. A retry re-uploads; the stale receipt is abandoned.
	ErrRegistrationFailed = errors.New("registration could not be saved")

	// ErrSubmitInProgress rejects a second submit while one is in flight.
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrNotPaymentStep guards submit against being driven from any step
	// other than Payment.
	ErrNotPaymentStep = errors.New("submission is only possible from the payment step")

	// ErrSessionClosed is returned when the session has expired or been
	// discarded; late responses against it are dropped.
	ErrSessionClosed = errors.New("registration session is closed")
)

// ValidationErrors maps field names to human-readable messages. A step with
// a non-empty map must not advance.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
