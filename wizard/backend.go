package wizard

import (
	"context"
	"io"

	"github.com/ffarena/arena-backend/models"
)

// ReceiptFile is the uploaded payment proof as it arrives from the client.
type ReceiptFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Backend is everything the wizard needs from the outside world. The
// registration service implements it over the repositories and the object
// storage uploader; tests supply fakes.
type Backend interface {
	// FetchTournament loads the metadata snapshot for a session. It must
	// return ErrTournamentNotFound when the document is absent, so the
	// wizard can tell "gone" apart from a transport failure.
	FetchTournament(ctx context.Context, id string) (*models.Tournament, error)

	// UploadReceipt stores the file under a fresh unique key and returns
	// the publicly retrievable URL.
	UploadReceipt(ctx context.Context, file ReceiptFile) (string, error)

	// CreateTeam persists the finalized registration and returns the
	// store-assigned identifier.
	CreateTeam(ctx context.Context, team *models.Team) (string, error)

	// CreateCaptainProfile persists the locked captain document. This is
	// the secondary write: a failure is logged by the wizard but never
	// rolls back or fails the registration.
	CreateCaptainProfile(ctx context.Context, player *models.Player) error
}
