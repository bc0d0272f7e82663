package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ffarena/arena-backend/config"
	"github.com/ffarena/arena-backend/wizard"
)

// RegistrationHandler exposes the squad registration wizard over HTTP. Each
// session is a server side wizard instance addressed by the id handed out at
// start; the client walks the steps by posting forms against that id.
type RegistrationHandler struct {
	backend  wizard.Backend
	registry *wizard.Registry
	cfg      *config.Config
	logger   *slog.Logger
}

func NewRegistrationHandler(backend wizard.Backend, registry *wizard.Registry, cfg *config.Config, logger *slog.Logger) *RegistrationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationHandler{
		backend:  backend,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

type sessionState struct {
	SessionID   string                  `json:"sessionId"`
	Step        int                     `json:"step"`
	StepName    string                  `json:"stepName"`
	Record      wizard.Record           `json:"record"`
	PaymentLink string                  `json:"paymentLink,omitempty"`
	Result      wizard.SubmissionResult `json:"result"`
}

func (h *RegistrationHandler) state(sessionID string, w *wizard.Wizard) sessionState {
	record, result := w.Snapshot()
	step := w.Current()

	state := sessionState{
		SessionID: sessionID,
		Step:      int(step),
		StepName:  step.String(),
		Record:    record,
		Result:    result,
	}
	if step == wizard.StepPayment {
		state.PaymentLink = wizard.PaymentLink(
			h.cfg.UPIPayeeAddress,
			h.cfg.UPIPayeeName,
			record.EntryFee,
			record.TeamName,
			record.TournamentName,
		)
	}
	return state
}

// Start handles POST /tournaments/{id}/register. It opens a new wizard
// session for the tournament and returns its initial state.
func (h *RegistrationHandler) Start(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "id")

	wiz := wizard.New(tournamentID, h.backend, h.logger)
	if err := wiz.Initialize(r.Context()); err != nil {
		wiz.Close()
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	sessionID := h.registry.Put(wiz)
	h.logger.Info("registration session started",
		"session_id", sessionID,
		"tournament_id", tournamentID,
	)

	if err := writeJSON(w, http.StatusCreated, h.state(sessionID, wiz), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetState handles GET /register/{sessionID}.
func (h *RegistrationHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := writeJSON(w, http.StatusOK, h.state(sessionID, wiz), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitTeamInfo handles POST /register/{sessionID}/team-info.
func (h *RegistrationHandler) SubmitTeamInfo(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.session(w, r)
	if !ok {
		return
	}

	var form wizard.TeamInfoForm
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		failedValidationResponse(w, r, errs)
		return
	}

	wiz.UpdateRecord(form.Patch())
	if wiz.Current() == wizard.StepTeamInfo {
		wiz.Advance()
	}

	if err := writeJSON(w, http.StatusOK, h.state(sessionID, wiz), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitPlayers handles POST /register/{sessionID}/players.
func (h *RegistrationHandler) SubmitPlayers(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.session(w, r)
	if !ok {
		return
	}

	var form wizard.PlayersForm
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		failedValidationResponse(w, r, errs)
		return
	}

	wiz.UpdateRecord(form.Patch())
	if wiz.Current() == wizard.StepPlayers {
		wiz.Advance()
	}

	if err := writeJSON(w, http.StatusOK, h.state(sessionID, wiz), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Back handles POST /register/{sessionID}/back.
func (h *RegistrationHandler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.session(w, r)
	if !ok {
		return
	}

	wiz.Retreat()

	if err := writeJSON(w, http.StatusOK, h.state(sessionID, wiz), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Submit handles POST /register/{sessionID}/submit. The receipt image comes
// in as the multipart field "receipt"; the wizard rejects the submission when
// it is absent or does not meet the receipt policy.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(wizard.MaxReceiptSize + 1024); err != nil {
		badRequestResponse(w, r, errors.New("request must be multipart/form-data"))
		return
	}

	var receipt *wizard.ReceiptFile
	file, header, err := r.FormFile("receipt")
	if err == nil {
		defer file.Close()
		receipt = &wizard.ReceiptFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		badRequestResponse(w, r, err)
		return
	}

	result, err := wiz.Submit(r.Context(), receipt)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.logger.Info("registration submitted",
		"session_id", sessionID,
		"team_id", result.TeamID,
	)

	if err := writeJSON(w, http.StatusOK, h.state(sessionID, wiz), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// End handles DELETE /register/{sessionID}. It closes the wizard and drops
// the session; any response still in flight for it is discarded.
func (h *RegistrationHandler) End(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.registry.Delete(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *RegistrationHandler) session(w http.ResponseWriter, r *http.Request) (string, *wizard.Wizard, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	wiz, ok := h.registry.Get(sessionID)
	if !ok {
		notFoundResponse(w, r)
		return "", nil, false
	}
	return sessionID, wiz, true
}
