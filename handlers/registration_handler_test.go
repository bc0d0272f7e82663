package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffarena/arena-backend/config"
	"github.com/ffarena/arena-backend/models"
	"github.com/ffarena/arena-backend/wizard"
)

type stubBackend struct {
	tournament *models.Tournament
	fetchErr   error
	createErr  error
	teamID     string
}

func (s *stubBackend) FetchTournament(ctx context.Context, id string) (*models.Tournament, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.tournament, nil
}

func (s *stubBackend) UploadReceipt(ctx context.Context, file wizard.ReceiptFile) (string, error) {
	return "https://cdn.test/receipts/fake.png", nil
}

func (s *stubBackend) CreateTeam(ctx context.Context, team *models.Team) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	return s.teamID, nil
}

func (s *stubBackend) CreateCaptainProfile(ctx context.Context, player *models.Player) error {
	return nil
}

func newWizardRouter(backend wizard.Backend) (*chi.Mux, *wizard.Registry) {
	cfg := &config.Config{
		UPIPayeeAddress: "arena@upi",
		UPIPayeeName:    "FF Arena",
	}
	registry := wizard.NewRegistry(time.Minute)
	h := NewRegistrationHandler(backend, registry, cfg, nil)

	router := chi.NewRouter()
	router.Post("/tournaments/{id}/register", h.Start)
	router.Route("/register/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetState)
		r.Post("/team-info", h.SubmitTeamInfo)
		r.Post("/players", h.SubmitPlayers)
		r.Post("/back", h.Back)
		r.Post("/submit", h.Submit)
		r.Delete("/", h.End)
	})
	return router, registry
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) sessionState {
	t.Helper()
	var state sessionState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func multipartReceipt(t *testing.T, contentType string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="receipt"; filename="receipt.png"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// TestRegistrationFlowOverHTTP drives a full registration through the HTTP
// surface: start, both forms, receipt submission, confirmation state.
func TestRegistrationFlowOverHTTP(t *testing.T) {
	backend := &stubBackend{
		tournament: &models.Tournament{
			ID:             "t1",
			TournamentName: "Weekend Cup",
			EntryFee:       50,
			Status:         models.StatusOpen,
		},
		teamID: "team-1",
	}
	router, _ := newWizardRouter(backend)

	rec := doJSON(t, router, http.MethodPost, "/tournaments/t1/register", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	state := decodeState(t, rec)
	require.NotEmpty(t, state.SessionID)
	assert.Equal(t, "team_info", state.StepName)
	assert.Equal(t, "Weekend Cup", state.Record.TournamentName)
	assert.Empty(t, state.PaymentLink)

	base := "/register/" + state.SessionID

	rec = doJSON(t, router, http.MethodPost, base+"/team-info", wizard.TeamInfoForm{
		TeamName:       "Alpha Squad",
		CaptainContact: "9876543210",
		CaptainEmail:   "captain@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "players", decodeState(t, rec).StepName)

	rec = doJSON(t, router, http.MethodPost, base+"/players", wizard.PlayersForm{
		Players: [models.SquadSize]models.PlayerEntry{
			{IGN: "AlphaOne", UID: "1234567"},
			{IGN: "AlphaTwo", UID: "2345678"},
			{IGN: "AlphaThree", UID: "3456789"},
			{IGN: "AlphaFour", UID: "4567890"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	assert.Equal(t, "payment", state.StepName)
	assert.Equal(t,
		"upi://pay?pa=arena@upi&pn=FF%20Arena&am=50&cu=INR&tn=Entry%20Fee%20for%20Alpha%20Squad%20in%20Weekend%20Cup",
		state.PaymentLink)

	body, contentType := multipartReceipt(t, "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, base+"/submit", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeState(t, rec)
	assert.Equal(t, "confirmation", state.StepName)
	assert.True(t, state.Result.Success)
	assert.Equal(t, "team-1", state.Result.TeamID)
}

// TestStartUnknownTournament checks the 404 versus 502 distinction at
// session start.
func TestStartUnknownTournament(t *testing.T) {
	router, _ := newWizardRouter(&stubBackend{fetchErr: wizard.ErrTournamentNotFound})

	rec := doJSON(t, router, http.MethodPost, "/tournaments/missing/register", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestStartLookupFailure checks transport failures surface as retryable.
func TestStartLookupFailure(t *testing.T) {
	router, _ := newWizardRouter(&stubBackend{fetchErr: errors.New("connection refused")})

	rec := doJSON(t, router, http.MethodPost, "/tournaments/t1/register", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// TestTeamInfoValidationOverHTTP checks invalid fields return a 422 with the
// field map and the step does not advance.
func TestTeamInfoValidationOverHTTP(t *testing.T) {
	backend := &stubBackend{
		tournament: &models.Tournament{ID: "t1", TournamentName: "Weekend Cup", EntryFee: 50},
	}
	router, _ := newWizardRouter(backend)

	rec := doJSON(t, router, http.MethodPost, "/tournaments/t1/register", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	state := decodeState(t, rec)

	rec = doJSON(t, router, http.MethodPost, "/register/"+state.SessionID+"/team-info", wizard.TeamInfoForm{
		TeamName:       "Al",
		CaptainContact: "12345",
		CaptainEmail:   "not-an-email",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Error, "teamName")
	assert.Contains(t, envelope.Error, "captainContact")
	assert.Contains(t, envelope.Error, "captainEmail")

	rec = doJSON(t, router, http.MethodGet, "/register/"+state.SessionID, nil)
	assert.Equal(t, "team_info", decodeState(t, rec).StepName)
}

// TestSubmitWithoutReceiptOverHTTP checks a multipart post without the
// receipt part is a 400.
func TestSubmitWithoutReceiptOverHTTP(t *testing.T) {
	backend := &stubBackend{
		tournament: &models.Tournament{ID: "t1", TournamentName: "Weekend Cup", EntryFee: 50},
		teamID:     "team-1",
	}
	router, registry := newWizardRouter(backend)

	rec := doJSON(t, router, http.MethodPost, "/tournaments/t1/register", nil)
	state := decodeState(t, rec)

	wiz, ok := registry.Get(state.SessionID)
	require.True(t, ok)
	wiz.Advance()
	wiz.Advance()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/register/"+state.SessionID+"/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "receipt is required")
}

// TestUnknownSession checks session lookups miss with a 404.
func TestUnknownSession(t *testing.T) {
	router, _ := newWizardRouter(&stubBackend{})

	rec := doJSON(t, router, http.MethodGet, "/register/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestEndSession checks DELETE drops the session.
func TestEndSession(t *testing.T) {
	backend := &stubBackend{
		tournament: &models.Tournament{ID: "t1", TournamentName: "Weekend Cup", EntryFee: 50},
	}
	router, registry := newWizardRouter(backend)

	rec := doJSON(t, router, http.MethodPost, "/tournaments/t1/register", nil)
	state := decodeState(t, rec)
	require.Equal(t, 1, registry.Len())

	req := httptest.NewRequest(http.MethodDelete, "/register/"+state.SessionID, nil)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)

	assert.Equal(t, http.StatusNoContent, rec2.Code)
	assert.Equal(t, 0, registry.Len())
}

// TestBackNavigation checks the back endpoint retreats one step.
func TestBackNavigation(t *testing.T) {
	backend := &stubBackend{
		tournament: &models.Tournament{ID: "t1", TournamentName: "Weekend Cup", EntryFee: 50},
	}
	router, _ := newWizardRouter(backend)

	rec := doJSON(t, router, http.MethodPost, "/tournaments/t1/register", nil)
	state := decodeState(t, rec)
	base := "/register/" + state.SessionID

	rec = doJSON(t, router, http.MethodPost, base+"/team-info", wizard.TeamInfoForm{
		TeamName:       "Alpha Squad",
		CaptainContact: "9876543210",
		CaptainEmail:   "captain@example.com",
	})
	require.Equal(t, "players", decodeState(t, rec).StepName)

	rec = doJSON(t, router, http.MethodPost, base+"/back", nil)
	state = decodeState(t, rec)
	assert.Equal(t, "team_info", state.StepName)
	// User input survives navigation.
	assert.Equal(t, "Alpha Squad", state.Record.TeamName)
}
