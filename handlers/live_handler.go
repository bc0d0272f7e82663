package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ffarena/arena-backend/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced on the HTTP routes; the socket is public
		// read-only event fan-out.
		return true
	},
}

type LiveHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewLiveHandler(hub *live.Hub, logger *slog.Logger) *LiveHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LiveHandler{hub: hub, logger: logger}
}

// ServeTournamentFeed handles GET /ws/tournaments/{id}. It upgrades the
// connection and subscribes it to the tournament's event room.
func (h *LiveHandler) ServeTournamentFeed(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "id")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	live.NewClient(h.hub, conn, tournamentID)
}
