package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ffarena/arena-backend/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Standings handles GET /tournaments/{id}/leaderboard.
func (h *LeaderboardHandler) Standings(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "id")

	entries, err := h.leaderboardService.TournamentStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
