package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ffarena/arena-backend/handlers"
	"github.com/ffarena/arena-backend/middleware"
)

// SetupRoutes mounts the public browsing and registration surface, the
// authenticated admin panel, and the websocket feed on the given router.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	registrationHandler *handlers.RegistrationHandler,
	teamHandler *handlers.TeamHandler,
	championHandler *handlers.ChampionHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	liveHandler *handlers.LiveHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{id}", tournamentHandler.Get)
		r.Get("/{id}/leaderboard", leaderboardHandler.Standings)
		r.Post("/{id}/register", registrationHandler.Start)
	})

	router.Route("/register/{sessionID}", func(r chi.Router) {
		r.Get("/", registrationHandler.GetState)
		r.Post("/team-info", registrationHandler.SubmitTeamInfo)
		r.Post("/players", registrationHandler.SubmitPlayers)
		r.Post("/back", registrationHandler.Back)
		r.Post("/submit", registrationHandler.Submit)
		r.Delete("/", registrationHandler.End)
	})

	router.Route("/champions", func(r chi.Router) {
		r.Get("/", championHandler.List)
		r.Get("/{id}", championHandler.Get)
	})

	router.Get("/ws/tournaments/{id}", liveHandler.ServeTournamentFeed)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.RequireAdmin)

		r.Post("/users", authHandler.CreateAdmin)

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", tournamentHandler.Create)
			r.Put("/{id}", tournamentHandler.Update)
			r.Delete("/{id}", tournamentHandler.Delete)
			r.Post("/{id}/banner", tournamentHandler.UploadBanner)
			r.Get("/{id}/teams", teamHandler.ListByTournament)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/{id}", teamHandler.Get)
			r.Patch("/{id}/payment", teamHandler.SetPaymentStatus)
			r.Patch("/{id}/slot", teamHandler.AssignSlot)
			r.Patch("/{id}/room-creds", teamHandler.MarkRoomCredsSent)
			r.Patch("/{id}/result", teamHandler.RecordResult)
			r.Patch("/{id}/payout", teamHandler.SetPayoutStatus)
		})

		r.Route("/champions", func(r chi.Router) {
			r.Post("/", championHandler.Create)
			r.Put("/{id}", championHandler.Update)
			r.Delete("/{id}", championHandler.Delete)
			r.Post("/{id}/media", championHandler.UploadMedia)
		})
	})
}
