package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/MinoPlay/mexicano/docs"
	"github.com/MinoPlay/mexicano/handlers"
	"github.com/MinoPlay/mexicano/middleware"
)

func SetupRoutes(
	router chi.Router,
	logger *slog.Logger,
	allowedOrigins []string,
	metricsHandler http.Handler,
	tournamentHandler *handlers.TournamentHandler,
	roundHandler *handlers.RoundHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Location", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", handlers.NewHealthHandler(logger))
	if metricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", metricsHandler)
	}
	router.Get("/swagger/doc.json", docs.Handler)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Get("/ws/tournaments/{date}", webSocketHandler.ServeWs)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Post("/", tournamentHandler.CreateHandler)

		r.Route("/{date}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetHandler)
			r.Delete("/", tournamentHandler.DeleteHandler)

			r.Post("/rounds", roundHandler.GenerateHandler)
			r.Put("/rounds/{roundNumber}/matches/{matchID}/score", roundHandler.UpdateScoreHandler)

			r.Get("/standings", standingsHandler.GetHandler)
			r.Get("/standings.xlsx", standingsHandler.ExportHandler)
			r.Get("/stats", standingsHandler.StatsHandler)
			r.Get("/edit-window", standingsHandler.EditWindowHandler)
		})
	})
}
