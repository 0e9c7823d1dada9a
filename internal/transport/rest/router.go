package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"reeltrivia/internal/config"
	"reeltrivia/internal/service"
	"reeltrivia/internal/transport/rest/handler"
	"reeltrivia/internal/transport/rest/middleware"
	"reeltrivia/internal/transport/ws"
)

// Container holds all dependencies for the router.
type Container struct {
	Config         *config.Config
	AuthService    *service.AuthService
	CatalogService *service.CatalogService
	GameService    *service.GameService
	EntryService   *service.EntryService
	ReportService  *service.ReportService
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.AuthService)
	catalogHandler := handler.NewCatalogHandler(c.CatalogService)
	gameHandler := handler.NewGameHandler(c.GameService)
	entryHandler := handler.NewEntryHandler(c.EntryService)
	reportHandler := handler.NewReportHandler(c.ReportService)
	wsHandler := ws.NewHandler(c.WSHub, c.GameService, nil)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config))

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/search", catalogHandler.Search).Methods("GET", "OPTIONS")
	v1.HandleFunc("/genres", catalogHandler.Genres).Methods("GET", "OPTIONS")
	v1.HandleFunc("/bounds", catalogHandler.Bounds).Methods("GET", "OPTIONS")
	v1.HandleFunc("/franchises", catalogHandler.Franchises).Methods("GET", "OPTIONS")

	// Game routes (public; games live on the couch, not behind accounts)
	v1.HandleFunc("/games", gameHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{id}", gameHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/games/{id}", gameHandler.Delete).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/games/{id}/start", gameHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{id}/next", gameHandler.Next).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{id}/answers", gameHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/games/{id}/ranking", gameHandler.Ranking).Methods("GET", "OPTIONS")
	v1.HandleFunc("/games/{id}/report", reportHandler.Scores).Methods("GET", "OPTIONS")

	// WebSocket route for spectator screens
	v1.HandleFunc("/ws/games/{id}", wsHandler.GameWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Data-entry routes (require host auth)
	entry := v1.PathPrefix("/entry").Subrouter()
	entry.Use(authMW.RequireHost)

	entry.HandleFunc("/movies", entryHandler.SearchMovies).Methods("GET", "OPTIONS")
	entry.HandleFunc("/movies/{tmdbId}", entryHandler.Movie).Methods("GET", "OPTIONS")
	entry.HandleFunc("/cast/{imdbId}", entryHandler.Cast).Methods("GET", "OPTIONS")
	entry.HandleFunc("/omdb/{imdbId}", entryHandler.OMDbRating).Methods("GET", "OPTIONS")
	entry.HandleFunc("/dates/{imdbId}", entryHandler.ProductionDates).Methods("GET", "OPTIONS")
	entry.HandleFunc("/productions/{id}", entryHandler.Production).Methods("GET", "OPTIONS")
	entry.HandleFunc("/productions/{id}", entryHandler.SaveProduction).Methods("PUT", "OPTIONS")
	entry.HandleFunc("/check-actors", entryHandler.CheckActors).Methods("POST", "OPTIONS")
	entry.HandleFunc("/check-roles", entryHandler.CheckRoles).Methods("POST", "OPTIONS")
	entry.HandleFunc("/role-exists", entryHandler.RoleExists).Methods("GET", "OPTIONS")
	entry.HandleFunc("/actors", entryHandler.AddActor).Methods("POST", "OPTIONS")
	entry.HandleFunc("/roles", entryHandler.AddRoles).Methods("POST", "OPTIONS")
	entry.HandleFunc("/bulk-update", entryHandler.BulkUpdate).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.CORSAllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.CORSAllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
