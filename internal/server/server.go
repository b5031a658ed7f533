package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      Store
	log     *slog.Logger
	apiKey  string
	metrics *Metrics
	lc      *local.Client
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db Store, apiKey string, metrics *Metrics, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		log:     log,
		apiKey:  apiKey,
		metrics: metrics,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale wires the tsnet local client used to resolve request
// identity. Without it the server runs in dev mode with a single local user.
func (s *Server) SetTailscale(lc *local.Client) {
	s.lc = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.metrics.Instrument)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.identity)

		// Write path (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/executions", s.handleRecordExecution)
			r.Put("/executions/{id}/phases", s.handleUpsertPhase)
		})

		// Read-side analytics
		r.Get("/executions/{id}", s.handleGetExecution)
		r.Get("/records", s.handleRecords)
		r.Get("/recovery", s.handleRecovery)
		r.Get("/history/strength", s.handleStrengthHistory)
		r.Get("/history/volume", s.handleVolumeHistory)
		r.Get("/stats", s.handleStats)

		// Catalog and planning
		r.Get("/settypes", s.handleSetTypes)
		r.Get("/settypes/{id}/plan", s.handlePlan)
		r.Get("/exercises", s.handleExercises)

		// Pure calculator, no persistence
		r.Get("/plates", s.handlePlates)

		r.Get("/me", s.handleMe)
	})

	s.router.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
}
