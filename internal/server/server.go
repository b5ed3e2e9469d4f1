// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"clipsight/internal/config"
	"clipsight/internal/domain/analysis"
	"clipsight/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	natsConn *nats.Conn,
	engine analysis.Engine,
	store analysis.ReportStore,
	trendingService handlers.TrendingService,
	summarizer handlers.Summarizer,
	runTimeout time.Duration,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	analysisHandler := handlers.NewAnalysisHandler(engine, store, natsConn, summarizer, runTimeout)
	trendingHandler := handlers.NewTrendingHandler(trendingService)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Analyses API
			r.Route("/analyses", func(r chi.Router) {
				r.Post("/", analysisHandler.StartAnalysis)
				r.Get("/", analysisHandler.ListAnalyses)
				r.Get("/{id}", analysisHandler.GetAnalysis)
				r.Post("/{id}/summary", analysisHandler.SummarizeAnalysis)
			})

			// Trending API
			r.Route("/trending", func(r chi.Router) {
				r.Get("/videos", trendingHandler.GetVideos)
				r.Get("/sounds", trendingHandler.GetSounds)
				r.Get("/hashtags", trendingHandler.GetHashtags)
			})
		})
	})

	// WebSocket endpoint for real-time run progress
	router.Get("/ws/analyses/{id}", handlers.AnalysisWebSocketHandler(natsConn))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
