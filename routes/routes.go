package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/thoufiq2326/NexusAI/app"
	"github.com/thoufiq2326/NexusAI/handlers"
	"github.com/thoufiq2326/NexusAI/middleware"
	"github.com/thoufiq2326/NexusAI/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))
	r.Use(middleware.Recoverer(deps.Journal, deps.Logger))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	health := handlers.NewHealthHandler(deps.Engine, deps.Logger)
	pipeline := handlers.NewPipelineHandler(deps.Engine, deps.Logger)
	cfg := handlers.NewConfigHandler(deps.Engine, deps.Logger)
	upload := handlers.NewUploadHandler(deps.Engine, deps.Config.Pipeline.MaxUploadBytes, deps.Logger)
	exports := handlers.NewExportHandler(deps.Engine, deps.Logger)
	stream := handlers.NewLogStreamHandler(deps.Journal, deps.Hub, handlers.LogStreamConfig{
		KeepaliveInterval: deps.Config.Pipeline.KeepaliveInterval,
		OriginPatterns:    handlers.OriginPatterns(deps.Config.CORS.AllowedOrigins),
	}, deps.Metrics, deps.Logger)

	// Health check endpoints
	r.Get("/health", health.HandleHealth)
	r.Get("/health/ready", health.HandleReadiness)

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	// Long-lived push channel, outside the request timeout
	r.Get("/ws/logs", stream.HandleLogs)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout(deps)))

		r.Get("/status", pipeline.HandleStatus)
		r.Get("/leads", pipeline.HandleLeads)
		r.Get("/logs", pipeline.HandleLogs)
		r.Get("/audit", pipeline.HandleAudit)
		r.Get("/analytics", pipeline.HandleAnalytics)
		r.Post("/run-swarm", pipeline.HandleRunSwarm)
		r.Post("/reset", pipeline.HandleReset)

		r.Post("/config", cfg.HandleConfig)
		r.Post("/upload", upload.HandleUpload)

		r.Route("/export", func(r chi.Router) {
			r.Get("/csv", exports.HandleLeadsCSV)
			r.Get("/audit", exports.HandleAuditJSON)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})

	return r
}

func requestTimeout(deps *app.Dependencies) time.Duration {
	if t := deps.Config.Server.RequestTimeout; t > 0 {
		return t
	}
	return 60 * time.Second
}
