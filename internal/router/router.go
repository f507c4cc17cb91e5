package router

import (
	"terreins-inventory-api/internal/handler"
	"terreins-inventory-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler       *handler.Handler
	PartHandler   *handler.PartHandler
	ReportHandler *handler.ReportHandler
	AIHandler     *handler.AIHandler
	AdminHandler  *handler.AdminHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.PartHandler != nil {
			r.Get("/categories", cfg.PartHandler.ListCategories)

			r.Route("/parts", func(r chi.Router) {
				r.Get("/", cfg.PartHandler.ListParts)
				r.Post("/", cfg.PartHandler.CreatePart)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", cfg.PartHandler.GetPart)
					r.Put("/", cfg.PartHandler.UpdatePart)
					r.Delete("/", cfg.PartHandler.DeletePart)
					r.Post("/sales", cfg.PartHandler.RecordSale)
					r.Post("/stock-adjustments", cfg.PartHandler.AdjustStock)
				})
			})
		}

		if cfg.ReportHandler != nil {
			r.Route("/reports", func(r chi.Router) {
				r.Get("/dashboard", cfg.ReportHandler.Dashboard)
				r.Get("/summary", cfg.ReportHandler.Summary)
				r.Get("/eod", cfg.ReportHandler.EndOfDay)
			})
		}

		if cfg.AIHandler != nil {
			r.Route("/ai", func(r chi.Router) {
				r.Post("/description", cfg.AIHandler.GenerateDescription)
				r.Post("/reorder-suggestion", cfg.AIHandler.SuggestReorder)
			})
		}

		if cfg.AdminHandler != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Get("/stats", cfg.AdminHandler.GetStats)
			})
		}
	})

	return r
}
