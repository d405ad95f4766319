package main

import (
	"log"
	"net/http"

	"studentboard/internal/api"
	"studentboard/internal/config"
	"studentboard/internal/dataset"
	"studentboard/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	// Optionally pre-load the default dataset
	if cfg.DataPath != "" {
		table, err := dataset.LoadCSV(cfg.DataPath)
		if err != nil {
			log.Fatalf("Failed to load dataset %s: %v", cfg.DataPath, err)
		}
		state.State.SetTable(table, cfg.DataPath)
		log.Printf("Loaded %d students from %s", table.NumRows(), cfg.DataPath)
	}

	handler := api.NewHandler()

	// Router Setup
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// CORS - Allow frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Student Performance Backend is Running"))
	})

	// Register all API Routes
	handler.RegisterRoutes(r)

	log.Printf("Starting student performance backend on http://localhost:%s", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
