package main

import (
	"log"
	"net/http"
	"time"

	"wastewatch-backend/internal/config"
	"wastewatch-backend/internal/engine"
	"wastewatch-backend/internal/handlers"
	"wastewatch-backend/internal/registry"
	"wastewatch-backend/internal/services"
	"wastewatch-backend/internal/store"
	"wastewatch-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 WASTE WATCH BACKEND STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()

	// In-memory state: the bin registry and pickup history reset on every
	// restart. Only the sensor log file below survives.
	reg := registry.New(time.Now())
	log.Println("✅ Bin registry seeded (metal, bio, nonbio)")

	logStore := store.NewSensorLog(cfg.LogFilePath)
	log.Printf("✅ Sensor log store at %s", cfg.LogFilePath)

	// Outbound mail. Missing SMTP settings disable dispatch instead of
	// failing startup, so the rest of the system keeps working.
	var dispatcher engine.Dispatcher
	mailer, err := services.NewMailer(cfg)
	if err != nil {
		log.Printf("⚠️  Mail dispatch disabled: %v", err)
	} else {
		dispatcher = mailer
		log.Printf("✅ Mail dispatch ready (%d agents)", len(mailer.Agents()))
	}

	eng := engine.New(reg, dispatcher)

	// Live dashboard feed
	hub := websocket.NewHub()
	go hub.Run()
	log.Println("✅ WebSocket hub started")

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WebSocket endpoint for live bin updates
	r.Get("/ws", websocket.HandleWebSocket(hub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/bins", handlers.GetBins(reg))
		r.Get("/logs", handlers.GetLogs(logStore))
		r.Get("/history", handlers.GetHistory(reg))
		r.Get("/collections/today", handlers.GetCollectionsToday(logStore))

		// Confirmation link target (opened from the pickup email)
		r.Get("/service", handlers.ServiceConfirmation(reg, hub, cfg.ServicedThreshold))

		r.Post("/log-entry", handlers.CreateLogEntry(logStore, reg, eng, hub))
		r.Post("/schedule/{binId}", handlers.ScheduleBin(reg, hub))
		r.Post("/dispatch", handlers.Dispatch(dispatcher))
		r.Post("/bins/{binId}/toggle-autodispatch", handlers.ToggleAutoDispatch(reg, dispatcher, hub))
		r.Post("/increment-bin/{binId}", handlers.IncrementBin(reg, eng, hub))
	})

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
