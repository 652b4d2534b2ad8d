package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/Amanastel/TicketFlow/config"
	"github.com/Amanastel/TicketFlow/internal/handler"
	"github.com/Amanastel/TicketFlow/internal/middleware"
	"github.com/Amanastel/TicketFlow/internal/repository"
	"github.com/Amanastel/TicketFlow/internal/reservation"
	"github.com/Amanastel/TicketFlow/pkg/cache"
	"github.com/Amanastel/TicketFlow/pkg/db"
)

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// ── Connect to PostgreSQL ───────────────────────────
	pgPool, err := db.NewPostgresPool(ctx, cfg.Persistence)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer pgPool.Close()
	log.Println("postgres connected")

	// ── Connect to Redis ────────────────────────────────
	redisClient, err := cache.NewRedisClient(ctx, cfg.Cache)
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("redis connected")

	// ── Initialize the reservation core ─────────────────
	journal := repository.NewTicketJournal(pgPool)
	availabilityCache := repository.NewAvailabilityCache(redisClient)

	coordinator := reservation.NewCoordinator(journal)

	history, err := journal.Replay(ctx)
	if err != nil {
		log.Fatalf("failed to replay ticket journal: %v", err)
	}
	coordinator.SeedHistory(history)
	log.Printf("replayed %d historical tickets from the journal", len(history))

	// ── Initialize handlers ──────────────────────────────
	bookingHandler := handler.NewBookingHandler(coordinator, availabilityCache)
	cancelHandler := handler.NewCancelHandler(coordinator, availabilityCache)
	statusHandler := handler.NewStatusHandler(coordinator, availabilityCache)
	healthHandler := handler.NewHealthHandler(pgPool, redisClient)

	// ── Setup router ────────────────────────────────────
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger, middleware.Recoverer)

	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/available", statusHandler.Available).Methods(http.MethodGet)
	api.HandleFunc("/booked", statusHandler.Booked).Methods(http.MethodGet)
	api.HandleFunc("/book", bookingHandler.Book).Methods(http.MethodPost)
	api.HandleFunc("/cancel/{ticket_id}", cancelHandler.Cancel).Methods(http.MethodPost)

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in a goroutine so we can listen for shutdown signals.
	go func() {
		log.Printf("server listening on %s", cfg.Server.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server gracefully stopped")
}
