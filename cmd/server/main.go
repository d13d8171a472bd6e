package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kasflow/backend/docs"
	"github.com/kasflow/backend/internal/audit"
	"github.com/kasflow/backend/internal/config"
	"github.com/kasflow/backend/internal/database"
	"github.com/kasflow/backend/internal/handlers"
	"github.com/kasflow/backend/internal/repository"
	"github.com/kasflow/backend/internal/services"
)

// @title Kasflow Personal Finance API
// @version 1.0
// @description Accounts, categories, transactions, recurring transactions and a dashboard for a personal finance ledger
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	config.Init(".env")
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set")
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	db := database.InitDatabase()
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	store := repository.NewPostgres(db)
	auditLogger := audit.NewLogger()

	ledger := services.NewLedgerService(store, auditLogger)
	accounts := services.NewAccountService(store)
	categories := services.NewCategoryService(store)
	recurring := services.NewRecurringService(store, store, store)
	summary := services.NewSummaryService(store, store)

	health := map[string]handlers.Pinger{"postgres": db}
	if redisClient != nil {
		health["redis"] = handlers.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	router := handlers.NewRouter(handlers.Services{
		Transactions: ledger,
		Accounts:     accounts,
		Categories:   categories,
		Recurring:    recurring,
		Dashboard:    summary,
		Health:       health,
	}, handlers.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		SwaggerURL:     "http://localhost:" + cfg.Port + "/swagger/doc.json",
		Location:       cfg.Scheduler.Location(),
	})

	if cfg.Scheduler.Enabled {
		lock := services.NewRunLock(redisClient, cfg.Scheduler.LockTTL)
		scheduler := services.NewScheduler(store, ledger, lock, auditLogger, cfg.Scheduler.Location())
		go scheduler.RunDaily(ctx)
		log.Printf("[SCHEDULER] daily recurring run enabled (%s)", cfg.Scheduler.Location())
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[SERVER] starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("[SERVER] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("[SERVER] stopped")
}
