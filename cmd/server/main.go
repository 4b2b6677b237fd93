package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdfchat-backend/internal/api"
	"pdfchat-backend/internal/config"
	"pdfchat-backend/internal/handlers"
	"pdfchat-backend/internal/llm"
	"pdfchat-backend/internal/pdf"
	"pdfchat-backend/internal/services"
	"pdfchat-backend/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting PDFChat Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	// Use context.Background() for initial setup, but request-scoped contexts later.
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	// Ping DB to verify connection
	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Adapters, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	geminiService, err := llm.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Gemini completion service: %v", err)
	}
	log.Println("Gemini completion service initialized.")

	extractor := pdf.NewExtractor()
	log.Println("PDF extractor initialized.")

	authService := services.NewAuthService(pgStore, cfg)
	log.Println("AuthService initialized.")
	chatService := services.NewChatService(pgStore, geminiService)
	log.Println("ChatService initialized.")

	authHandler := handlers.NewAuthHandler(authService)
	log.Println("AuthHandler initialized.")
	chatHandler := handlers.NewChatHandlers(chatService, extractor, cfg.MaxUploadBytes)
	log.Println("ChatHandler initialized.")

	// 4. Setup Router & Inject Dependencies
	routerDeps := api.RouterDependencies{
		AuthHandler: authHandler,
		ChatHandler: chatHandler,
		Config:      cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	// Run server in a goroutine so it doesn't block
	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	// Wait for interrupt signal
	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
		log.Fatal("Forcing shutdown due to error.")
	}

	log.Println("Server shutdown complete.")
}
