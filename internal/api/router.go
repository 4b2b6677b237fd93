package api

import (
	"log"
	"net/http"
	"time"

	"pdfchat-backend/internal/config"
	"pdfchat-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler *handlers.AuthHandler
	ChatHandler *handlers.ChatHandlers
	Config      *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// --- CORS Configuration ---
	// Adjust AllowedOrigins for your frontend deployment(s)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://*.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- Authenticated Routes (JWT Required) ---
	if deps.ChatHandler != nil {
		r.Route("/api/chat", func(r chi.Router) {
			r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))

			r.Post("/upload", deps.ChatHandler.HandleUploadPDF)
			r.Post("/chat", deps.ChatHandler.HandleChat)
			r.Get("/history", deps.ChatHandler.HandleGetHistory)
			r.Get("/history/{chatID}", deps.ChatHandler.HandleGetChatMessages)
			r.Delete("/history/{chatID}", deps.ChatHandler.HandleDeleteChat)
		})
	} else {
		log.Println("WARN: ChatHandler dependency is nil, skipping /api/chat routes.")
	}

	return r
}
