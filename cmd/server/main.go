package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/zetedec/lanchat/internal/config"
	"github.com/zetedec/lanchat/internal/database"
	postgresrepo "github.com/zetedec/lanchat/internal/repository/postgres"
	"github.com/zetedec/lanchat/internal/service"
	"github.com/zetedec/lanchat/internal/transport/http/handlers"
	"github.com/zetedec/lanchat/internal/transport/http/middleware"
	"github.com/zetedec/lanchat/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	groupRepo := postgresrepo.NewGroupRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminUsername)
	userService := service.NewUserService(userRepo)
	groupService := service.NewGroupService(groupRepo)
	messageService := service.NewMessageService(messageRepo, groupRepo, userRepo)
	queryService := service.NewQueryService(messageRepo, groupRepo, userRepo)
	uploadService, err := service.NewUploadService(cfg.UploadsDir)
	if err != nil {
		log.Fatal(err)
	}

	// Live fan-out
	hub := ws.NewHub()
	go hub.Run()
	messageService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	messageHandler := handlers.NewMessageHandler(messageService)
	queryHandler := handlers.NewQueryHandler(queryService)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.MaxUploadMB)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Users
	mux.Handle("GET /api/v1/me", auth(http.HandlerFunc(userHandler.Me)))
	mux.Handle("GET /api/v1/users", auth(http.HandlerFunc(userHandler.List)))
	mux.Handle("GET /api/v1/users/{id}", auth(http.HandlerFunc(userHandler.Get)))
	mux.Handle("PATCH /api/v1/profile", auth(http.HandlerFunc(userHandler.UpdateProfile)))

	// Protected - Groups
	mux.Handle("POST /api/v1/groups", auth(http.HandlerFunc(groupHandler.Create)))
	mux.Handle("GET /api/v1/groups", auth(http.HandlerFunc(groupHandler.List)))

	// Protected - Messages
	mux.Handle("POST /api/v1/messages", auth(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("GET /api/v1/messages", auth(http.HandlerFunc(queryHandler.List)))
	mux.Handle("GET /api/v1/messages/search", auth(http.HandlerFunc(queryHandler.Search)))
	mux.Handle("PUT /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Edit)))
	mux.Handle("DELETE /api/v1/messages/{id}", auth(http.HandlerFunc(messageHandler.Delete)))
	mux.Handle("GET /api/v1/backup", auth(http.HandlerFunc(queryHandler.Backup)))

	// Protected - Uploads
	mux.Handle("POST /api/v1/upload", auth(http.HandlerFunc(uploadHandler.Upload)))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	// Live transport; a fresh connection counts as activity
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret, func(userID int64) {
		if err := userRepo.TouchLastSeen(context.Background(), userID, time.Now()); err != nil {
			log.Printf("ws: touch last_seen for user %d: %v", userID, err)
		}
	}))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
