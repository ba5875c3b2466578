package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/merchantfeeadvocate/backend/internal/config"
	"github.com/merchantfeeadvocate/backend/internal/database"
	"github.com/merchantfeeadvocate/backend/internal/database/migrations"
	"github.com/merchantfeeadvocate/backend/internal/jobs"
	"github.com/merchantfeeadvocate/backend/internal/middleware"
	"github.com/merchantfeeadvocate/backend/internal/queue"
	"github.com/merchantfeeadvocate/backend/internal/routes"
	"github.com/merchantfeeadvocate/backend/internal/services/email"
	"github.com/merchantfeeadvocate/backend/internal/services/storage"
	"github.com/merchantfeeadvocate/backend/internal/session"
)

func main() {
	// Initialize configuration (loads .env if present)
	cfg := config.New()

	// Setup database connection
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Admin session store: Redis when reachable, in-memory otherwise
	sessionStore := newSessionStore(cfg)

	// File storage for uploaded documents
	fileStore, err := storage.NewFileStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Job queue and handlers
	jobQueue := queue.NewQueue(db)
	emailService := email.NewEmailService(cfg)
	jobs.NewNotificationJobs(db, emailService, cfg).Register(jobQueue)
	go jobQueue.ProcessJobs()

	// Daily stale-lead reminder sweep
	reminderScheduler := jobs.NewLeadReminderScheduler(db, jobQueue)
	reminderScheduler.Start()

	// Rate limiting
	rateLimiter := middleware.NewRateLimiter(10, 5, 20, 10)

	// Initialize router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Serve uploaded files
	router.Static("/uploads", fileStore.BaseDir())

	// Register routes
	routes.RegisterRoutes(router, db, cfg, sessionStore, jobQueue, fileStore, rateLimiter)

	fmt.Printf("Merchant Fee Advocate API server running on port %s\n", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore prefers Redis and falls back to the in-memory store
// when Redis is not available.
func newSessionStore(cfg *config.Config) session.Store {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis not available (%v), using in-memory session store", err)
		return session.NewMemoryStore()
	}

	return session.NewRedisStore(client)
}
