package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/paddyguard/paddyguard-backend/internal/config"
	"github.com/paddyguard/paddyguard-backend/internal/database"
	"github.com/paddyguard/paddyguard-backend/internal/handlers"
	"github.com/paddyguard/paddyguard-backend/internal/middleware"
	"github.com/paddyguard/paddyguard-backend/internal/routes"
	"github.com/paddyguard/paddyguard-backend/internal/services"
	"github.com/paddyguard/paddyguard-backend/internal/store"
	"github.com/paddyguard/paddyguard-backend/pkg/utils"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL (user directory)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (sessions, recovery challenges, rate limits)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (prediction history); the API stays up without
	// it, farmers just lose their history view.
	log.Printf("Connecting to MongoDB...")
	var history *services.HistoryService
	if err := database.ConnectMongo(cfg.MongoURI); err != nil {
		log.Printf("⚠️  WARNING: failed to connect to MongoDB: %v", err)
		log.Println("   Prediction history will not be available")
	} else {
		defer database.DisconnectMongo()
		history = services.NewHistoryService(database.MongoDB)
		if err := history.EnsureIndexes(context.Background()); err != nil {
			log.Printf("⚠️  WARNING: failed to ensure prediction indexes: %v", err)
		} else {
			log.Println("✅ MongoDB prediction indexes ensured")
		}
	}

	// Cloudinary archives submitted crop images
	var images *services.ImageArchive
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		archive, err := services.NewImageArchive(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: failed to initialize Cloudinary: %v", err)
			log.Println("Crop images will not be archived")
		} else {
			images = archive
			log.Println("✅ Cloudinary image archive initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Crop images will not be archived")
	}

	// Seed the single administrator record
	adminHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}
	directory := store.NewPostgresDirectory(database.PostgresDB, store.AdminSeed{
		Email:        cfg.AdminEmail,
		Mobile:       cfg.AdminMobile,
		PasswordHash: adminHash,
	})
	if err := directory.Initialize(context.Background()); err != nil {
		log.Fatal("Failed to initialize user directory:", err)
	}

	// Wire services
	sessions := services.NewSessionService(database.RedisClient)
	recovery := services.NewRecoveryService(database.RedisClient)
	auth := services.NewAuthService(directory, sessions, recovery, services.LogNotifier{})
	predictor := services.NewPredictionService(cfg.InferenceURL, cfg.InferenceAPIKey)
	if !predictor.Available() {
		log.Println("⚠️  WARNING: INFERENCE_URL not set. Pest analysis will not be available")
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	}

	// Health check (no auth, no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, routes.Deps{
		Auth:     handlers.NewAuthHandler(auth),
		Recovery: handlers.NewRecoveryHandler(auth),
		Admin:    handlers.NewAdminHandler(directory),
		Predict:  handlers.NewPredictHandler(predictor, images, history),
		Sessions: sessions,
		Redis:    database.RedisClient,
	})

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/register")
	log.Println("  POST /api/auth/login")
	log.Println("  POST /api/auth/logout")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/auth/recovery/request")
	log.Println("  POST /api/auth/recovery/verify")
	log.Println("  POST /api/auth/recovery/reset")
	log.Println("  POST /api/predict")
	log.Println("  GET  /api/predictions")
	log.Println("  GET  /api/admin/farmers")

	log.Printf("🚀 PaddyGuard backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
