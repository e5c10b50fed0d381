package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/quantumspace/research-platform/pkg/chat"
	"github.com/quantumspace/research-platform/pkg/config"
	"github.com/quantumspace/research-platform/pkg/database"
	"github.com/quantumspace/research-platform/pkg/research"
	"github.com/quantumspace/research-platform/pkg/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.Load()

	// Database Connection
	db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL, database.Options{
		MaxConns: cfg.MaxConns,
		MinConns: cfg.MinConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Schema
	if err := db.InitSchema(context.Background()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Research Store & startup seeding
	store := research.NewStore(db)
	seeded, err := store.Seed(context.Background())
	if err != nil {
		// Best-effort convenience, not a migration system
		slog.Error("Startup seeding failed", "error", err)
	} else if seeded {
		slog.Info("Database initialized with sample research data")
	}

	// Chat Relay
	relay, err := chat.NewService(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to init chat service: %v", err)
	}

	handler := server.NewHandler(store, relay)

	// Web Server Setup
	r := gin.Default()
	r.Use(server.RequestLogger())

	// CORS Setup: fully open by policy
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Mcp-Session-Id"},
		ExposeHeaders:    []string{"Content-Length", "Mcp-Session-Id"},
		AllowCredentials: false,
	}))

	handler.RegisterRoutes(r)

	fmt.Printf("Server starting on port %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
