package main

import (
	"log"

	"medicgrow/backend/config"
	"medicgrow/backend/middleware"
	"medicgrow/backend/routes"
	"medicgrow/backend/scheduler"
	"medicgrow/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg)

	// Start background jobs
	jobs := scheduler.New(db, cfg, logger)
	jobs.Start()
	defer jobs.Stop()

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
