package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/talentbase/certscan/internal/config"
	"github.com/talentbase/certscan/internal/database"
	"github.com/talentbase/certscan/internal/handlers"
	"github.com/talentbase/certscan/internal/middleware"
	"github.com/talentbase/certscan/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.MongoURL, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Create admin account if it doesn't exist
	if err := database.EnsureAdminEmployee(db, cfg); err != nil {
		log.Printf("Warning: Could not ensure admin account: %v", err)
	}

	// Initialize object storage for certificate scans and photos
	storage, err := services.NewStorageService(
		cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	if err := storage.EnsureBucket(context.Background()); err != nil {
		log.Printf("Warning: Failed to ensure bucket exists: %v", err)
	}

	// Build the extraction pipeline
	var dict services.Dictionary
	if cfg.DictionaryPath != "" {
		d, err := services.NewDictionaryFromFile(cfg.DictionaryPath)
		if err != nil {
			log.Fatalf("Failed to load dictionary from %s: %v", cfg.DictionaryPath, err)
		}
		dict = d
	} else {
		dict = services.NewDictionary()
	}

	ocr := services.NewOCRService(cfg.OCRLanguage, cfg.OCRPageSegMode)
	pipeline := services.NewPipeline(ocr, dict, cfg.SharpnessThreshold)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    30 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, storage, pipeline)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)
	auth.Post("/refresh", middleware.AuthRequired(cfg), h.RefreshToken)
	auth.Post("/change-password", middleware.AuthRequired(cfg), h.ChangePassword)

	// Employee routes (authenticated; mutations are admin only)
	employees := api.Group("/employees", middleware.AuthRequired(cfg))
	employees.Get("/", middleware.AdminRequired(), h.ListEmployees)
	employees.Post("/", middleware.AdminRequired(), h.CreateEmployee)
	employees.Get("/username/:username", middleware.AdminRequired(), h.GetEmployeeByUsername)
	employees.Get("/:id", h.GetEmployee)
	employees.Put("/:id", middleware.AdminRequired(), h.UpdateEmployee)
	employees.Delete("/:id", middleware.AdminRequired(), h.DeleteEmployee)
	employees.Post("/:id/photo", h.UploadEmployeePhoto)
	employees.Get("/:id/photo", h.GetEmployeePhoto)
	employees.Get("/:id/certificates", h.ListEmployeeCertificates)

	// Certificate routes (authenticated; mutations are admin only)
	certificates := api.Group("/certificates", middleware.AuthRequired(cfg))
	certificates.Get("/", h.ListCertificates)
	certificates.Post("/", middleware.AdminRequired(), h.CreateCertificate)
	certificates.Get("/:id", h.GetCertificate)
	certificates.Put("/:id", middleware.AdminRequired(), h.UpdateCertificate)
	certificates.Delete("/:id", middleware.AdminRequired(), h.DeleteCertificate)

	// Extraction route (authenticated)
	api.Post("/extract", middleware.AuthRequired(cfg), h.ExtractCertificate)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
