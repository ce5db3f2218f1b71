package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port           string
	AllowedOrigins string

	// Database
	MongoURL      string
	MongoDatabase string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Admin
	AdminUsername string
	AdminPassword string

	// Environment
	Environment string

	// OCR
	OCRLanguage    string
	OCRPageSegMode int

	// Extraction
	SharpnessThreshold float64
	DictionaryPath     string

	// S3/MinIO Storage
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	S3Region    string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8000"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		MongoURL:           getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "certscan"),
		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production-please"),
		JWTExpiry:          getDurationEnv("JWT_EXPIRY_HOURS", 24) * time.Hour,
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		Environment:        getEnv("ENVIRONMENT", "development"),
		OCRLanguage:        getEnv("OCR_LANGUAGE", "por"),
		OCRPageSegMode:     getIntEnv("OCR_PAGE_SEG_MODE", 6),
		SharpnessThreshold: getFloatEnv("SHARPNESS_THRESHOLD", 100),
		DictionaryPath:     getEnv("DICTIONARY_PATH", ""),
		S3Endpoint:         getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:        getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:        getEnv("S3_SECRET_KEY", ""),
		S3Bucket:           getEnv("S3_BUCKET", "certificates"),
		S3UseSSL:           getBoolEnv("S3_USE_SSL", false),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
	}
	return time.Duration(defaultValue)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
