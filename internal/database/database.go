package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentbase/certscan/internal/config"
	"github.com/talentbase/certscan/internal/models"
)

// DB wraps the Mongo client and the collections the service uses
type DB struct {
	client       *mongo.Client
	employees    *mongo.Collection
	certificates *mongo.Collection
}

// Connect creates a new database connection
func Connect(mongoURL, databaseName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("unable to create mongo client: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	db := client.Database(databaseName)

	log.Println("Database connected successfully")
	return &DB{
		client:       client,
		employees:    db.Collection("employees"),
		certificates: db.Collection("certificates"),
	}, nil
}

// Close disconnects the Mongo client
func (db *DB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.client.Disconnect(ctx); err != nil {
		log.Printf("Warning: failed to disconnect from database: %v", err)
	}
}

// EnsureIndexes creates the indexes the service relies on
func EnsureIndexes(db *DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.employees.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create employee username index: %w", err)
	}

	_, err = db.certificates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "employee_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create certificate employee index: %w", err)
	}

	return nil
}

// EnsureAdminEmployee creates the admin account if it doesn't exist
func EnsureAdminEmployee(db *DB, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin account creation")
		return nil
	}

	ctx := context.Background()

	count, err := db.employees.CountDocuments(ctx, bson.M{"username": cfg.AdminUsername})
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.CreateEmployee(ctx, &models.Employee{
		Name:         "Administrator",
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Printf("Admin account %q created", cfg.AdminUsername)
	return nil
}
