package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentbase/certscan/internal/models"
)

var ErrCertificateNotFound = errors.New("certificate not found")

// InsertCertificate stores a new certificate record and returns it with its ID
func (db *DB) InsertCertificate(ctx context.Context, cert *models.Certificate) (*models.Certificate, error) {
	now := time.Now().UTC()
	cert.CreatedAt = now
	cert.UpdatedAt = now

	result, err := db.certificates.InsertOne(ctx, cert)
	if err != nil {
		return nil, fmt.Errorf("failed to insert certificate: %w", err)
	}

	cert.ID = result.InsertedID.(primitive.ObjectID)
	return cert, nil
}

// GetCertificateByID fetches a certificate by its hex object ID
func (db *DB) GetCertificateByID(ctx context.Context, id string) (*models.Certificate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCertificateNotFound
	}

	var cert models.Certificate
	err = db.certificates.FindOne(ctx, bson.M{"_id": oid}).Decode(&cert)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCertificateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}
	return &cert, nil
}

// ListCertificates returns all certificates, newest first
func (db *DB) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	return db.listCertificates(ctx, bson.M{})
}

// ListCertificatesByEmployee returns one employee's certificates, newest first
func (db *DB) ListCertificatesByEmployee(ctx context.Context, employeeID string) ([]models.Certificate, error) {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}
	return db.listCertificates(ctx, bson.M{"employee_id": oid})
}

func (db *DB) listCertificates(ctx context.Context, filter bson.M) ([]models.Certificate, error) {
	cursor, err := db.certificates.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer cursor.Close(ctx)

	certs := []models.Certificate{}
	if err := cursor.All(ctx, &certs); err != nil {
		return nil, fmt.Errorf("failed to decode certificates: %w", err)
	}
	return certs, nil
}

// UpdateCertificate applies the non-nil fields of the request
func (db *DB) UpdateCertificate(ctx context.Context, id string, req *models.UpdateCertificateRequest) (*models.Certificate, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrCertificateNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.CourseName != nil {
		set["course_name"] = *req.CourseName
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Duration != nil {
		set["duration"] = *req.Duration
	}

	result, err := db.certificates.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update certificate: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrCertificateNotFound
	}

	return db.GetCertificateByID(ctx, id)
}

// DeleteCertificate removes a certificate record
func (db *DB) DeleteCertificate(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrCertificateNotFound
	}

	result, err := db.certificates.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete certificate: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCertificateNotFound
	}
	return nil
}
