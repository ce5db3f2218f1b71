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

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUsernameExists   = errors.New("username already exists")
)

// CreateEmployee inserts a new employee and returns it with its generated ID
func (db *DB) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	count, err := db.employees.CountDocuments(ctx, bson.M{"username": employee.Username})
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameExists
	}

	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	if employee.Role == "" {
		employee.Role = models.RoleEmployee
	}

	result, err := db.employees.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}

	employee.ID = result.InsertedID.(primitive.ObjectID)
	return employee, nil
}

// GetEmployeeByID fetches an employee by its hex object ID
func (db *DB) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	var employee models.Employee
	err = db.employees.FindOne(ctx, bson.M{"_id": oid}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &employee, nil
}

// GetEmployeeByUsername fetches an employee by username
func (db *DB) GetEmployeeByUsername(ctx context.Context, username string) (*models.Employee, error) {
	var employee models.Employee
	err := db.employees.FindOne(ctx, bson.M{"username": username}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &employee, nil
}

// ListEmployees returns all employees sorted by name
func (db *DB) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	cursor, err := db.employees.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cursor.Close(ctx)

	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return employees, nil
}

// UpdateEmployee applies the non-nil fields of the request
func (db *DB) UpdateEmployee(ctx context.Context, id string, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Age != nil {
		set["age"] = *req.Age
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.Position != nil {
		set["position"] = *req.Position
	}

	result, err := db.employees.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrEmployeeNotFound
	}

	return db.GetEmployeeByID(ctx, id)
}

// UpdateEmployeePhotoKey records the storage key of an employee's photo
func (db *DB) UpdateEmployeePhotoKey(ctx context.Context, id, photoKey string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEmployeeNotFound
	}

	result, err := db.employees.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"photo_key":  photoKey,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update employee photo: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// UpdateEmployeePassword replaces the stored password hash
func (db *DB) UpdateEmployeePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEmployeeNotFound
	}

	result, err := db.employees.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// UpdateEmployeeLastLogin stamps the last successful login time
func (db *DB) UpdateEmployeeLastLogin(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEmployeeNotFound
	}

	_, err = db.employees.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"last_login_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// DeleteEmployee removes an employee account
func (db *DB) DeleteEmployee(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEmployeeNotFound
	}

	result, err := db.employees.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
