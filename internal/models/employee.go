package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Position describes the job an employee holds
type Position struct {
	Title  string  `json:"title" bson:"title"`
	Salary float64 `json:"salary" bson:"salary"`
}

// Employee represents a registered employee account
type Employee struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Username     string             `json:"username" bson:"username"`
	Email        string             `json:"email" bson:"email"`
	Age          int                `json:"age" bson:"age"`
	PasswordHash string             `json:"-" bson:"password_hash"` // Never expose in JSON
	Role         Role               `json:"role" bson:"role"`
	Position     Position           `json:"position" bson:"position"`
	PhotoKey     *string            `json:"photo_key,omitempty" bson:"photo_key,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	LastLoginAt  *time.Time         `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
}

// IsAdmin checks if the employee has admin role
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful login
type AuthResponse struct {
	Token    string    `json:"token"`
	Employee *Employee `json:"employee"`
}

// CreateEmployeeRequest is the request body for employee creation
type CreateEmployeeRequest struct {
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Age      int      `json:"age"`
	Password string   `json:"password"`
	Role     Role     `json:"role"`
	Position Position `json:"position"`
}

// UpdateEmployeeRequest is the request body for updating an employee
type UpdateEmployeeRequest struct {
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Age      *int      `json:"age,omitempty"`
	Role     *Role     `json:"role,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// ChangePasswordRequest is the request body for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
