package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentbase/certscan/internal/database"
	"github.com/talentbase/certscan/internal/middleware"
	"github.com/talentbase/certscan/internal/models"
)

// Login authenticates an employee and returns a JWT
func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return Error(c, fiber.StatusBadRequest, "username and password are required")
	}

	employee, err := h.db.GetEmployeeByUsername(c.Context(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return Error(c, fiber.StatusInternalServerError, "login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.generateToken(employee)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	// Best effort; a failed stamp shouldn't block the login
	_ = h.db.UpdateEmployeeLastLogin(c.Context(), employee.ID.Hex())

	return Success(c, models.AuthResponse{
		Token:    token,
		Employee: employee,
	})
}

// GetCurrentUser returns the authenticated employee's own record
func (h *Handler) GetCurrentUser(c *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(c)
	if employeeID == "" {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	employee, err := h.db.GetEmployeeByID(c.Context(), employeeID)
	if err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get employee")
	}

	return Success(c, employee)
}

// RefreshToken issues a new token for the authenticated employee
func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(c)
	if employeeID == "" {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	employee, err := h.db.GetEmployeeByID(c.Context(), employeeID)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	token, err := h.generateToken(employee)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	return Success(c, models.AuthResponse{
		Token:    token,
		Employee: employee,
	})
}

// ChangePassword lets the authenticated employee change their own password
func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	employeeID := middleware.GetEmployeeID(c)
	if employeeID == "" {
		return Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.NewPassword) < 8 {
		return Error(c, fiber.StatusBadRequest, "new password must be at least 8 characters")
	}

	employee, err := h.db.GetEmployeeByID(c.Context(), employeeID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to get employee")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return Error(c, fiber.StatusUnauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	if err := h.db.UpdateEmployeePassword(c.Context(), employeeID, string(hash)); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to update password")
	}

	return Success(c, fiber.Map{"message": "password updated"})
}

func (h *Handler) generateToken(employee *models.Employee) (string, error) {
	claims := middleware.JWTClaims{
		EmployeeID: employee.ID.Hex(),
		Username:   employee.Username,
		Role:       employee.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   employee.ID.Hex(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
