package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentbase/certscan/internal/database"
	"github.com/talentbase/certscan/internal/middleware"
	"github.com/talentbase/certscan/internal/models"
	"github.com/talentbase/certscan/internal/services"
)

const photoURLExpiry = 15 * time.Minute

// ListEmployees returns all employees (admin only)
func (h *Handler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.db.ListEmployees(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list employees")
	}
	return Success(c, employees)
}

// GetEmployee returns one employee by ID. Non-admin callers can only
// fetch their own record.
func (h *Handler) GetEmployee(c *fiber.Ctx) error {
	id := c.Params("id")
	if middleware.GetRole(c) != models.RoleAdmin && middleware.GetEmployeeID(c) != id {
		return Error(c, fiber.StatusForbidden, "access denied")
	}

	employee, err := h.db.GetEmployeeByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get employee")
	}

	return Success(c, employee)
}

// GetEmployeeByUsername returns one employee by username (admin only)
func (h *Handler) GetEmployeeByUsername(c *fiber.Ctx) error {
	employee, err := h.db.GetEmployeeByUsername(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get employee")
	}

	return Success(c, employee)
}

// CreateEmployee registers a new employee account (admin only)
func (h *Handler) CreateEmployee(c *fiber.Ctx) error {
	var req models.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Username == "" {
		return Error(c, fiber.StatusBadRequest, "name and username are required")
	}
	if len(req.Password) < 8 {
		return Error(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to hash password")
	}

	employee := &models.Employee{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Age:          req.Age,
		PasswordHash: string(hash),
		Role:         req.Role,
		Position:     req.Position,
	}

	created, err := h.db.CreateEmployee(c.Context(), employee)
	if err != nil {
		if errors.Is(err, database.ErrUsernameExists) {
			return Error(c, fiber.StatusConflict, "username already exists")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create employee")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    created,
	})
}

// UpdateEmployee updates employee fields (admin only)
func (h *Handler) UpdateEmployee(c *fiber.Ctx) error {
	var req models.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	employee, err := h.db.UpdateEmployee(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update employee")
	}

	return Success(c, employee)
}

// DeleteEmployee removes an employee account (admin only)
func (h *Handler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.db.DeleteEmployee(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete employee")
	}

	return Success(c, fiber.Map{"message": "employee deleted"})
}

// GetEmployeePhoto returns a fresh presigned URL for the employee's stored
// photo. Presigned URLs expire, so clients fetch a new one here instead of
// reusing the one from the upload response.
func (h *Handler) GetEmployeePhoto(c *fiber.Ctx) error {
	id := c.Params("id")
	if middleware.GetRole(c) != models.RoleAdmin && middleware.GetEmployeeID(c) != id {
		return Error(c, fiber.StatusForbidden, "access denied")
	}

	employee, err := h.db.GetEmployeeByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get employee")
	}

	if employee.PhotoKey == nil {
		return Error(c, fiber.StatusNotFound, "employee has no photo")
	}

	url, err := h.storage.GetPresignedURL(c.Context(), *employee.PhotoKey, photoURLExpiry)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate photo URL")
	}

	return Success(c, fiber.Map{
		"photo_key": *employee.PhotoKey,
		"photo_url": url,
	})
}

// UploadEmployeePhoto stores a profile photo in object storage and records
// its key. Employees can update their own photo; admins can update anyone's.
func (h *Handler) UploadEmployeePhoto(c *fiber.Ctx) error {
	id := c.Params("id")
	if middleware.GetRole(c) != models.RoleAdmin && middleware.GetEmployeeID(c) != id {
		return Error(c, fiber.StatusForbidden, "access denied")
	}

	if _, err := h.db.GetEmployeeByID(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get employee")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "photo file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	key := services.PhotoKey(id, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := h.storage.Upload(c.Context(), key, file, fileHeader.Size, contentType); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to store photo")
	}

	if err := h.db.UpdateEmployeePhotoKey(c.Context(), id, key); err != nil {
		// Don't leave an orphaned object behind
		_ = h.storage.Delete(c.Context(), key)
		return Error(c, fiber.StatusInternalServerError, "failed to record photo")
	}

	url, err := h.storage.GetPresignedURL(c.Context(), key, photoURLExpiry)
	if err != nil {
		return Success(c, fiber.Map{"photo_key": key})
	}

	return Success(c, fiber.Map{
		"photo_key": key,
		"photo_url": url,
	})
}
