package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/talentbase/certscan/internal/database"
	"github.com/talentbase/certscan/internal/middleware"
	"github.com/talentbase/certscan/internal/models"
)

const scanURLExpiry = 15 * time.Minute

// ListCertificates returns certificates. Admins see everything; other
// employees see only their own.
func (h *Handler) ListCertificates(c *fiber.Ctx) error {
	var (
		certs []models.Certificate
		err   error
	)
	if middleware.GetRole(c) == models.RoleAdmin {
		certs, err = h.db.ListCertificates(c.Context())
	} else {
		certs, err = h.db.ListCertificatesByEmployee(c.Context(), middleware.GetEmployeeID(c))
	}
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list certificates")
	}

	return Success(c, certs)
}

// ListEmployeeCertificates returns one employee's certificates
func (h *Handler) ListEmployeeCertificates(c *fiber.Ctx) error {
	id := c.Params("id")
	if middleware.GetRole(c) != models.RoleAdmin && middleware.GetEmployeeID(c) != id {
		return Error(c, fiber.StatusForbidden, "access denied")
	}

	certs, err := h.db.ListCertificatesByEmployee(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to list certificates")
	}

	return Success(c, certs)
}

// GetCertificate returns one certificate, with a presigned URL for its
// stored scan when one exists
func (h *Handler) GetCertificate(c *fiber.Ctx) error {
	cert, err := h.db.GetCertificateByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrCertificateNotFound) {
			return Error(c, fiber.StatusNotFound, "certificate not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get certificate")
	}

	if middleware.GetRole(c) != models.RoleAdmin && middleware.GetEmployeeID(c) != cert.EmployeeID.Hex() {
		return Error(c, fiber.StatusForbidden, "access denied")
	}

	resp := models.ExtractResponse{Certificate: cert}
	if cert.ScanKey != "" {
		if url, err := h.storage.GetPresignedURL(c.Context(), cert.ScanKey, scanURLExpiry); err == nil {
			resp.ScanURL = &url
		}
	}

	return Success(c, resp)
}

// CreateCertificate records a certificate without a scan, for manual entry
// (admin only)
func (h *Handler) CreateCertificate(c *fiber.Ctx) error {
	var req models.CreateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	employeeOID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid employee_id")
	}
	if _, err := h.db.GetEmployeeByID(c.Context(), req.EmployeeID); err != nil {
		if errors.Is(err, database.ErrEmployeeNotFound) {
			return Error(c, fiber.StatusNotFound, "employee not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get employee")
	}

	cert := &models.Certificate{
		EmployeeID: employeeOID,
		CourseName: req.CourseName,
		Date:       req.Date,
		Duration:   req.Duration,
	}

	created, err := h.db.InsertCertificate(c.Context(), cert)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create certificate")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    created,
	})
}

// UpdateCertificate edits the extracted fields of a certificate (admin only)
func (h *Handler) UpdateCertificate(c *fiber.Ctx) error {
	var req models.UpdateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	cert, err := h.db.UpdateCertificate(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, database.ErrCertificateNotFound) {
			return Error(c, fiber.StatusNotFound, "certificate not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update certificate")
	}

	return Success(c, cert)
}

// DeleteCertificate removes a certificate and its stored scan (admin only)
func (h *Handler) DeleteCertificate(c *fiber.Ctx) error {
	id := c.Params("id")

	cert, err := h.db.GetCertificateByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrCertificateNotFound) {
			return Error(c, fiber.StatusNotFound, "certificate not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get certificate")
	}

	if err := h.db.DeleteCertificate(c.Context(), id); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to delete certificate")
	}

	if cert.ScanKey != "" {
		// Record is already gone; losing the object cleanup is tolerable
		_ = h.storage.Delete(c.Context(), cert.ScanKey)
	}

	return Success(c, fiber.Map{"message": "certificate deleted"})
}
